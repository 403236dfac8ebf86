package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"apptbook/internal/domain"
	"apptbook/internal/modules/appointment"

	"github.com/stripe/stripe-go/v79"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"
	"gorm.io/gorm"
)

type Config struct {
	SuccessURL string
	CancelURL  string
}

type Service struct {
	appointments AppointmentReader
	confirmer    AppointmentConfirmer
	catalog      ServiceCatalog
	checkout     CheckoutClient
	cfg          Config
}

func NewService(appointments AppointmentReader, confirmer AppointmentConfirmer, catalog ServiceCatalog, checkout CheckoutClient, cfg Config) *Service {
	return &Service{
		appointments: appointments,
		confirmer:    confirmer,
		catalog:      catalog,
		checkout:     checkout,
		cfg:          cfg,
	}
}

// CreateCheckoutSession opens a hosted checkout page for a pending appointment.
// The appointment stays PENDING until the gateway confirms payment through the
// webhook; a successful redirect alone proves nothing.
func (s *Service) CreateCheckoutSession(ctx context.Context, appointmentID, actorUserID int64) (*CheckoutSessionResponse, error) {
	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if appt.UserID != actorUserID {
		return nil, ErrForbidden
	}
	if appt.Status != domain.AppointmentPending {
		return nil, ErrNotPayable
	}

	svc, err := s.catalog.GetByID(ctx, appt.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc.StripePriceID == "" {
		return nil, ErrNotConfigured
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(s.cfg.SuccessURL),
		CancelURL:  stripe.String(s.cfg.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(svc.StripePriceID),
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{
			"appointment_id": strconv.FormatInt(appt.ID, 10),
		},
	}

	sess, err := s.checkout.NewSession(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayFailure, err)
	}

	return &CheckoutSessionResponse{SessionID: sess.ID, CheckoutURL: sess.URL}, nil
}

// HandleEvent applies a signature-verified gateway event.
func (s *Service) HandleEvent(ctx context.Context, evt stripe.Event) error {
	parsed, err := parseEvent(evt)
	if err != nil {
		return err
	}

	switch e := parsed.(type) {
	case eventCheckoutCompleted:
		if _, err := s.confirmer.ConfirmAppointment(ctx, e.AppointmentID); err != nil {
			if errors.Is(err, appointment.ErrNotFound) {
				// Metadata points at an appointment we no longer have.
				// Acknowledge so the gateway stops retrying.
				log.Printf("stripe checkout completed for unknown appointment id=%d session=%s", e.AppointmentID, e.SessionID)
				return nil
			}
			return err
		}
		return nil

	case eventPriceChanged:
		svc, err := s.catalog.GetByStripeProductID(ctx, e.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("stripe price change for unknown product id=%s", e.ProductID)
				return nil
			}
			return err
		}
		return s.catalog.UpdatePrice(ctx, svc.ID, e.Amount)

	case eventProductUpdated:
		svc, err := s.catalog.GetByStripeProductID(ctx, e.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("stripe product update for unknown product id=%s", e.ProductID)
				return nil
			}
			return err
		}
		return s.catalog.UpdateName(ctx, svc.ID, e.Name)

	case eventProductCreated:
		// Products are created from the admin catalog, not discovered from the
		// gateway. Log and acknowledge.
		log.Printf("stripe product created id=%s name=%q", e.ProductID, e.Name)
		return nil

	case eventIgnored:
		return nil
	}

	return nil
}

// StripeCheckoutClient calls the live Stripe API.
type StripeCheckoutClient struct {
	secretKey string
}

func NewStripeCheckoutClient(secretKey string) *StripeCheckoutClient {
	return &StripeCheckoutClient{secretKey: secretKey}
}

func (c *StripeCheckoutClient) NewSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	// Stripe uses a global API key. Keep usage limited to this call.
	stripe.Key = c.secretKey
	return checkoutsession.New(params)
}
