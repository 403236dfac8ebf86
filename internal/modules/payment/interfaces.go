package payment

import (
	"context"

	"apptbook/internal/domain"

	"github.com/stripe/stripe-go/v79"
)

type AppointmentReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
}

type AppointmentConfirmer interface {
	ConfirmAppointment(ctx context.Context, appointmentID int64) (*domain.Appointment, error)
}

type ServiceCatalog interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	GetByStripeProductID(ctx context.Context, productID string) (*domain.Service, error)
	GetByStripePriceID(ctx context.Context, priceID string) (*domain.Service, error)
	UpdatePrice(ctx context.Context, id int64, price float64) error
	UpdateName(ctx context.Context, id int64, name string) error
}

// CheckoutClient creates hosted checkout sessions with the payment gateway.
type CheckoutClient interface {
	NewSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}
