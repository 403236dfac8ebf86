package payment

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/stripe/stripe-go/v79"
)

// webhookEvent is the closed set of gateway events this service reacts to.
// Anything outside the set parses to eventIgnored so new Stripe event types
// never break the webhook endpoint.
type webhookEvent interface {
	isWebhookEvent()
}

type eventCheckoutCompleted struct {
	SessionID     string
	AppointmentID int64
}

type eventPriceChanged struct {
	PriceID   string
	ProductID string
	// Amount is in the major currency unit (Stripe reports minor units).
	Amount float64
}

type eventProductCreated struct {
	ProductID string
	Name      string
}

type eventProductUpdated struct {
	ProductID string
	Name      string
}

type eventIgnored struct {
	Type string
}

func (eventCheckoutCompleted) isWebhookEvent() {}
func (eventPriceChanged) isWebhookEvent()      {}
func (eventProductCreated) isWebhookEvent()    {}
func (eventProductUpdated) isWebhookEvent()    {}
func (eventIgnored) isWebhookEvent()           {}

func parseEvent(evt stripe.Event) (webhookEvent, error) {
	switch evt.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(evt.Data.Raw, &session); err != nil {
			return nil, ErrInvalidPayload
		}
		raw := strings.TrimSpace(session.Metadata["appointment_id"])
		appointmentID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, ErrInvalidPayload
		}
		return eventCheckoutCompleted{SessionID: session.ID, AppointmentID: appointmentID}, nil

	case "price.created", "price.updated":
		var price stripe.Price
		if err := json.Unmarshal(evt.Data.Raw, &price); err != nil {
			return nil, ErrInvalidPayload
		}
		productID := ""
		if price.Product != nil {
			productID = price.Product.ID
		}
		return eventPriceChanged{
			PriceID:   price.ID,
			ProductID: productID,
			Amount:    float64(price.UnitAmount) / 100,
		}, nil

	case "product.created":
		var product stripe.Product
		if err := json.Unmarshal(evt.Data.Raw, &product); err != nil {
			return nil, ErrInvalidPayload
		}
		return eventProductCreated{ProductID: product.ID, Name: product.Name}, nil

	case "product.updated":
		var product stripe.Product
		if err := json.Unmarshal(evt.Data.Raw, &product); err != nil {
			return nil, ErrInvalidPayload
		}
		return eventProductUpdated{ProductID: product.ID, Name: product.Name}, nil

	default:
		return eventIgnored{Type: string(evt.Type)}, nil
	}
}
