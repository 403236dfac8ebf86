package domain

import "time"

// Service is a bookable offering. Stripe product/price IDs are empty until the
// service is linked to the payment provider.
type Service struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name" validate:"required,min=2"`
	Price           float64   `json:"price" validate:"required,gt=0"`
	DurationMinutes int       `json:"duration" validate:"required,gt=0"`
	StripeProductID string    `json:"stripe_product_id,omitempty"`
	StripePriceID   string    `json:"stripe_price_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
