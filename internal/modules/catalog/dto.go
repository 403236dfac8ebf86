package catalog

type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required,min=2"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	DurationMinutes int     `json:"duration" binding:"required,gt=0"`
	StripeProductID string  `json:"stripe_product_id"`
	StripePriceID   string  `json:"stripe_price_id"`
}

type UpdateServiceRequest struct {
	Name            string  `json:"name" binding:"required,min=2"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	DurationMinutes int     `json:"duration" binding:"required,gt=0"`
}
