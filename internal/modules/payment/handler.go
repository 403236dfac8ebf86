package payment

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"apptbook/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79/webhook"
)

const maxWebhookBody = 1 << 20 // 1 MiB hard cap

type Handler struct {
	service          *Service
	webhookSecret    string
	webhookTolerance time.Duration
}

func NewHandler(service *Service, webhookSecret string, webhookTolerance time.Duration) *Handler {
	return &Handler{
		service:          service,
		webhookSecret:    webhookSecret,
		webhookTolerance: webhookTolerance,
	}
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/appointments/:id/pay", h.CreateCheckoutSession)
}

// Webhook route carries no JWT auth; the signature check is the auth.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhooks/stripe", h.StripeWebhook)
}

func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid appointment ID")
		return
	}

	userID := c.GetInt64("user_id")

	sess, err := h.service.CreateCheckoutSession(c.Request.Context(), id, userID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"checkout": sess})
}

func (h *Handler) StripeWebhook(c *gin.Context) {
	sigHeader := c.GetHeader("Stripe-Signature")
	if sigHeader == "" {
		response.Error(c, http.StatusBadRequest, "MISSING_SIGNATURE", "Missing Stripe-Signature header")
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Failed to read request body")
		return
	}

	evt, err := webhook.ConstructEventWithTolerance(body, sigHeader, h.webhookSecret, h.webhookTolerance)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_SIGNATURE", "Webhook signature verification failed")
		return
	}

	if err := h.service.HandleEvent(c.Request.Context(), evt); err != nil {
		if errors.Is(err, ErrInvalidPayload) {
			response.Error(c, http.StatusBadRequest, "INVALID_PAYLOAD", "Malformed event payload")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process event")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"received": true})
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Appointment not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only pay for your own appointments")
	case errors.Is(err, ErrNotPayable):
		response.Error(c, http.StatusConflict, "NOT_PAYABLE", "Appointment is not awaiting payment")
	case errors.Is(err, ErrNotConfigured):
		response.Error(c, http.StatusUnprocessableEntity, "PAYMENT_NOT_CONFIGURED", "Service has no payment price configured")
	case errors.Is(err, ErrGatewayFailure):
		response.Error(c, http.StatusBadGateway, "GATEWAY_ERROR", "Payment gateway request failed")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
