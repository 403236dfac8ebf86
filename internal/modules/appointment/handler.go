package appointment

import (
	"errors"
	"net/http"
	"strconv"

	"apptbook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/appointments/available", h.GetAvailableSlots)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/appointments", h.CreateAppointment)
	rg.GET("/appointments", h.ListMyAppointments)
	rg.POST("/appointments/:id/cancel", h.CancelAppointment)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/admin/appointments", h.ListAllAppointments)
}

// GetAvailableSlots handles GET /api/v1/appointments/available?date=DD-MM-YYYY
func (h *Handler) GetAvailableSlots(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Date is required")
		return
	}

	slots, err := h.service.GetAvailableSlots(c.Request.Context(), dateStr)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, AvailableSlotsResponse{
		Date:           dateStr,
		AvailableSlots: slots,
	})
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	userID := c.GetInt64("user_id")

	a, err := h.service.CreateAppointment(c.Request.Context(), userID, req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"appointment": a})
}

func (h *Handler) ListMyAppointments(c *gin.Context) {
	userID := c.GetInt64("user_id")

	rows, err := h.service.ListMyAppointments(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"appointments": rows})
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid appointment ID")
		return
	}

	userID := c.GetInt64("user_id")
	role := c.GetString("role")

	a, err := h.service.CancelAppointment(c.Request.Context(), id, userID, role)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"appointment": a})
}

func (h *Handler) ListAllAppointments(c *gin.Context) {
	rows, err := h.service.ListAllAppointments(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"appointments": rows})
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidRange):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date or time")
	case errors.Is(err, ErrServiceNotFound):
		response.Error(c, http.StatusBadRequest, "SERVICE_NOT_FOUND", "Service not found")
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusBadRequest, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, ErrSlotTaken):
		response.Error(c, http.StatusConflict, "SLOT_TAKEN", "Time slot already booked")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Appointment not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You cannot modify this appointment")
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS", "Appointment cannot change to that status")
	case errors.Is(err, ErrStoreUnavailable):
		response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Storage temporarily unavailable")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
