package appointment

type CreateAppointmentRequest struct {
	ServiceID int64  `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"` // DD-MM-YYYY
	Time      string `json:"time" binding:"required"` // HH:MM
}

type AvailableSlotsResponse struct {
	Date           string   `json:"date"`
	AvailableSlots []string `json:"available_slots"`
}
