package domain

import "time"

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "PENDING"
	AppointmentConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
)

// Appointment is a booking of a service at a (date, time) slot. For any
// (date, time) pair at most one non-cancelled appointment may exist; the
// storage layer enforces this with a partial unique index.
type Appointment struct {
	ID          int64             `json:"id"`
	UserID      int64             `json:"user_id"`
	ServiceID   int64             `json:"service_id"`
	Date        time.Time         `json:"date"`
	Time        string            `json:"time"` // HH:MM, matches a generated slot
	Status      AppointmentStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	CancelledAt *time.Time        `json:"cancelled_at,omitempty"`
}

// IsActive reports whether the appointment still occupies its slot.
func (a *Appointment) IsActive() bool {
	return a.Status != AppointmentCancelled
}

// CanBeCancelled reports whether a cancel transition is allowed.
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == AppointmentPending || a.Status == AppointmentConfirmed
}
