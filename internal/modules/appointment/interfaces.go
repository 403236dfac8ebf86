package appointment

import (
	"context"
	"time"

	"apptbook/internal/domain"
	"apptbook/internal/repository"
)

// AppointmentRepository defines the interface for appointment operations
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) error
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetBookedTimes(ctx context.Context, date time.Time) ([]string, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id int64, cancelledAt time.Time) error
	GetByUserWithDetails(ctx context.Context, userID int64) ([]repository.AppointmentDetails, error)
	GetAllWithDetails(ctx context.Context) ([]repository.AppointmentDetails, error)
}

// ScheduleReader resolves the operating window for a weekday
type ScheduleReader interface {
	GetByDay(ctx context.Context, dayOfWeek string) (*domain.Schedule, error)
}

// ServiceReader checks that a booked service exists
type ServiceReader interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// UserReader checks that the booking user exists
type UserReader interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
}
