package repository

import (
	"context"
	"time"

	"apptbook/internal/domain"

	"gorm.io/gorm"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

type appointmentModel struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	UserID      int64      `gorm:"column:user_id"`
	ServiceID   int64      `gorm:"column:service_id"`
	Date        time.Time  `gorm:"column:date"`
	Time        string     `gorm:"column:time"`
	Status      string     `gorm:"column:status"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	CancelledAt *time.Time `gorm:"column:cancelled_at"`
}

func (appointmentModel) TableName() string { return "appointments" }

func toDomainAppointment(m appointmentModel) *domain.Appointment {
	return &domain.Appointment{
		ID:          m.ID,
		UserID:      m.UserID,
		ServiceID:   m.ServiceID,
		Date:        m.Date,
		Time:        m.Time,
		Status:      domain.AppointmentStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		CancelledAt: m.CancelledAt,
	}
}

func toAppointmentModel(a *domain.Appointment) appointmentModel {
	return appointmentModel{
		ID:          a.ID,
		UserID:      a.UserID,
		ServiceID:   a.ServiceID,
		Date:        a.Date,
		Time:        a.Time,
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
		CancelledAt: a.CancelledAt,
	}
}

// AppointmentDetails is an appointment row joined with its service.
type AppointmentDetails struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	ServiceID    int64      `json:"service_id"`
	Date         time.Time  `json:"date"`
	Time         string     `json:"time"`
	Status       string     `json:"status"`
	ServiceName  string     `json:"service_name"`
	ServicePrice float64    `json:"service_price"`
	UserName     string     `json:"user_name,omitempty"`
	UserEmail    string     `json:"user_email,omitempty"`
	UserPhone    string     `json:"user_phone,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
}

// Create inserts the appointment. A unique violation on idx_no_double_booking
// surfaces as the raw driver error; callers decide how to map it.
func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	m := toAppointmentModel(a)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*a = *toDomainAppointment(m)
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	var m appointmentModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainAppointment(m), nil
}

// GetBookedTimes returns the times of all non-cancelled appointments on a
// date, ordered by time.
func (r *AppointmentRepository) GetBookedTimes(ctx context.Context, date time.Time) ([]string, error) {
	var times []string
	tx := r.db.WithContext(ctx).
		Model(&appointmentModel{}).
		Where("date = ? AND status != ?", date, string(domain.AppointmentCancelled)).
		Order("time").
		Pluck("time", &times)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return times, nil
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&appointmentModel{ID: id}).
		Update("status", string(status))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AppointmentRepository) Cancel(ctx context.Context, id int64, cancelledAt time.Time) error {
	tx := r.db.WithContext(ctx).
		Model(&appointmentModel{ID: id}).
		Updates(map[string]any{
			"status":       string(domain.AppointmentCancelled),
			"cancelled_at": cancelledAt,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AppointmentRepository) GetByUserWithDetails(ctx context.Context, userID int64) ([]AppointmentDetails, error) {
	var rows []AppointmentDetails
	q := `
SELECT a.id, a.user_id, a.service_id, a.date, a.time, a.status,
       a.created_at, a.cancelled_at,
       s.name AS service_name, s.price AS service_price
FROM appointments a
JOIN services s ON s.id = a.service_id
WHERE a.user_id = ?
ORDER BY a.date, a.time
`
	tx := r.db.WithContext(ctx).Raw(q, userID).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

func (r *AppointmentRepository) GetAllWithDetails(ctx context.Context) ([]AppointmentDetails, error) {
	var rows []AppointmentDetails
	q := `
SELECT a.id, a.user_id, a.service_id, a.date, a.time, a.status,
       a.created_at, a.cancelled_at,
       s.name AS service_name, s.price AS service_price,
       u.name AS user_name, u.email AS user_email, u.phone AS user_phone
FROM appointments a
JOIN services s ON s.id = a.service_id
JOIN users u ON u.id = a.user_id
ORDER BY a.date, a.time
`
	tx := r.db.WithContext(ctx).Raw(q).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}
