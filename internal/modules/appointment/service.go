package appointment

import (
	"context"
	"errors"
	"time"

	"apptbook/internal/domain"
	"apptbook/internal/repository"

	"gorm.io/gorm"
)

const defaultStoreTimeout = 5 * time.Second

type Service struct {
	appointments AppointmentRepository
	schedules    ScheduleReader
	services     ServiceReader
	users        UserReader
	storeTimeout time.Duration
}

func NewService(
	appointments AppointmentRepository,
	schedules ScheduleReader,
	services ServiceReader,
	users UserReader,
) *Service {
	return &Service{
		appointments: appointments,
		schedules:    schedules,
		services:     services,
		users:        users,
		storeTimeout: defaultStoreTimeout,
	}
}

// GetAvailableSlots returns the free slots for a DD-MM-YYYY date. A day with
// no schedule row, or one marked unavailable, simply has no slots.
func (s *Service) GetAvailableSlots(ctx context.Context, dateStr string) ([]string, error) {
	date, err := parseDate(dateStr)
	if err != nil {
		return nil, ErrValidation
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	return s.availableForDate(ctx, date)
}

func (s *Service) availableForDate(ctx context.Context, date time.Time) ([]string, error) {
	sched, err := s.schedules.GetByDay(ctx, domain.WeekdayName(date.Weekday()))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []string{}, nil
		}
		return nil, s.storeErr(err)
	}
	if !sched.IsAvailable {
		return []string{}, nil
	}

	candidates, err := generateSlots(sched.StartTime, sched.EndTime, domain.SlotGranularityMinutes)
	if err != nil {
		return nil, err
	}

	booked, err := s.appointments.GetBookedTimes(ctx, date)
	if err != nil {
		return nil, s.storeErr(err)
	}

	return filterAvailable(candidates, booked), nil
}

// CreateAppointment admits a new PENDING appointment for (date, time). The
// slot lookup is only a fast-path rejection; the partial unique index on
// appointments(date, time) is what prevents two concurrent requests from both
// committing.
func (s *Service) CreateAppointment(ctx context.Context, userID int64, req CreateAppointmentRequest) (*domain.Appointment, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, ErrValidation
	}
	if _, _, err := parseClock(req.Time); err != nil {
		return nil, ErrValidation
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	ok, err := s.services.ExistsByID(ctx, req.ServiceID)
	if err != nil {
		return nil, s.storeErr(err)
	}
	if !ok {
		return nil, ErrServiceNotFound
	}

	ok, err = s.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, s.storeErr(err)
	}
	if !ok {
		return nil, ErrUserNotFound
	}

	slots, err := s.availableForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if !containsSlot(slots, req.Time) {
		return nil, ErrSlotTaken
	}

	a := &domain.Appointment{
		UserID:    userID,
		ServiceID: req.ServiceID,
		Date:      date,
		Time:      req.Time,
		Status:    domain.AppointmentPending,
	}

	if err := s.appointments.Create(ctx, a); err != nil {
		if repository.IsUniqueViolation(err, "idx_no_double_booking") {
			return nil, ErrSlotTaken
		}
		return nil, s.storeErr(err)
	}

	return a, nil
}

// CancelAppointment transitions PENDING or CONFIRMED to CANCELLED. Only the
// appointment's owner or an admin may cancel; the freed slot becomes bookable
// again immediately.
func (s *Service) CancelAppointment(ctx context.Context, appointmentID, actorUserID int64, actorRole string) (*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	a, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, s.storeErr(err)
	}

	if a.UserID != actorUserID && actorRole != string(domain.RoleAdmin) {
		return nil, ErrForbidden
	}
	if !a.CanBeCancelled() {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.appointments.Cancel(ctx, appointmentID, time.Now().UTC()); err != nil {
		return nil, s.storeErr(err)
	}

	return s.appointments.GetByID(ctx, appointmentID)
}

// ConfirmAppointment marks a PENDING appointment CONFIRMED. It is the entry
// point for the payment collaborator and is idempotent: confirming an already
// CONFIRMED appointment is a no-op, and a CANCELLED appointment stays
// cancelled (a late payment event must not resurrect it).
func (s *Service) ConfirmAppointment(ctx context.Context, appointmentID int64) (*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	a, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, s.storeErr(err)
	}

	if a.Status != domain.AppointmentPending {
		return a, nil
	}

	if err := s.appointments.UpdateStatus(ctx, appointmentID, domain.AppointmentConfirmed); err != nil {
		return nil, s.storeErr(err)
	}
	a.Status = domain.AppointmentConfirmed
	return a, nil
}

func (s *Service) ListMyAppointments(ctx context.Context, userID int64) ([]repository.AppointmentDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	rows, err := s.appointments.GetByUserWithDetails(ctx, userID)
	if err != nil {
		return nil, s.storeErr(err)
	}
	return rows, nil
}

func (s *Service) ListAllAppointments(ctx context.Context) ([]repository.AppointmentDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	rows, err := s.appointments.GetAllWithDetails(ctx)
	if err != nil {
		return nil, s.storeErr(err)
	}
	return rows, nil
}

func (s *Service) storeErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrStoreUnavailable
	}
	return err
}

func parseDate(v string) (time.Time, error) {
	d, err := time.Parse(domain.DateFormat, v)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
}

func containsSlot(slots []string, t string) bool {
	for _, s := range slots {
		if s == t {
			return true
		}
	}
	return false
}
