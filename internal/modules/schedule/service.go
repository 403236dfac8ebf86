package schedule

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"apptbook/internal/domain"
	"apptbook/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	schedules ScheduleRepository
}

func NewService(schedules ScheduleRepository) *Service {
	return &Service{schedules: schedules}
}

func (s *Service) CreateSchedule(ctx context.Context, req CreateScheduleRequest) (*domain.Schedule, error) {
	if err := validateWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	sched := &domain.Schedule{
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: req.IsAvailable,
	}

	if err := s.schedules.Create(ctx, sched); err != nil {
		if repository.IsUniqueViolation(err, "idx_schedule_day_unique") {
			return nil, ErrDayAlreadyScheduled
		}
		return nil, err
	}
	return sched, nil
}

func (s *Service) GetSchedules(ctx context.Context) ([]domain.Schedule, error) {
	return s.schedules.GetAll(ctx)
}

func (s *Service) UpdateSchedule(ctx context.Context, id int64, req UpdateScheduleRequest) (*domain.Schedule, error) {
	if err := validateWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	sched := &domain.Schedule{
		ID:          id,
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: req.IsAvailable,
	}

	if err := s.schedules.Update(ctx, sched); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		if repository.IsUniqueViolation(err, "idx_schedule_day_unique") {
			return nil, ErrDayAlreadyScheduled
		}
		return nil, err
	}
	return s.schedules.GetByID(ctx, id)
}

func (s *Service) DeleteSchedule(ctx context.Context, id int64) error {
	if err := s.schedules.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// validateWindow checks HH:MM syntax and that start <= end. Equal bounds are
// allowed: they describe a single-slot day.
func validateWindow(start, end string) error {
	sh, sm, err := parseClock(start)
	if err != nil {
		return err
	}
	eh, em, err := parseClock(end)
	if err != nil {
		return err
	}
	if sh > eh || (sh == eh && sm > em) {
		return ErrInvalidRange
	}
	return nil
}

func parseClock(v string) (hour, minute int, err error) {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return 0, 0, ErrValidation
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, ErrValidation
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, ErrValidation
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, ErrValidation
	}
	return hour, minute, nil
}
