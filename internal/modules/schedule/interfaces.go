package schedule

import (
	"context"

	"apptbook/internal/domain"
)

// ScheduleRepository defines the interface for schedule operations
type ScheduleRepository interface {
	Create(ctx context.Context, s *domain.Schedule) error
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	GetAll(ctx context.Context) ([]domain.Schedule, error)
	Update(ctx context.Context, s *domain.Schedule) error
	Delete(ctx context.Context, id int64) error
}
