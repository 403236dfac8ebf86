package repository

import (
	"context"
	"time"

	"apptbook/internal/domain"

	"gorm.io/gorm"
)

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

type scheduleModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	DayOfWeek   string    `gorm:"column:day_of_week"`
	StartTime   string    `gorm:"column:start_time"`
	EndTime     string    `gorm:"column:end_time"`
	IsAvailable bool      `gorm:"column:is_available"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (scheduleModel) TableName() string { return "schedules" }

func toDomainSchedule(m scheduleModel) *domain.Schedule {
	return &domain.Schedule{
		ID:          m.ID,
		DayOfWeek:   m.DayOfWeek,
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		IsAvailable: m.IsAvailable,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toScheduleModel(s *domain.Schedule) scheduleModel {
	return scheduleModel{
		ID:          s.ID,
		DayOfWeek:   s.DayOfWeek,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		IsAvailable: s.IsAvailable,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (r *ScheduleRepository) Create(ctx context.Context, s *domain.Schedule) error {
	m := toScheduleModel(s)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainSchedule(m)
	return nil
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	var m scheduleModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainSchedule(m), nil
}

func (r *ScheduleRepository) GetAll(ctx context.Context) ([]domain.Schedule, error) {
	var models []scheduleModel
	tx := r.db.WithContext(ctx).Order("id").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Schedule, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainSchedule(m))
	}
	return out, nil
}

// GetByDay returns the schedule row for a weekday name. The unique index on
// day_of_week guarantees at most one row exists.
func (r *ScheduleRepository) GetByDay(ctx context.Context, dayOfWeek string) (*domain.Schedule, error) {
	var m scheduleModel
	tx := r.db.WithContext(ctx).Where("day_of_week = ?", dayOfWeek).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainSchedule(m), nil
}

func (r *ScheduleRepository) Update(ctx context.Context, s *domain.Schedule) error {
	tx := r.db.WithContext(ctx).Model(&scheduleModel{ID: s.ID}).Updates(map[string]any{
		"day_of_week":  s.DayOfWeek,
		"start_time":   s.StartTime,
		"end_time":     s.EndTime,
		"is_available": s.IsAvailable,
	})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ScheduleRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&scheduleModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
