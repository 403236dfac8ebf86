package repository

import (
	"context"
	"time"

	"apptbook/internal/domain"

	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

type serviceModel struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	Name            string    `gorm:"column:name"`
	Price           float64   `gorm:"column:price"`
	DurationMinutes int       `gorm:"column:duration_minutes"`
	StripeProductID *string   `gorm:"column:stripe_product_id"`
	StripePriceID   *string   `gorm:"column:stripe_price_id"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (serviceModel) TableName() string { return "services" }

func toDomainService(m serviceModel) *domain.Service {
	var productID, priceID string
	if m.StripeProductID != nil {
		productID = *m.StripeProductID
	}
	if m.StripePriceID != nil {
		priceID = *m.StripePriceID
	}

	return &domain.Service{
		ID:              m.ID,
		Name:            m.Name,
		Price:           m.Price,
		DurationMinutes: m.DurationMinutes,
		StripeProductID: productID,
		StripePriceID:   priceID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toServiceModel(s *domain.Service) serviceModel {
	var productID, priceID *string
	if s.StripeProductID != "" {
		v := s.StripeProductID
		productID = &v
	}
	if s.StripePriceID != "" {
		v := s.StripePriceID
		priceID = &v
	}

	return serviceModel{
		ID:              s.ID,
		Name:            s.Name,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		StripeProductID: productID,
		StripePriceID:   priceID,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	m := toServiceModel(s)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainService(m)
	return nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	var m serviceModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainService(m), nil
}

func (r *ServiceRepository) GetAll(ctx context.Context) ([]domain.Service, error) {
	var models []serviceModel
	tx := r.db.WithContext(ctx).Order("id").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Service, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainService(m))
	}
	return out, nil
}

func (r *ServiceRepository) Update(ctx context.Context, s *domain.Service) error {
	m := toServiceModel(s)
	tx := r.db.WithContext(ctx).Model(&serviceModel{ID: s.ID}).Updates(map[string]any{
		"name":             m.Name,
		"price":            m.Price,
		"duration_minutes": m.DurationMinutes,
	})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&serviceModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ServiceRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&serviceModel{}).Where("id = ?", id).Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

func (r *ServiceRepository) GetByStripeProductID(ctx context.Context, productID string) (*domain.Service, error) {
	var m serviceModel
	tx := r.db.WithContext(ctx).Where("stripe_product_id = ?", productID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainService(m), nil
}

func (r *ServiceRepository) GetByStripePriceID(ctx context.Context, priceID string) (*domain.Service, error) {
	var m serviceModel
	tx := r.db.WithContext(ctx).Where("stripe_price_id = ?", priceID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainService(m), nil
}

func (r *ServiceRepository) UpdatePrice(ctx context.Context, id int64, price float64) error {
	return r.db.WithContext(ctx).Model(&serviceModel{ID: id}).Update("price", price).Error
}

func (r *ServiceRepository) UpdateName(ctx context.Context, id int64, name string) error {
	return r.db.WithContext(ctx).Model(&serviceModel{ID: id}).Update("name", name).Error
}
