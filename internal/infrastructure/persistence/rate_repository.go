package persistence

import (
	"context"
	"errors"

	"github.com/dukkan/backend/internal/domain/settlement"
	"github.com/dukkan/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormExchangeRateRepository implements settlement.ExchangeRateRepository
// using GORM. The table is append-only.
type GormExchangeRateRepository struct {
	db *gorm.DB
}

// NewGormExchangeRateRepository creates a new GormExchangeRateRepository
func NewGormExchangeRateRepository(db *gorm.DB) *GormExchangeRateRepository {
	return &GormExchangeRateRepository{db: db}
}

// Current returns the most recently recorded rate. Returns nil when the
// history is empty.
func (r *GormExchangeRateRepository) Current(ctx context.Context) (*settlement.ExchangeRate, error) {
	var model models.ExchangeRateModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// History returns recorded rates, newest first
func (r *GormExchangeRateRepository) History(ctx context.Context, limit int) ([]settlement.ExchangeRate, error) {
	if limit <= 0 {
		limit = 50
	}
	var rateModels []models.ExchangeRateModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rateModels).Error
	if err != nil {
		return nil, err
	}

	rates := make([]settlement.ExchangeRate, len(rateModels))
	for i := range rateModels {
		rates[i] = *rateModels[i].ToDomain()
	}
	return rates, nil
}

// Save appends a new rate quote
func (r *GormExchangeRateRepository) Save(ctx context.Context, rate *settlement.ExchangeRate) error {
	model := models.ExchangeRateModelFromDomain(rate)
	return r.db.WithContext(ctx).Create(model).Error
}

// Ensure GormExchangeRateRepository implements the repository interface
var _ settlement.ExchangeRateRepository = (*GormExchangeRateRepository)(nil)
