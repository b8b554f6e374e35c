package persistence

import (
	"context"
	"errors"

	"github.com/dukkan/backend/internal/domain/settlement"
	"github.com/dukkan/backend/internal/domain/shared"
	"github.com/dukkan/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLedgerRepository implements settlement.LedgerRepository using GORM
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// FindByName finds a drawer ledger by name. Returns nil when none exists.
func (r *GormLedgerRepository) FindByName(ctx context.Context, name string) (*settlement.CashLedger, error) {
	var model models.CashLedgerModel
	if err := r.db.WithContext(ctx).First(&model, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a ledger
func (r *GormLedgerRepository) Save(ctx context.Context, ledger *settlement.CashLedger) error {
	model := models.CashLedgerModelFromDomain(ledger)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking
func (r *GormLedgerRepository) SaveWithLock(ctx context.Context, ledger *settlement.CashLedger) error {
	model := models.CashLedgerModelFromDomain(ledger)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", ledger.ID, ledger.Version-1).
		Select("*").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrentModification
	}
	return nil
}

// Ensure GormLedgerRepository implements the repository interface
var _ settlement.LedgerRepository = (*GormLedgerRepository)(nil)
