package persistence

import (
	"context"
	"errors"

	"github.com/dukkan/backend/internal/domain/settlement"
	"github.com/dukkan/backend/internal/domain/shared"
	"github.com/dukkan/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDebtRepository implements settlement.DebtRepository using GORM
type GormDebtRepository struct {
	db *gorm.DB
}

// NewGormDebtRepository creates a new GormDebtRepository
func NewGormDebtRepository(db *gorm.DB) *GormDebtRepository {
	return &GormDebtRepository{db: db}
}

// FindByID finds a debt by its ID. Returns nil when no debt exists.
func (r *GormDebtRepository) FindByID(ctx context.Context, id uuid.UUID) (*settlement.Debt, error) {
	var model models.DebtModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds debts with filtering and pagination
func (r *GormDebtRepository) FindAll(ctx context.Context, filter settlement.DebtFilter) (shared.Paginated[settlement.Debt], error) {
	query := r.db.WithContext(ctx).Model(&models.DebtModel{})
	query = applyDebtFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[settlement.Debt]{}, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	orderDir := ValidateSortOrder(filter.OrderDir)
	orderBy := ValidateSortField(filter.OrderBy, DebtSortFields, "created_at")

	var debtModels []models.DebtModel
	if err := query.
		Order(orderBy + " " + orderDir).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&debtModels).Error; err != nil {
		return shared.Paginated[settlement.Debt]{}, err
	}

	debts := make([]settlement.Debt, len(debtModels))
	for i := range debtModels {
		debts[i] = *debtModels[i].ToDomain()
	}
	return shared.NewPaginated(debts, total, page, pageSize), nil
}

// applyDebtFilter applies the filter conditions to the query
func applyDebtFilter(query *gorm.DB, filter settlement.DebtFilter) *gorm.DB {
	if filter.DebtorKey != nil {
		query = query.Where("debtor_key = ?", *filter.DebtorKey)
	}
	if filter.Kind != nil {
		query = query.Where("kind = ?", *filter.Kind)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CurrencyTag != nil {
		query = query.Where("currency_tag = ?", *filter.CurrencyTag)
	}
	if filter.OpenOnly {
		query = query.Where("status IN ?", []settlement.DebtStatus{
			settlement.DebtStatusPending, settlement.DebtStatusPartial,
		})
	}
	if filter.FromDate != nil {
		query = query.Where("created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("created_at <= ?", *filter.ToDate)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("debtor_name LIKE ? OR description LIKE ? OR source_reference LIKE ?",
			pattern, pattern, pattern)
	}
	return query
}

// FindOpenByDebtor finds all PENDING and PARTIAL debts for a debtor, oldest first
func (r *GormDebtRepository) FindOpenByDebtor(ctx context.Context, debtorKey string) ([]*settlement.Debt, error) {
	var debtModels []models.DebtModel
	err := r.db.WithContext(ctx).
		Where("debtor_key = ? AND status IN ?", debtorKey, []settlement.DebtStatus{
			settlement.DebtStatusPending, settlement.DebtStatusPartial,
		}).
		Order("created_at ASC").
		Find(&debtModels).Error
	if err != nil {
		return nil, err
	}

	debts := make([]*settlement.Debt, len(debtModels))
	for i := range debtModels {
		debts[i] = debtModels[i].ToDomain()
	}
	return debts, nil
}

// SummarizeOutstanding aggregates open debts per debtor. Remaining amounts
// are computed in Go so per-currency clamping matches the aggregate's own
// arithmetic.
func (r *GormDebtRepository) SummarizeOutstanding(ctx context.Context) ([]settlement.OutstandingSummary, error) {
	var debtModels []models.DebtModel
	err := r.db.WithContext(ctx).
		Where("status IN ?", []settlement.DebtStatus{
			settlement.DebtStatusPending, settlement.DebtStatusPartial,
		}).
		Order("debtor_key ASC, created_at ASC").
		Find(&debtModels).Error
	if err != nil {
		return nil, err
	}

	var summaries []settlement.OutstandingSummary
	index := make(map[string]int)
	for i := range debtModels {
		debt := debtModels[i].ToDomain()
		usd, iqd := debt.RemainingBreakdown()

		pos, ok := index[debt.DebtorKey]
		if !ok {
			pos = len(summaries)
			index[debt.DebtorKey] = pos
			summaries = append(summaries, settlement.OutstandingSummary{
				DebtorKey:  debt.DebtorKey,
				DebtorName: debt.DebtorName,
			})
		}
		summaries[pos].OpenCount++
		summaries[pos].TotalUSD = summaries[pos].TotalUSD.Add(usd)
		summaries[pos].TotalIQD = summaries[pos].TotalIQD.Add(iqd)
	}
	return summaries, nil
}

// Save creates or updates a debt
func (r *GormDebtRepository) Save(ctx context.Context, debt *settlement.Debt) error {
	model := models.DebtModelFromDomain(debt)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking. The debt's version was already
// incremented by the mutating domain operation, so the row must still hold
// the previous version for the write to apply.
func (r *GormDebtRepository) SaveWithLock(ctx context.Context, debt *settlement.Debt) error {
	model := models.DebtModelFromDomain(debt)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", debt.ID, debt.Version-1).
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

// Ensure GormDebtRepository implements the repository interface
var _ settlement.DebtRepository = (*GormDebtRepository)(nil)
