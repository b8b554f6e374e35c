package persistence

import (
	"context"

	appsettlement "github.com/dukkan/backend/internal/application/settlement"
	"github.com/dukkan/backend/internal/domain/settlement"
	"gorm.io/gorm"
)

// GormTransactionScope implements the application TransactionScope using
// GORM transactions, so debt mutations and drawer movements commit or roll
// back as one unit.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appsettlement.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// DebtRepo returns the debt repository scoped to the current transaction
func (r *gormTransactionalRepositories) DebtRepo() settlement.DebtRepository {
	return NewGormDebtRepository(r.tx)
}

// LedgerRepo returns the cash ledger repository scoped to the current transaction
func (r *gormTransactionalRepositories) LedgerRepo() settlement.LedgerRepository {
	return NewGormLedgerRepository(r.tx)
}

// RateRepo returns the exchange rate repository scoped to the current transaction
func (r *gormTransactionalRepositories) RateRepo() settlement.ExchangeRateRepository {
	return NewGormExchangeRateRepository(r.tx)
}

// Ensure the implementations satisfy the application contracts
var (
	_ appsettlement.TransactionScope           = (*GormTransactionScope)(nil)
	_ appsettlement.TransactionalRepositories  = (*gormTransactionalRepositories)(nil)
)
