package settlement

import (
	"context"

	"github.com/dukkan/backend/internal/domain/settlement"
)

// TransactionScope provides transactional access to settlement repositories.
// When a function is executed within a transaction scope, all repository operations
// will be part of the same database transaction and will be committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all settlement repositories within
// a transaction. All repositories returned share the same underlying database
// transaction, so a payment, its debt mutations, and the drawer movement commit
// or roll back as one unit.
type TransactionalRepositories interface {
	// DebtRepo returns the debt repository scoped to the current transaction
	DebtRepo() settlement.DebtRepository
	// LedgerRepo returns the cash ledger repository scoped to the current transaction
	LedgerRepo() settlement.LedgerRepository
	// RateRepo returns the exchange rate repository scoped to the current transaction
	RateRepo() settlement.ExchangeRateRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support is not
// required.
type NoOpTransactionScope struct {
	debtRepo   settlement.DebtRepository
	ledgerRepo settlement.LedgerRepository
	rateRepo   settlement.ExchangeRateRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	debtRepo settlement.DebtRepository,
	ledgerRepo settlement.LedgerRepository,
	rateRepo settlement.ExchangeRateRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		debtRepo:   debtRepo,
		ledgerRepo: ledgerRepo,
		rateRepo:   rateRepo,
	}
}

// Execute runs the function with the configured repositories, without a transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// DebtRepo returns the configured debt repository
func (s *NoOpTransactionScope) DebtRepo() settlement.DebtRepository { return s.debtRepo }

// LedgerRepo returns the configured ledger repository
func (s *NoOpTransactionScope) LedgerRepo() settlement.LedgerRepository { return s.ledgerRepo }

// RateRepo returns the configured exchange rate repository
func (s *NoOpTransactionScope) RateRepo() settlement.ExchangeRateRepository { return s.rateRepo }
