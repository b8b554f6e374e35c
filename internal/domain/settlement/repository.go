package settlement

import (
	"context"
	"time"

	"github.com/dukkan/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebtFilter defines filtering options for debt queries
type DebtFilter struct {
	shared.Filter
	DebtorKey   *string      // Filter by normalized debtor key
	Kind        *DebtKind    // Filter by debt kind
	Status      *DebtStatus  // Filter by status
	CurrencyTag *CurrencyTag // Filter by currency tag
	FromDate    *time.Time   // Filter by creation date range start
	ToDate      *time.Time   // Filter by creation date range end
	OpenOnly    bool         // Only PENDING and PARTIAL debts
}

// OutstandingSummary aggregates a debtor's open debts for display
type OutstandingSummary struct {
	DebtorKey  string          `json:"debtor_key"`
	DebtorName string          `json:"debtor_name"`
	OpenCount  int             `json:"open_count"`
	TotalUSD   decimal.Decimal `json:"total_usd"`
	TotalIQD   decimal.Decimal `json:"total_iqd"`
}

// DebtRepository defines the interface for debt persistence
type DebtRepository interface {
	// FindByID finds a debt by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Debt, error)

	// FindAll finds debts with filtering and pagination
	FindAll(ctx context.Context, filter DebtFilter) (shared.Paginated[Debt], error)

	// FindOpenByDebtor finds all PENDING and PARTIAL debts for a debtor,
	// oldest first
	FindOpenByDebtor(ctx context.Context, debtorKey string) ([]*Debt, error)

	// SummarizeOutstanding aggregates open debts per debtor
	SummarizeOutstanding(ctx context.Context) ([]OutstandingSummary, error)

	// Save creates or updates a debt
	Save(ctx context.Context, debt *Debt) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, debt *Debt) error
}

// LedgerRepository defines the interface for cash ledger persistence
type LedgerRepository interface {
	// FindByName finds a drawer ledger by name
	FindByName(ctx context.Context, name string) (*CashLedger, error)

	// Save creates or updates a ledger
	Save(ctx context.Context, ledger *CashLedger) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, ledger *CashLedger) error
}

// ExchangeRateRepository defines the interface for the append-only rate
// history
type ExchangeRateRepository interface {
	// Current returns the most recently recorded rate
	Current(ctx context.Context) (*ExchangeRate, error)

	// History returns recorded rates, newest first
	History(ctx context.Context, limit int) ([]ExchangeRate, error)

	// Save appends a new rate quote
	Save(ctx context.Context, rate *ExchangeRate) error
}
