package settlement

import (
	"github.com/dukkan/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ExchangeRate is one append-only USD->IQD rate quote. The latest row is
// the current rate; history is never rewritten so old debts can always
// be audited against the rate that applied when they were paid.
type ExchangeRate struct {
	shared.BaseEntity
	// Rate is IQD per 1 USD.
	Rate   decimal.Decimal `json:"rate"`
	Source string          `json:"source,omitempty"`
}

// NewExchangeRate records a new rate quote
func NewExchangeRate(rate decimal.Decimal, source string) (*ExchangeRate, error) {
	if rate.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidRate
	}
	return &ExchangeRate{
		BaseEntity: shared.NewBaseEntity(),
		Rate:       rate,
		Source:     source,
	}, nil
}
