package settlement

import (
	"time"

	"github.com/dukkan/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ErrInsufficientCash is returned when a checked debit would drive a
// drawer balance negative
var ErrInsufficientCash = shared.NewDomainError("INSUFFICIENT_BALANCE", "Cash drawer balance is insufficient")

// DefaultDrawerName identifies the single drawer a one-register shop runs
const DefaultDrawerName = "main"

// CashLedger tracks the physical cash in one drawer, one balance per
// currency. Settlements credit it with the net payment; change and loan
// disbursements debit it.
type CashLedger struct {
	shared.BaseAggregateRoot
	Name       string          `json:"name"`
	BalanceUSD decimal.Decimal `json:"balance_usd"`
	BalanceIQD decimal.Decimal `json:"balance_iqd"`
}

// NewCashLedger creates an empty drawer ledger
func NewCashLedger(name string) *CashLedger {
	if name == "" {
		name = DefaultDrawerName
	}
	return &CashLedger{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		BalanceUSD:        decimal.Zero,
		BalanceIQD:        decimal.Zero,
	}
}

// Credit adds cash to the drawer. Negative components are rejected.
func (l *CashLedger) Credit(usd, iqd decimal.Decimal) error {
	if usd.IsNegative() || iqd.IsNegative() {
		return shared.ErrInvalidInput
	}
	l.BalanceUSD = l.BalanceUSD.Add(usd)
	l.BalanceIQD = l.BalanceIQD.Add(iqd)
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}

// Debit removes cash from the drawer, failing if either balance would go
// negative. Used for change payouts and loan disbursements.
func (l *CashLedger) Debit(usd, iqd decimal.Decimal) error {
	if usd.IsNegative() || iqd.IsNegative() {
		return shared.ErrInvalidInput
	}
	if l.BalanceUSD.LessThan(usd) || l.BalanceIQD.LessThan(iqd) {
		return ErrInsufficientCash
	}
	l.BalanceUSD = l.BalanceUSD.Sub(usd)
	l.BalanceIQD = l.BalanceIQD.Sub(iqd)
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}

// AcceptPayment credits the tendered cash and pays the change back out as
// one movement, so a settlement bumps the version exactly once. Fails when
// the change cannot be covered even counting the tender just received.
func (l *CashLedger) AcceptPayment(tenderUSD, tenderIQD, changeUSD, changeIQD decimal.Decimal) error {
	if tenderUSD.IsNegative() || tenderIQD.IsNegative() || changeUSD.IsNegative() || changeIQD.IsNegative() {
		return shared.ErrInvalidInput
	}
	newUSD := l.BalanceUSD.Add(tenderUSD).Sub(changeUSD)
	newIQD := l.BalanceIQD.Add(tenderIQD).Sub(changeIQD)
	if newUSD.IsNegative() || newIQD.IsNegative() {
		return ErrInsufficientCash
	}
	l.BalanceUSD = newUSD
	l.BalanceIQD = newIQD
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}

// ForceDebit removes cash without the sufficiency check. Reversals use
// it: the money already left the drawer in the real world, the ledger
// just has to follow.
func (l *CashLedger) ForceDebit(usd, iqd decimal.Decimal) error {
	if usd.IsNegative() || iqd.IsNegative() {
		return shared.ErrInvalidInput
	}
	l.BalanceUSD = l.BalanceUSD.Sub(usd)
	l.BalanceIQD = l.BalanceIQD.Sub(iqd)
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}

// TotalUSDEquivalent values the whole drawer on a USD basis at the given
// rate, for the balances summary.
func (l *CashLedger) TotalUSDEquivalent(rate decimal.Decimal) (decimal.Decimal, error) {
	return usdEquivalent(l.BalanceUSD, l.BalanceIQD, rate)
}
