package settlement

import (
	"fmt"

	"github.com/dukkan/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// settleEpsilon is the tolerance below which a remaining balance is
// considered fully settled: 0.01 USD equivalent.
var settleEpsilon = decimal.New(1, -2)

// ErrInvalidRate is returned when a conversion is attempted with a
// non-positive exchange rate.
var ErrInvalidRate = shared.NewDomainError("INVALID_RATE", "Exchange rate must be positive")

// ToUSD converts an IQD amount to USD at the given USD->IQD rate.
func ToUSD(amountIQD, rate decimal.Decimal) (decimal.Decimal, error) {
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidRate
	}
	return amountIQD.Div(rate), nil
}

// ToIQD converts a USD amount to IQD at the given USD->IQD rate.
func ToIQD(amountUSD, rate decimal.Decimal) (decimal.Decimal, error) {
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidRate
	}
	return amountUSD.Mul(rate), nil
}

// ResolveRate returns the USD->IQD rate that applies to the given debt:
// the rate frozen at creation when present, otherwise the current rate.
// Freezing insulates a debt's principal-vs-payment comparison from later
// rate changes.
func ResolveRate(debt *Debt, currentRate decimal.Decimal) (decimal.Decimal, error) {
	rate := currentRate
	if debt != nil && debt.ExchangeRateAtCreation != nil {
		rate = *debt.ExchangeRateAtCreation
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidRate
	}
	return rate, nil
}

// usdEquivalent sums a USD/IQD pair on a common USD basis.
func usdEquivalent(usd, iqd, rate decimal.Decimal) (decimal.Decimal, error) {
	if iqd.IsZero() {
		return usd, nil
	}
	converted, err := ToUSD(iqd, rate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("converting IQD amount: %w", err)
	}
	return usd.Add(converted), nil
}
