package settlement

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DefaultDenominationsIQD lists the IQD bills the drawer keeps, smallest
// first. There are no circulating sub-250 notes.
var DefaultDenominationsIQD = []int64{250, 500, 1000, 5000, 10000, 25000, 50000}

// ChangePolicy decides how much of an overpayment is handed back as
// change. Change is rounded down to bills the drawer can actually pay
// out; anything below the minimum threshold is absorbed by the shop.
type ChangePolicy struct {
	// DenominationsIQD are the usable IQD bill denominations.
	DenominationsIQD []int64
	// MinChangeIQD is the threshold below which no IQD change is returned.
	MinChangeIQD decimal.Decimal
	// MinChangeUSD is the threshold a USD overpayment must exceed before
	// USD change is returned.
	MinChangeUSD decimal.Decimal
}

// DefaultChangePolicy returns the policy the shop runs with unless
// configured otherwise: 250 IQD minimum, 1 USD minimum.
func DefaultChangePolicy() ChangePolicy {
	return ChangePolicy{
		DenominationsIQD: DefaultDenominationsIQD,
		MinChangeIQD:     decimal.NewFromInt(250),
		MinChangeUSD:     decimal.NewFromInt(1),
	}
}

// RoundIQDChange rounds an IQD overpayment down to a payable amount of
// change: a multiple of the largest denomination that fits, never
// exceeding the true overpayment. Below MinChangeIQD the result is zero
// and the difference stays in the drawer.
func (p ChangePolicy) RoundIQDChange(overpaymentIQD decimal.Decimal) decimal.Decimal {
	// Conversions leave sub-dinar residue; cash IQD is whole dinars.
	overpaymentIQD = overpaymentIQD.Round(0)
	if overpaymentIQD.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	denoms := p.DenominationsIQD
	if len(denoms) == 0 {
		denoms = DefaultDenominationsIQD
	}
	sorted := make([]int64, len(denoms))
	copy(sorted, denoms)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] > sorted[j] })

	var change decimal.Decimal
	for _, d := range sorted {
		bill := decimal.NewFromInt(d)
		if bill.GreaterThan(overpaymentIQD) {
			continue
		}
		change = overpaymentIQD.Div(bill).Floor().Mul(bill)
		break
	}

	if change.LessThan(p.MinChangeIQD) {
		return decimal.Zero
	}
	return change
}

// RoundUSDChange rounds a USD overpayment down to whole dollars; the
// drawer keeps no US coins. Overpayments at or below MinChangeUSD are
// absorbed.
func (p ChangePolicy) RoundUSDChange(overpaymentUSD decimal.Decimal) decimal.Decimal {
	if overpaymentUSD.LessThanOrEqual(p.MinChangeUSD) {
		return decimal.Zero
	}
	return overpaymentUSD.Floor()
}
