package settlement

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DebtApplication records what the waterfall applied to one debt
type DebtApplication struct {
	DebtID       string          `json:"debt_id"`
	NetUSD       decimal.Decimal `json:"net_usd"`
	NetIQD       decimal.Decimal `json:"net_iqd"`
	RemainingUSD decimal.Decimal `json:"remaining_usd"`
	Settled      bool            `json:"settled"`
}

// WaterfallOutcome summarizes a settle-all run across a debtor's debts
type WaterfallOutcome struct {
	Applications []DebtApplication `json:"applications"`
	SettledCount int               `json:"settled_count"`
	// TotalNet* is the sum actually applied across all debts.
	TotalNetUSD decimal.Decimal `json:"total_net_usd"`
	TotalNetIQD decimal.Decimal `json:"total_net_iqd"`
	// Change handed back from whatever the pool did not consume.
	ChangeUSD decimal.Decimal `json:"change_usd"`
	ChangeIQD decimal.Decimal `json:"change_iqd"`
	// Surplus absorbed by the shop after change rounding and thresholds.
	AbsorbedUSD decimal.Decimal `json:"absorbed_usd"`
}

// Engine settles a debtor's open debts oldest-first from a single cash
// pool. Each debt consumes from the pool up to its own outstanding
// balance at its own rate; change is computed once at the end from the
// leftover, never per debt.
type Engine struct {
	policy ChangePolicy
}

// NewEngine creates an Engine with the given change policy
func NewEngine(policy ChangePolicy) *Engine {
	return &Engine{policy: policy}
}

// SettleAll runs the waterfall. Debts already settled or reversed are
// skipped; the rest are mutated in place as payments land on them. The
// slice is reordered oldest createdAt first.
func (e *Engine) SettleAll(debts []*Debt, payment PaymentInput, currentRate decimal.Decimal, opts ReconcileOptions) (*WaterfallOutcome, error) {
	if err := payment.Validate(); err != nil {
		return nil, err
	}
	if currentRate.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidRate
	}

	sort.SliceStable(debts, func(i, j int) bool {
		return debts[i].CreatedAt.Before(debts[j].CreatedAt)
	})

	outcome := &WaterfallOutcome{
		Applications: []DebtApplication{},
		TotalNetUSD:  decimal.Zero,
		TotalNetIQD:  decimal.Zero,
		ChangeUSD:    decimal.Zero,
		ChangeIQD:    decimal.Zero,
		AbsorbedUSD:  decimal.Zero,
	}

	poolUSD := payment.USD
	poolIQD := payment.IQD

	for _, debt := range debts {
		if debt.IsSettled() || debt.Status == DebtStatusReversed {
			continue
		}
		if !poolUSD.IsPositive() && !poolIQD.IsPositive() {
			break
		}

		rate, err := ResolveRate(debt, currentRate)
		if err != nil {
			return nil, err
		}
		remaining, err := debt.RemainingUSD(currentRate)
		if err != nil {
			return nil, err
		}
		if !remaining.IsPositive() {
			continue
		}

		// USD from the pool covers the balance first, then IQD. A forced
		// currency draws exclusively from its own side of the pool,
		// converting the balance at settlement time.
		var takeUSD, takeIQD decimal.Decimal
		switch opts.ForceCurrency {
		case ChangeCurrencyUSD:
			takeUSD = decimal.Min(poolUSD, remaining)
			takeIQD = decimal.Zero
		case ChangeCurrencyIQD:
			takeUSD = decimal.Zero
			takeIQD = decimal.Min(poolIQD, remaining.Mul(rate))
		default:
			takeUSD = decimal.Min(poolUSD, remaining)
			takeIQD = decimal.Min(poolIQD, remaining.Sub(takeUSD).Mul(rate))
		}

		if !takeUSD.IsPositive() && !takeIQD.IsPositive() {
			continue
		}

		if err := debt.ApplyPayment(takeUSD, takeIQD, currentRate, opts.Note); err != nil {
			return nil, err
		}

		poolUSD = poolUSD.Sub(takeUSD)
		poolIQD = poolIQD.Sub(takeIQD)

		after, err := debt.RemainingUSD(currentRate)
		if err != nil {
			return nil, err
		}

		outcome.TotalNetUSD = outcome.TotalNetUSD.Add(takeUSD)
		outcome.TotalNetIQD = outcome.TotalNetIQD.Add(takeIQD)
		outcome.Applications = append(outcome.Applications, DebtApplication{
			DebtID:       debt.ID.String(),
			NetUSD:       takeUSD,
			NetIQD:       takeIQD,
			RemainingUSD: after,
			Settled:      debt.IsSettled(),
		})
		if debt.IsSettled() {
			outcome.SettledCount++
		}
	}

	if err := e.settleLeftover(outcome, payment, poolUSD, poolIQD, currentRate, opts); err != nil {
		return nil, err
	}

	return outcome, nil
}

// settleLeftover converts the unconsumed pool into change plus an
// absorbed remainder, exactly once for the whole run
func (e *Engine) settleLeftover(outcome *WaterfallOutcome, payment PaymentInput, leftUSD, leftIQD, currentRate decimal.Decimal, opts ReconcileOptions) error {
	if !leftUSD.IsPositive() && !leftIQD.IsPositive() {
		return nil
	}

	switch opts.ForceCurrency {
	case ChangeCurrencyUSD:
		// The IQD tender never entered the pool, so it goes back uncut.
		outcome.ChangeIQD = leftIQD
		outcome.ChangeUSD = e.policy.RoundUSDChange(leftUSD)
		outcome.AbsorbedUSD = leftUSD.Sub(outcome.ChangeUSD)
	case ChangeCurrencyIQD:
		outcome.ChangeUSD = leftUSD
		outcome.ChangeIQD = e.policy.RoundIQDChange(leftIQD)
		absorbed, err := ToUSD(leftIQD.Sub(outcome.ChangeIQD), currentRate)
		if err != nil {
			return err
		}
		outcome.AbsorbedUSD = absorbed
	default:
		leftoverEquiv, err := usdEquivalent(leftUSD, leftIQD, currentRate)
		if err != nil {
			return err
		}
		if opts.PreferUSDChange && payment.USD.IsPositive() && !payment.IQD.IsPositive() {
			outcome.ChangeUSD = e.policy.RoundUSDChange(leftoverEquiv)
		} else {
			outcome.ChangeIQD = e.policy.RoundIQDChange(leftoverEquiv.Mul(currentRate))
		}
		changeEquiv, err := usdEquivalent(outcome.ChangeUSD, outcome.ChangeIQD, currentRate)
		if err != nil {
			return err
		}
		outcome.AbsorbedUSD = leftoverEquiv.Sub(changeEquiv)
	}

	if outcome.AbsorbedUSD.IsNegative() {
		outcome.AbsorbedUSD = decimal.Zero
	}
	return nil
}
