package settlement

import (
	"github.com/shopspring/decimal"
)

// PaymentInput is the cash the debtor hands over, split per currency.
// Both components are gross amounts before any change is returned.
type PaymentInput struct {
	USD decimal.Decimal
	IQD decimal.Decimal
}

// IsZero reports whether no money was tendered at all
func (p PaymentInput) IsZero() bool {
	return !p.USD.IsPositive() && !p.IQD.IsPositive()
}

// Validate rejects negative components and all-zero payments
func (p PaymentInput) Validate() error {
	if p.USD.IsNegative() || p.IQD.IsNegative() {
		return ErrNonPositivePayment
	}
	if p.IsZero() {
		return ErrNonPositivePayment
	}
	return nil
}

// ChangeCurrency names a currency the caller singles out in options
type ChangeCurrency string

const (
	ChangeCurrencyAuto ChangeCurrency = ""
	ChangeCurrencyUSD  ChangeCurrency = "USD"
	ChangeCurrencyIQD  ChangeCurrency = "IQD"
)

// ReconcileOptions tune how a single payment is applied
type ReconcileOptions struct {
	// PreferUSDChange returns change in USD when the payment was tendered
	// purely in USD. Without it change is always IQD.
	PreferUSDChange bool
	// ForceCurrency names the currency that absorbs the entire change
	// deduction on a single debt. In a settle-all run it instead restricts
	// the settlement pool to that currency's tender.
	ForceCurrency ChangeCurrency
	// Note is carried onto the recorded payment entry.
	Note string
}

// ReconciliationResult reports what a payment did to one debt
type ReconciliationResult struct {
	DebtID string `json:"debt_id"`
	// Net amounts actually applied to the debt, after change.
	NetUSD decimal.Decimal `json:"net_usd"`
	NetIQD decimal.Decimal `json:"net_iqd"`
	// Change physically handed back to the payer.
	ChangeUSD decimal.Decimal `json:"change_usd"`
	ChangeIQD decimal.Decimal `json:"change_iqd"`
	// Overpayment absorbed by the shop because it was below the change
	// threshold or lost to bill rounding.
	AbsorbedUSD decimal.Decimal `json:"absorbed_usd"`
	// RemainingUSD is the outstanding balance after this payment.
	RemainingUSD decimal.Decimal `json:"remaining_usd"`
	Settled      bool            `json:"settled"`
	RateUsed     decimal.Decimal `json:"rate_used"`
}

// Reconciler applies one payment against one debt: it caps the payment
// at the outstanding balance, rounds the surplus into payable change,
// and mutates the debt with the net amount only.
type Reconciler struct {
	policy ChangePolicy
}

// NewReconciler creates a Reconciler with the given change policy
func NewReconciler(policy ChangePolicy) *Reconciler {
	return &Reconciler{policy: policy}
}

// Reconcile applies payment to debt at the given current rate. The debt
// is mutated on success; on any error it is left untouched.
func (r *Reconciler) Reconcile(debt *Debt, payment PaymentInput, currentRate decimal.Decimal, opts ReconcileOptions) (*ReconciliationResult, error) {
	if err := payment.Validate(); err != nil {
		return nil, err
	}
	if debt.IsSettled() {
		return nil, ErrAlreadySettled
	}

	rate, err := ResolveRate(debt, currentRate)
	if err != nil {
		return nil, err
	}

	remaining, err := debt.RemainingUSD(currentRate)
	if err != nil {
		return nil, err
	}

	tendered, err := usdEquivalent(payment.USD, payment.IQD, rate)
	if err != nil {
		return nil, err
	}

	result := &ReconciliationResult{
		DebtID:      debt.ID.String(),
		NetUSD:      payment.USD,
		NetIQD:      payment.IQD,
		ChangeUSD:   decimal.Zero,
		ChangeIQD:   decimal.Zero,
		AbsorbedUSD: decimal.Zero,
		RateUsed:    rate,
	}

	overpay := tendered.Sub(remaining)
	if overpay.IsPositive() {
		changeUSD, changeIQD := r.computeChange(overpay, payment, rate, opts)

		changeEquiv, cerr := usdEquivalent(changeUSD, changeIQD, rate)
		if cerr != nil {
			return nil, cerr
		}
		result.ChangeUSD = changeUSD
		result.ChangeIQD = changeIQD
		result.AbsorbedUSD = overpay.Sub(changeEquiv)
		if result.AbsorbedUSD.IsNegative() {
			result.AbsorbedUSD = decimal.Zero
		}

		netUSD, netIQD, derr := deductChange(payment, changeUSD, changeIQD, rate, opts.ForceCurrency)
		if derr != nil {
			return nil, derr
		}
		result.NetUSD = netUSD
		result.NetIQD = netIQD
	}

	if err := debt.ApplyPayment(result.NetUSD, result.NetIQD, currentRate, opts.Note); err != nil {
		return nil, err
	}

	after, err := debt.RemainingUSD(currentRate)
	if err != nil {
		return nil, err
	}
	result.RemainingUSD = after
	result.Settled = debt.IsSettled()

	return result, nil
}

// computeChange turns a USD-equivalent overpayment into payable change.
// IQD is the default change currency; USD change only for a pure-USD
// tender with the preference set.
func (r *Reconciler) computeChange(overpayUSD decimal.Decimal, payment PaymentInput, rate decimal.Decimal, opts ReconcileOptions) (changeUSD, changeIQD decimal.Decimal) {
	if opts.PreferUSDChange && payment.USD.IsPositive() && !payment.IQD.IsPositive() {
		return r.policy.RoundUSDChange(overpayUSD), decimal.Zero
	}
	return decimal.Zero, r.policy.RoundIQDChange(overpayUSD.Mul(rate))
}

// deductChange subtracts the change from the tendered amounts to get the
// net applied to the debt. A single-currency tender absorbs the whole
// deduction; a mixed tender splits it proportionally to each currency's
// share, unless force names one currency to absorb it all. When the
// absorbing side runs out, the other side covers the converted shortfall.
func deductChange(payment PaymentInput, changeUSD, changeIQD, rate decimal.Decimal, force ChangeCurrency) (netUSD, netIQD decimal.Decimal, err error) {
	netUSD = payment.USD
	netIQD = payment.IQD

	changeEquiv, err := usdEquivalent(changeUSD, changeIQD, rate)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if !changeEquiv.IsPositive() {
		return netUSD, netIQD, nil
	}

	var deductUSD decimal.Decimal
	switch {
	case force == ChangeCurrencyUSD:
		deductUSD = changeEquiv
	case force == ChangeCurrencyIQD:
		deductUSD = decimal.Zero
	case !payment.IQD.IsPositive():
		deductUSD = changeEquiv
	case !payment.USD.IsPositive():
		deductUSD = decimal.Zero
	default:
		tendered, terr := usdEquivalent(payment.USD, payment.IQD, rate)
		if terr != nil {
			return decimal.Zero, decimal.Zero, terr
		}
		deductUSD = changeEquiv.Mul(payment.USD).Div(tendered)
	}

	var deductIQD decimal.Decimal
	remainderUSD := changeEquiv.Sub(deductUSD)
	switch {
	case deductUSD.IsZero() && changeUSD.IsZero():
		// The whole deduction lands on the IQD side and the change is
		// already denominated in IQD, so take it verbatim to avoid
		// conversion round-trips.
		deductIQD = changeIQD
	case remainderUSD.IsPositive():
		deductIQD, err = ToIQD(remainderUSD, rate)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
	default:
		deductIQD = decimal.Zero
	}

	netUSD = netUSD.Sub(deductUSD)
	netIQD = netIQD.Sub(deductIQD)

	if netUSD.IsNegative() {
		shortfallIQD, cerr := ToIQD(netUSD.Neg(), rate)
		if cerr != nil {
			return decimal.Zero, decimal.Zero, cerr
		}
		netIQD = netIQD.Sub(shortfallIQD)
		netUSD = decimal.Zero
	}
	if netIQD.IsNegative() {
		shortfallUSD, cerr := ToUSD(netIQD.Neg(), rate)
		if cerr != nil {
			return decimal.Zero, decimal.Zero, cerr
		}
		netUSD = netUSD.Sub(shortfallUSD)
		netIQD = decimal.Zero
	}
	if netUSD.IsNegative() {
		netUSD = decimal.Zero
	}
	return netUSD, netIQD, nil
}
