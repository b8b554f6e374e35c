package settlement

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dukkan/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Domain errors for the debt lifecycle
var (
	ErrInvalidAmount      = shared.NewDomainError("INVALID_AMOUNT", "Debt principal must be positive in at least one currency")
	ErrAlreadySettled     = shared.NewDomainError("ALREADY_SETTLED", "Debt is already fully settled")
	ErrNonPositivePayment = shared.NewDomainError("NON_POSITIVE_PAYMENT", "Payment must be positive in at least one currency")
	ErrDebtorNotFound     = shared.NewDomainError("DEBTOR_NOT_FOUND", "No unsettled debts exist for this debtor")
)

// DebtKind distinguishes who owes the shop (or whom the shop owes)
type DebtKind string

const (
	DebtKindCustomer DebtKind = "CUSTOMER" // customer bought on credit
	DebtKindCompany  DebtKind = "COMPANY"  // supplier/company account
	DebtKindPersonal DebtKind = "PERSONAL" // personal loan to a named person
)

// IsValid checks if the kind is a valid DebtKind
func (k DebtKind) IsValid() bool {
	switch k {
	case DebtKindCustomer, DebtKindCompany, DebtKindPersonal:
		return true
	}
	return false
}

// String returns the string representation of DebtKind
func (k DebtKind) String() string {
	return string(k)
}

// CurrencyTag declares which currencies a debt's principal is split
// across. It is mandatory at creation and never inferred downstream.
type CurrencyTag string

const (
	CurrencyTagUSD   CurrencyTag = "USD"
	CurrencyTagIQD   CurrencyTag = "IQD"
	CurrencyTagMulti CurrencyTag = "MULTI"
)

// IsValid checks if the tag is a valid CurrencyTag
func (t CurrencyTag) IsValid() bool {
	switch t {
	case CurrencyTagUSD, CurrencyTagIQD, CurrencyTagMulti:
		return true
	}
	return false
}

// String returns the string representation of CurrencyTag
func (t CurrencyTag) String() string {
	return string(t)
}

// DebtStatus represents the settlement state of a debt
type DebtStatus string

const (
	DebtStatusPending  DebtStatus = "PENDING"  // no payment applied yet
	DebtStatusPartial  DebtStatus = "PARTIAL"  // partially paid
	DebtStatusPaid     DebtStatus = "PAID"     // fully settled
	DebtStatusReversed DebtStatus = "REVERSED" // reversed/voided transaction
)

// IsValid checks if the status is a valid DebtStatus
func (s DebtStatus) IsValid() bool {
	switch s {
	case DebtStatusPending, DebtStatusPartial, DebtStatusPaid, DebtStatusReversed:
		return true
	}
	return false
}

// IsTerminal returns true if the debt is in a terminal state
func (s DebtStatus) IsTerminal() bool {
	return s == DebtStatusPaid || s == DebtStatusReversed
}

// String returns the string representation of DebtStatus
func (s DebtStatus) String() string {
	return string(s)
}

// PaymentEntry records one net amount applied to a debt. Net means
// after change was deducted - change handed back never appears here.
type PaymentEntry struct {
	ID        uuid.UUID       `json:"id"`
	NetUSD    decimal.Decimal `json:"net_usd"`
	NetIQD    decimal.Decimal `json:"net_iqd"`
	RateUsed  decimal.Decimal `json:"rate_used"`
	AppliedAt time.Time       `json:"applied_at"`
	Note      string          `json:"note,omitempty"`
}

// PaymentEntries is stored as a JSON column alongside the debt row
type PaymentEntries []PaymentEntry

// Value implements driver.Valuer for JSON storage
func (p PaymentEntries) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner for JSON storage
func (p *PaymentEntries) Scan(value interface{}) error {
	if value == nil {
		*p = PaymentEntries{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan PaymentEntries: unsupported type")
	}
	if len(bytes) == 0 {
		*p = PaymentEntries{}
		return nil
	}
	return json.Unmarshal(bytes, p)
}

// Debt represents one outstanding obligation: a customer debt, a company
// account, or a personal loan. Principal may be split across USD and IQD.
type Debt struct {
	shared.BaseAggregateRoot
	DebtorKey              string           `json:"debtor_key"`
	DebtorName             string           `json:"debtor_name"`
	Kind                   DebtKind         `json:"kind"`
	CurrencyTag            CurrencyTag      `json:"currency_tag"`
	OriginalUSD            decimal.Decimal  `json:"original_usd"`
	OriginalIQD            decimal.Decimal  `json:"original_iqd"`
	PaidUSD                decimal.Decimal  `json:"paid_usd"`
	PaidIQD                decimal.Decimal  `json:"paid_iqd"`
	ExchangeRateAtCreation *decimal.Decimal `json:"exchange_rate_at_creation"`
	Status                 DebtStatus       `json:"status"`
	PaidAt                 *time.Time       `json:"paid_at"`
	ReversedAt             *time.Time       `json:"reversed_at"`
	ReversalReason         string           `json:"reversal_reason,omitempty"`
	Description            string           `json:"description,omitempty"`
	SourceReference        string           `json:"source_reference,omitempty"`
	PaymentEntries         PaymentEntries   `json:"payment_entries"`
}

// NormalizeDebtorKey folds a debtor name into the key debts are grouped
// by: case-insensitive with collapsed whitespace.
func NormalizeDebtorKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// NewDebt creates a new debt. The currency tag is mandatory and must
// agree with the principal split; a frozen exchange rate, when given,
// must be positive.
func NewDebt(
	debtorName string,
	kind DebtKind,
	tag CurrencyTag,
	originalUSD, originalIQD decimal.Decimal,
	rate *decimal.Decimal,
	description, sourceReference string,
) (*Debt, error) {
	key := NormalizeDebtorKey(debtorName)
	if key == "" {
		return nil, shared.NewDomainError("INVALID_DEBTOR", "Debtor name cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Debt kind is not valid")
	}
	if !tag.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY_TAG", "Currency tag is not valid")
	}
	if originalUSD.IsNegative() || originalIQD.IsNegative() {
		return nil, ErrInvalidAmount
	}
	if !originalUSD.IsPositive() && !originalIQD.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if err := validateTag(tag, originalUSD, originalIQD); err != nil {
		return nil, err
	}
	if rate != nil && rate.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidRate
	}

	d := &Debt{
		BaseAggregateRoot:      shared.NewBaseAggregateRoot(),
		DebtorKey:              key,
		DebtorName:             strings.TrimSpace(debtorName),
		Kind:                   kind,
		CurrencyTag:            tag,
		OriginalUSD:            originalUSD,
		OriginalIQD:            originalIQD,
		PaidUSD:                decimal.Zero,
		PaidIQD:                decimal.Zero,
		ExchangeRateAtCreation: rate,
		Status:                 DebtStatusPending,
		Description:            description,
		SourceReference:        sourceReference,
		PaymentEntries:         PaymentEntries{},
	}

	d.AddDomainEvent(NewDebtCreatedEvent(d))

	return d, nil
}

// validateTag rejects principal splits that contradict the declared tag
func validateTag(tag CurrencyTag, usd, iqd decimal.Decimal) error {
	switch tag {
	case CurrencyTagUSD:
		if iqd.IsPositive() {
			return shared.NewDomainError("INVALID_CURRENCY_TAG", "USD-tagged debt cannot carry an IQD principal")
		}
	case CurrencyTagIQD:
		if usd.IsPositive() {
			return shared.NewDomainError("INVALID_CURRENCY_TAG", "IQD-tagged debt cannot carry a USD principal")
		}
	case CurrencyTagMulti:
		if !usd.IsPositive() || !iqd.IsPositive() {
			return shared.NewDomainError("INVALID_CURRENCY_TAG", "MULTI-tagged debt must carry both USD and IQD principal")
		}
	}
	return nil
}

// RemainingUSD computes the outstanding balance on a common USD basis
// using the debt's frozen rate, falling back to currentRate. The result
// is clamped at zero and only ever decreases as payments accumulate.
func (d *Debt) RemainingUSD(currentRate decimal.Decimal) (decimal.Decimal, error) {
	rate, err := ResolveRate(d, currentRate)
	if err != nil {
		return decimal.Zero, err
	}
	original, err := usdEquivalent(d.OriginalUSD, d.OriginalIQD, rate)
	if err != nil {
		return decimal.Zero, err
	}
	paid, err := usdEquivalent(d.PaidUSD, d.PaidIQD, rate)
	if err != nil {
		return decimal.Zero, err
	}
	remaining := original.Sub(paid)
	if remaining.IsNegative() {
		return decimal.Zero, nil
	}
	return remaining, nil
}

// RemainingBreakdown reports the outstanding balance per currency for
// display: the unpaid share of each original principal, clamped at zero.
func (d *Debt) RemainingBreakdown() (usd, iqd decimal.Decimal) {
	usd = d.OriginalUSD.Sub(d.PaidUSD)
	if usd.IsNegative() {
		usd = decimal.Zero
	}
	iqd = d.OriginalIQD.Sub(d.PaidIQD)
	if iqd.IsNegative() {
		iqd = decimal.Zero
	}
	return usd, iqd
}

// IsSettled returns true once the debt has been fully paid
func (d *Debt) IsSettled() bool {
	return d.PaidAt != nil
}

// ApplyPayment accumulates a net (post-change) amount onto the debt.
// It is the only mutator of the paid fields; it never interprets change.
// The debt flips to PAID exactly when the remaining balance drops within
// epsilon of zero.
func (d *Debt) ApplyPayment(netUSD, netIQD, currentRate decimal.Decimal, note string) error {
	if d.Status == DebtStatusReversed {
		return shared.ErrInvalidState
	}
	if d.IsSettled() {
		return ErrAlreadySettled
	}
	if netUSD.IsNegative() || netIQD.IsNegative() {
		return ErrNonPositivePayment
	}
	if !netUSD.IsPositive() && !netIQD.IsPositive() {
		return ErrNonPositivePayment
	}
	rate, err := ResolveRate(d, currentRate)
	if err != nil {
		return err
	}

	d.PaidUSD = d.PaidUSD.Add(netUSD)
	d.PaidIQD = d.PaidIQD.Add(netIQD)
	d.PaymentEntries = append(d.PaymentEntries, PaymentEntry{
		ID:        uuid.New(),
		NetUSD:    netUSD,
		NetIQD:    netIQD,
		RateUsed:  rate,
		AppliedAt: time.Now(),
		Note:      note,
	})

	remaining, err := d.RemainingUSD(currentRate)
	if err != nil {
		return err
	}
	if remaining.LessThanOrEqual(settleEpsilon) {
		now := time.Now()
		d.Status = DebtStatusPaid
		d.PaidAt = &now
		d.AddDomainEvent(NewDebtPaidEvent(d))
	} else {
		d.Status = DebtStatusPartial
		d.AddDomainEvent(NewDebtPartiallyPaidEvent(d, netUSD, netIQD, remaining))
	}

	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// Reverse voids the debt (return/reverse transaction). It reports the
// net amounts that were applied so the caller can back them out of the
// cash ledger.
func (d *Debt) Reverse(reason string) (refundUSD, refundIQD decimal.Decimal, err error) {
	if d.Status == DebtStatusReversed {
		return decimal.Zero, decimal.Zero, shared.ErrInvalidState
	}
	if reason == "" {
		return decimal.Zero, decimal.Zero, shared.NewDomainError("INVALID_REASON", "Reversal reason is required")
	}

	refundUSD = d.PaidUSD
	refundIQD = d.PaidIQD

	now := time.Now()
	previous := d.Status
	d.Status = DebtStatusReversed
	d.ReversedAt = &now
	d.ReversalReason = reason
	d.UpdatedAt = now
	d.IncrementVersion()

	d.AddDomainEvent(NewDebtReversedEvent(d, previous, refundUSD, refundIQD))

	return refundUSD, refundIQD, nil
}

// DisplayLabel renders the debt for operator-facing lists
func (d *Debt) DisplayLabel() string {
	switch d.CurrencyTag {
	case CurrencyTagUSD:
		return fmt.Sprintf("%s: %s USD", d.DebtorName, d.OriginalUSD.StringFixed(2))
	case CurrencyTagIQD:
		return fmt.Sprintf("%s: %s IQD", d.DebtorName, d.OriginalIQD.StringFixed(0))
	default:
		return fmt.Sprintf("%s: %s USD + %s IQD", d.DebtorName, d.OriginalUSD.StringFixed(2), d.OriginalIQD.StringFixed(0))
	}
}
