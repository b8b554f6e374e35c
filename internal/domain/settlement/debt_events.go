package settlement

import (
	"github.com/dukkan/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the settlement domain
const (
	EventTypeDebtCreated       = "settlement.debt.created"
	EventTypeDebtPartiallyPaid = "settlement.debt.partially_paid"
	EventTypeDebtPaid          = "settlement.debt.paid"
	EventTypeDebtReversed      = "settlement.debt.reversed"
)

// DebtCreatedEvent is raised when a new debt is recorded
type DebtCreatedEvent struct {
	shared.BaseDomainEvent
	DebtorKey   string          `json:"debtor_key"`
	Kind        DebtKind        `json:"kind"`
	CurrencyTag CurrencyTag     `json:"currency_tag"`
	OriginalUSD decimal.Decimal `json:"original_usd"`
	OriginalIQD decimal.Decimal `json:"original_iqd"`
}

// NewDebtCreatedEvent creates a new DebtCreatedEvent
func NewDebtCreatedEvent(d *Debt) *DebtCreatedEvent {
	return &DebtCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDebtCreated, "Debt", d.ID),
		DebtorKey:       d.DebtorKey,
		Kind:            d.Kind,
		CurrencyTag:     d.CurrencyTag,
		OriginalUSD:     d.OriginalUSD,
		OriginalIQD:     d.OriginalIQD,
	}
}

// DebtPartiallyPaidEvent is raised when a payment reduces but does not
// clear the outstanding balance
type DebtPartiallyPaidEvent struct {
	shared.BaseDomainEvent
	DebtorKey    string          `json:"debtor_key"`
	NetUSD       decimal.Decimal `json:"net_usd"`
	NetIQD       decimal.Decimal `json:"net_iqd"`
	RemainingUSD decimal.Decimal `json:"remaining_usd"`
}

// NewDebtPartiallyPaidEvent creates a new DebtPartiallyPaidEvent
func NewDebtPartiallyPaidEvent(d *Debt, netUSD, netIQD, remainingUSD decimal.Decimal) *DebtPartiallyPaidEvent {
	return &DebtPartiallyPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDebtPartiallyPaid, "Debt", d.ID),
		DebtorKey:       d.DebtorKey,
		NetUSD:          netUSD,
		NetIQD:          netIQD,
		RemainingUSD:    remainingUSD,
	}
}

// DebtPaidEvent is raised when a debt is fully settled
type DebtPaidEvent struct {
	shared.BaseDomainEvent
	DebtorKey string          `json:"debtor_key"`
	PaidUSD   decimal.Decimal `json:"paid_usd"`
	PaidIQD   decimal.Decimal `json:"paid_iqd"`
}

// NewDebtPaidEvent creates a new DebtPaidEvent
func NewDebtPaidEvent(d *Debt) *DebtPaidEvent {
	return &DebtPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDebtPaid, "Debt", d.ID),
		DebtorKey:       d.DebtorKey,
		PaidUSD:         d.PaidUSD,
		PaidIQD:         d.PaidIQD,
	}
}

// DebtReversedEvent is raised when a debt is voided
type DebtReversedEvent struct {
	shared.BaseDomainEvent
	DebtorKey      string          `json:"debtor_key"`
	PreviousStatus DebtStatus      `json:"previous_status"`
	RefundUSD      decimal.Decimal `json:"refund_usd"`
	RefundIQD      decimal.Decimal `json:"refund_iqd"`
	Reason         string          `json:"reason"`
}

// NewDebtReversedEvent creates a new DebtReversedEvent
func NewDebtReversedEvent(d *Debt, previous DebtStatus, refundUSD, refundIQD decimal.Decimal) *DebtReversedEvent {
	return &DebtReversedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDebtReversed, "Debt", d.ID),
		DebtorKey:       d.DebtorKey,
		PreviousStatus:  previous,
		RefundUSD:       refundUSD,
		RefundIQD:       refundIQD,
		Reason:          d.ReversalReason,
	}
}
