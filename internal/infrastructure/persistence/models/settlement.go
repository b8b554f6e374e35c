package models

import (
	"time"

	"github.com/dukkan/backend/internal/domain/settlement"
	"github.com/dukkan/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DebtModel is the persistence model for the Debt aggregate root.
type DebtModel struct {
	AggregateModel
	DebtorKey       string                     `gorm:"type:varchar(200);not null;index"`
	DebtorName      string                     `gorm:"type:varchar(200);not null"`
	Kind            settlement.DebtKind        `gorm:"type:varchar(20);not null;index"`
	CurrencyTag     settlement.CurrencyTag     `gorm:"type:varchar(10);not null"`
	OriginalUSD     decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	OriginalIQD     decimal.Decimal            `gorm:"type:decimal(18,2);not null"`
	PaidUSD         decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	PaidIQD         decimal.Decimal            `gorm:"type:decimal(18,2);not null"`
	FrozenRate      *decimal.Decimal           `gorm:"type:decimal(18,6)"`
	Status          settlement.DebtStatus      `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	PaidAt          *time.Time                 `gorm:"index"`
	ReversedAt      *time.Time
	ReversalReason  string                     `gorm:"type:varchar(500)"`
	Description     string                     `gorm:"type:text"`
	SourceReference string                     `gorm:"type:varchar(100)"`
	PaymentEntries  settlement.PaymentEntries  `gorm:"type:json;default:'[]'"`
}

// TableName returns the table name for GORM
func (DebtModel) TableName() string {
	return "debts"
}

// ToDomain converts the persistence model to a domain Debt aggregate.
func (m *DebtModel) ToDomain() *settlement.Debt {
	return &settlement.Debt{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		DebtorKey:              m.DebtorKey,
		DebtorName:             m.DebtorName,
		Kind:                   m.Kind,
		CurrencyTag:            m.CurrencyTag,
		OriginalUSD:            m.OriginalUSD,
		OriginalIQD:            m.OriginalIQD,
		PaidUSD:                m.PaidUSD,
		PaidIQD:                m.PaidIQD,
		ExchangeRateAtCreation: m.FrozenRate,
		Status:                 m.Status,
		PaidAt:                 m.PaidAt,
		ReversedAt:             m.ReversedAt,
		ReversalReason:         m.ReversalReason,
		Description:            m.Description,
		SourceReference:        m.SourceReference,
		PaymentEntries:         m.PaymentEntries,
	}
}

// FromDomain populates the persistence model from a domain Debt aggregate.
func (m *DebtModel) FromDomain(d *settlement.Debt) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.DebtorKey = d.DebtorKey
	m.DebtorName = d.DebtorName
	m.Kind = d.Kind
	m.CurrencyTag = d.CurrencyTag
	m.OriginalUSD = d.OriginalUSD
	m.OriginalIQD = d.OriginalIQD
	m.PaidUSD = d.PaidUSD
	m.PaidIQD = d.PaidIQD
	m.FrozenRate = d.ExchangeRateAtCreation
	m.Status = d.Status
	m.PaidAt = d.PaidAt
	m.ReversedAt = d.ReversedAt
	m.ReversalReason = d.ReversalReason
	m.Description = d.Description
	m.SourceReference = d.SourceReference
	m.PaymentEntries = d.PaymentEntries
}

// DebtModelFromDomain creates a persistence model from a domain Debt.
func DebtModelFromDomain(d *settlement.Debt) *DebtModel {
	m := &DebtModel{}
	m.FromDomain(d)
	return m
}

// CashLedgerModel is the persistence model for the CashLedger aggregate.
type CashLedgerModel struct {
	AggregateModel
	Name       string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	BalanceUSD decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BalanceIQD decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (CashLedgerModel) TableName() string {
	return "cash_ledgers"
}

// ToDomain converts the persistence model to a domain CashLedger.
func (m *CashLedgerModel) ToDomain() *settlement.CashLedger {
	return &settlement.CashLedger{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		Name:       m.Name,
		BalanceUSD: m.BalanceUSD,
		BalanceIQD: m.BalanceIQD,
	}
}

// FromDomain populates the persistence model from a domain CashLedger.
func (m *CashLedgerModel) FromDomain(l *settlement.CashLedger) {
	m.FromDomainAggregateRoot(l.BaseAggregateRoot)
	m.Name = l.Name
	m.BalanceUSD = l.BalanceUSD
	m.BalanceIQD = l.BalanceIQD
}

// CashLedgerModelFromDomain creates a persistence model from a domain CashLedger.
func CashLedgerModelFromDomain(l *settlement.CashLedger) *CashLedgerModel {
	m := &CashLedgerModel{}
	m.FromDomain(l)
	return m
}

// ExchangeRateModel is the persistence model for one rate quote.
type ExchangeRateModel struct {
	BaseModel
	Rate   decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	Source string          `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (ExchangeRateModel) TableName() string {
	return "exchange_rates"
}

// ToDomain converts the persistence model to a domain ExchangeRate.
func (m *ExchangeRateModel) ToDomain() *settlement.ExchangeRate {
	return &settlement.ExchangeRate{
		BaseEntity: m.BaseModel.ToDomain(),
		Rate:       m.Rate,
		Source:     m.Source,
	}
}

// FromDomain populates the persistence model from a domain ExchangeRate.
func (m *ExchangeRateModel) FromDomain(r *settlement.ExchangeRate) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.Rate = r.Rate
	m.Source = r.Source
}

// ExchangeRateModelFromDomain creates a persistence model from a domain ExchangeRate.
func ExchangeRateModelFromDomain(r *settlement.ExchangeRate) *ExchangeRateModel {
	m := &ExchangeRateModel{}
	m.FromDomain(r)
	return m
}
