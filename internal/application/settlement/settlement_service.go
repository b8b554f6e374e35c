package settlement

import (
	"context"
	"time"

	"github.com/dukkan/backend/internal/domain/settlement"
	"github.com/dukkan/backend/internal/domain/shared"
	"github.com/dukkan/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DebtSettledNotification is delivered to the completion callback after a
// settling transaction has committed
type DebtSettledNotification struct {
	DebtID     uuid.UUID
	DebtorKey  string
	DebtorName string
	PaidUSD    valueobject.Money
	PaidIQD    valueobject.Money
	SettledAt  time.Time
}

// SettledCallback is invoked post-commit for every debt that reached PAID.
// It must not assume it runs inside the settling transaction.
type SettledCallback func(ctx context.Context, n DebtSettledNotification)

// Service provides application-level settlement operations
type Service struct {
	scope      TransactionScope
	reconciler *settlement.Reconciler
	engine     *settlement.Engine
	drawerName string
	onSettled  SettledCallback
	logger     *zap.Logger
}

// ServiceOption is a functional option for configuring Service
type ServiceOption func(*Service)

// WithChangePolicy replaces the default change policy
func WithChangePolicy(policy settlement.ChangePolicy) ServiceOption {
	return func(s *Service) {
		s.reconciler = settlement.NewReconciler(policy)
		s.engine = settlement.NewEngine(policy)
	}
}

// WithDrawer selects which drawer ledger the service settles against
func WithDrawer(name string) ServiceOption {
	return func(s *Service) {
		s.drawerName = name
	}
}

// WithSettledCallback registers a post-commit callback for settled debts
func WithSettledCallback(cb SettledCallback) ServiceOption {
	return func(s *Service) {
		s.onSettled = cb
	}
}

// NewService creates a new settlement Service
func NewService(scope TransactionScope, logger *zap.Logger, opts ...ServiceOption) *Service {
	policy := settlement.DefaultChangePolicy()
	s := &Service{
		scope:      scope,
		reconciler: settlement.NewReconciler(policy),
		engine:     settlement.NewEngine(policy),
		drawerName: settlement.DefaultDrawerName,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ===================== Responses =====================

// PaymentEntryResponse represents one recorded payment in API responses
type PaymentEntryResponse struct {
	ID        uuid.UUID       `json:"id"`
	NetUSD    decimal.Decimal `json:"net_usd"`
	NetIQD    decimal.Decimal `json:"net_iqd"`
	RateUsed  decimal.Decimal `json:"rate_used"`
	AppliedAt time.Time       `json:"applied_at"`
	Note      string          `json:"note,omitempty"`
}

// DebtResponse represents a debt in API responses
type DebtResponse struct {
	ID              uuid.UUID              `json:"id"`
	DebtorKey       string                 `json:"debtor_key"`
	DebtorName      string                 `json:"debtor_name"`
	Kind            string                 `json:"kind"`
	CurrencyTag     string                 `json:"currency_tag"`
	OriginalUSD     decimal.Decimal        `json:"original_usd"`
	OriginalIQD     decimal.Decimal        `json:"original_iqd"`
	PaidUSD         decimal.Decimal        `json:"paid_usd"`
	PaidIQD         decimal.Decimal        `json:"paid_iqd"`
	RemainingUSD    decimal.Decimal        `json:"remaining_usd"`
	RemainingIQD    decimal.Decimal        `json:"remaining_iqd"`
	FrozenRate      *decimal.Decimal       `json:"frozen_rate,omitempty"`
	Status          string                 `json:"status"`
	Description     string                 `json:"description,omitempty"`
	SourceReference string                 `json:"source_reference,omitempty"`
	PaymentEntries  []PaymentEntryResponse `json:"payment_entries,omitempty"`
	PaidAt          *time.Time             `json:"paid_at,omitempty"`
	ReversedAt      *time.Time             `json:"reversed_at,omitempty"`
	ReversalReason  string                 `json:"reversal_reason,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
	Version         int                    `json:"version"`
}

func toDebtResponse(d *settlement.Debt) *DebtResponse {
	remUSD, remIQD := d.RemainingBreakdown()
	resp := &DebtResponse{
		ID:              d.ID,
		DebtorKey:       d.DebtorKey,
		DebtorName:      d.DebtorName,
		Kind:            d.Kind.String(),
		CurrencyTag:     d.CurrencyTag.String(),
		OriginalUSD:     d.OriginalUSD,
		OriginalIQD:     d.OriginalIQD,
		PaidUSD:         d.PaidUSD,
		PaidIQD:         d.PaidIQD,
		RemainingUSD:    remUSD,
		RemainingIQD:    remIQD,
		FrozenRate:      d.ExchangeRateAtCreation,
		Status:          d.Status.String(),
		Description:     d.Description,
		SourceReference: d.SourceReference,
		PaidAt:          d.PaidAt,
		ReversedAt:      d.ReversedAt,
		ReversalReason:  d.ReversalReason,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
		Version:         d.GetVersion(),
	}
	for _, e := range d.PaymentEntries {
		resp.PaymentEntries = append(resp.PaymentEntries, PaymentEntryResponse{
			ID:        e.ID,
			NetUSD:    e.NetUSD,
			NetIQD:    e.NetIQD,
			RateUsed:  e.RateUsed,
			AppliedAt: e.AppliedAt,
			Note:      e.Note,
		})
	}
	return resp
}

// BalancesResponse reports the drawer balances plus a USD valuation
type BalancesResponse struct {
	Drawer        string          `json:"drawer"`
	BalanceUSD    decimal.Decimal `json:"balance_usd"`
	BalanceIQD    decimal.Decimal `json:"balance_iqd"`
	TotalUSDValue decimal.Decimal `json:"total_usd_value"`
	Rate          decimal.Decimal `json:"rate"`
}

// ExchangeRateResponse represents one rate quote in API responses
type ExchangeRateResponse struct {
	ID         uuid.UUID       `json:"id"`
	Rate       decimal.Decimal `json:"rate"`
	Source     string          `json:"source,omitempty"`
	RecordedAt time.Time       `json:"recorded_at"`
}

func toRateResponse(r *settlement.ExchangeRate) *ExchangeRateResponse {
	return &ExchangeRateResponse{
		ID:         r.ID,
		Rate:       r.Rate,
		Source:     r.Source,
		RecordedAt: r.CreatedAt,
	}
}

// PaymentResultResponse reports what one payment did
type PaymentResultResponse struct {
	Debt        *DebtResponse   `json:"debt"`
	NetUSD      decimal.Decimal `json:"net_usd"`
	NetIQD      decimal.Decimal `json:"net_iqd"`
	ChangeUSD   decimal.Decimal `json:"change_usd"`
	ChangeIQD   decimal.Decimal `json:"change_iqd"`
	AbsorbedUSD decimal.Decimal `json:"absorbed_usd"`
	RateUsed    decimal.Decimal `json:"rate_used"`
	Settled     bool            `json:"settled"`
}

// SettleAllResponse reports a full waterfall run for a debtor
type SettleAllResponse struct {
	DebtorKey    string                       `json:"debtor_key"`
	Applications []settlement.DebtApplication `json:"applications"`
	SettledCount int                          `json:"settled_count"`
	TotalNetUSD  decimal.Decimal              `json:"total_net_usd"`
	TotalNetIQD  decimal.Decimal              `json:"total_net_iqd"`
	ChangeUSD    decimal.Decimal              `json:"change_usd"`
	ChangeIQD    decimal.Decimal              `json:"change_iqd"`
	AbsorbedUSD  decimal.Decimal              `json:"absorbed_usd"`
	RateUsed     decimal.Decimal              `json:"rate_used"`
}

// ===================== Requests =====================

// CreateDebtRequest carries the inputs for recording a new debt
type CreateDebtRequest struct {
	DebtorName      string
	Kind            settlement.DebtKind
	CurrencyTag     settlement.CurrencyTag
	OriginalUSD     decimal.Decimal
	OriginalIQD     decimal.Decimal
	FreezeRate      bool
	Description     string
	SourceReference string
	// DisburseFromDrawer debits the drawer by the principal, for personal
	// loans paid out in cash.
	DisburseFromDrawer bool
}

// PaymentRequest carries the tendered cash and change preferences
type PaymentRequest struct {
	USD             decimal.Decimal
	IQD             decimal.Decimal
	PreferUSDChange bool
	ForceCurrency   settlement.ChangeCurrency
	Note            string
}

func (r PaymentRequest) input() settlement.PaymentInput {
	return settlement.PaymentInput{USD: r.USD, IQD: r.IQD}
}

func (r PaymentRequest) options() settlement.ReconcileOptions {
	return settlement.ReconcileOptions{
		PreferUSDChange: r.PreferUSDChange,
		ForceCurrency:   r.ForceCurrency,
		Note:            r.Note,
	}
}

// ListDebtsFilter defines filtering options for debt list queries
type ListDebtsFilter struct {
	Debtor   string `form:"debtor"`
	Kind     string `form:"kind"`
	Status   string `form:"status"`
	OpenOnly bool   `form:"open_only"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// ===================== Operations =====================

// currentRate loads the latest quote inside the given repositories
func currentRate(ctx context.Context, repos TransactionalRepositories) (decimal.Decimal, error) {
	quote, err := repos.RateRepo().Current(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if quote == nil {
		return decimal.Zero, settlement.ErrInvalidRate
	}
	return quote.Rate, nil
}

// drawer loads the service's drawer ledger, creating it on first use
func (s *Service) drawer(ctx context.Context, repos TransactionalRepositories) (*settlement.CashLedger, error) {
	ledger, err := repos.LedgerRepo().FindByName(ctx, s.drawerName)
	if err != nil {
		return nil, err
	}
	if ledger == nil {
		ledger = settlement.NewCashLedger(s.drawerName)
		if err := repos.LedgerRepo().Save(ctx, ledger); err != nil {
			return nil, err
		}
	}
	return ledger, nil
}

// CreateDebt records a new debt, optionally freezing the current exchange
// rate onto it and disbursing the principal from the drawer.
func (s *Service) CreateDebt(ctx context.Context, req CreateDebtRequest) (*DebtResponse, error) {
	var resp *DebtResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var frozen *decimal.Decimal
		if req.FreezeRate {
			rate, err := currentRate(ctx, repos)
			if err != nil {
				return err
			}
			frozen = &rate
		}

		debt, err := settlement.NewDebt(req.DebtorName, req.Kind, req.CurrencyTag,
			req.OriginalUSD, req.OriginalIQD, frozen, req.Description, req.SourceReference)
		if err != nil {
			return err
		}

		if req.DisburseFromDrawer {
			ledger, err := s.drawer(ctx, repos)
			if err != nil {
				return err
			}
			if err := ledger.Debit(req.OriginalUSD, req.OriginalIQD); err != nil {
				return err
			}
			if err := repos.LedgerRepo().SaveWithLock(ctx, ledger); err != nil {
				return err
			}
		}

		if err := repos.DebtRepo().Save(ctx, debt); err != nil {
			return err
		}
		resp = toDebtResponse(debt)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("debt created",
		zap.String("debt_id", resp.ID.String()),
		zap.String("debtor", resp.DebtorKey),
		zap.String("kind", resp.Kind))
	return resp, nil
}

// GetDebt returns one debt by ID
func (s *Service) GetDebt(ctx context.Context, id uuid.UUID) (*DebtResponse, error) {
	var resp *DebtResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		debt, err := repos.DebtRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if debt == nil {
			return shared.ErrNotFound
		}
		resp = toDebtResponse(debt)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ListDebts lists debts with filtering and pagination
func (s *Service) ListDebts(ctx context.Context, filter ListDebtsFilter) (shared.Paginated[DebtResponse], error) {
	domainFilter := settlement.DebtFilter{
		Filter:   shared.DefaultFilter(),
		OpenOnly: filter.OpenOnly,
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search
	if filter.Debtor != "" {
		key := settlement.NormalizeDebtorKey(filter.Debtor)
		domainFilter.DebtorKey = &key
	}
	if filter.Kind != "" {
		kind := settlement.DebtKind(filter.Kind)
		if !kind.IsValid() {
			return shared.Paginated[DebtResponse]{}, shared.NewDomainError("INVALID_KIND", "Debt kind is not valid")
		}
		domainFilter.Kind = &kind
	}
	if filter.Status != "" {
		status := settlement.DebtStatus(filter.Status)
		if !status.IsValid() {
			return shared.Paginated[DebtResponse]{}, shared.NewDomainError("INVALID_STATUS", "Debt status is not valid")
		}
		domainFilter.Status = &status
	}

	var page shared.Paginated[DebtResponse]
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		result, err := repos.DebtRepo().FindAll(ctx, domainFilter)
		if err != nil {
			return err
		}
		items := make([]DebtResponse, 0, len(result.Items))
		for i := range result.Items {
			items = append(items, *toDebtResponse(&result.Items[i]))
		}
		page = shared.NewPaginated(items, result.Total, domainFilter.Page, domainFilter.PageSize)
		return nil
	})
	if err != nil {
		return shared.Paginated[DebtResponse]{}, err
	}
	return page, nil
}

// GetOutstandingSummaries aggregates open debts per debtor
func (s *Service) GetOutstandingSummaries(ctx context.Context) ([]settlement.OutstandingSummary, error) {
	var summaries []settlement.OutstandingSummary
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		summaries, err = repos.DebtRepo().SummarizeOutstanding(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// ReconcilePayment applies one payment to one debt. Debt mutation and
// drawer movement commit atomically; the drawer receives the full tender
// and pays the change back out.
func (s *Service) ReconcilePayment(ctx context.Context, debtID uuid.UUID, req PaymentRequest) (*PaymentResultResponse, error) {
	var resp *PaymentResultResponse
	var settledNote *DebtSettledNotification

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		debt, err := repos.DebtRepo().FindByID(ctx, debtID)
		if err != nil {
			return err
		}
		if debt == nil {
			return shared.ErrNotFound
		}

		rate, err := currentRate(ctx, repos)
		if err != nil {
			return err
		}

		result, err := s.reconciler.Reconcile(debt, req.input(), rate, req.options())
		if err != nil {
			return err
		}

		if err := repos.DebtRepo().SaveWithLock(ctx, debt); err != nil {
			return err
		}

		ledger, err := s.drawer(ctx, repos)
		if err != nil {
			return err
		}
		if err := ledger.AcceptPayment(req.USD, req.IQD, result.ChangeUSD, result.ChangeIQD); err != nil {
			return err
		}
		if err := repos.LedgerRepo().SaveWithLock(ctx, ledger); err != nil {
			return err
		}

		resp = &PaymentResultResponse{
			Debt:        toDebtResponse(debt),
			NetUSD:      result.NetUSD,
			NetIQD:      result.NetIQD,
			ChangeUSD:   result.ChangeUSD,
			ChangeIQD:   result.ChangeIQD,
			AbsorbedUSD: result.AbsorbedUSD,
			RateUsed:    result.RateUsed,
			Settled:     result.Settled,
		}
		if result.Settled && debt.PaidAt != nil {
			settledNote = &DebtSettledNotification{
				DebtID:     debt.ID,
				DebtorKey:  debt.DebtorKey,
				DebtorName: debt.DebtorName,
				PaidUSD:    valueobject.NewMoneyUSD(debt.PaidUSD),
				PaidIQD:    valueobject.NewMoneyIQD(debt.PaidIQD),
				SettledAt:  *debt.PaidAt,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment reconciled",
		zap.String("debt_id", debtID.String()),
		zap.Bool("settled", resp.Settled),
		zap.String("change_usd", resp.ChangeUSD.String()),
		zap.String("change_iqd", resp.ChangeIQD.String()))

	if settledNote != nil && s.onSettled != nil {
		s.onSettled(ctx, *settledNote)
	}
	return resp, nil
}

// SettleAllForDebtor runs the waterfall across a debtor's open debts,
// oldest first, from a single cash pool. All debt mutations and the
// drawer movement commit atomically.
func (s *Service) SettleAllForDebtor(ctx context.Context, debtorName string, req PaymentRequest) (*SettleAllResponse, error) {
	key := settlement.NormalizeDebtorKey(debtorName)
	if key == "" {
		return nil, settlement.ErrDebtorNotFound
	}

	var resp *SettleAllResponse
	var notes []DebtSettledNotification

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		debts, err := repos.DebtRepo().FindOpenByDebtor(ctx, key)
		if err != nil {
			return err
		}
		if len(debts) == 0 {
			return settlement.ErrDebtorNotFound
		}

		rate, err := currentRate(ctx, repos)
		if err != nil {
			return err
		}

		outcome, err := s.engine.SettleAll(debts, req.input(), rate, req.options())
		if err != nil {
			return err
		}

		applied := make(map[string]bool, len(outcome.Applications))
		for _, app := range outcome.Applications {
			applied[app.DebtID] = true
		}

		for _, debt := range debts {
			if !applied[debt.ID.String()] {
				continue
			}
			if err := repos.DebtRepo().SaveWithLock(ctx, debt); err != nil {
				return err
			}
			if debt.IsSettled() && debt.PaidAt != nil {
				notes = append(notes, DebtSettledNotification{
					DebtID:     debt.ID,
					DebtorKey:  debt.DebtorKey,
					DebtorName: debt.DebtorName,
					PaidUSD:    valueobject.NewMoneyUSD(debt.PaidUSD),
					PaidIQD:    valueobject.NewMoneyIQD(debt.PaidIQD),
					SettledAt:  *debt.PaidAt,
				})
			}
		}

		ledger, err := s.drawer(ctx, repos)
		if err != nil {
			return err
		}
		if err := ledger.AcceptPayment(req.USD, req.IQD, outcome.ChangeUSD, outcome.ChangeIQD); err != nil {
			return err
		}
		if err := repos.LedgerRepo().SaveWithLock(ctx, ledger); err != nil {
			return err
		}

		resp = &SettleAllResponse{
			DebtorKey:    key,
			Applications: outcome.Applications,
			SettledCount: outcome.SettledCount,
			TotalNetUSD:  outcome.TotalNetUSD,
			TotalNetIQD:  outcome.TotalNetIQD,
			ChangeUSD:    outcome.ChangeUSD,
			ChangeIQD:    outcome.ChangeIQD,
			AbsorbedUSD:  outcome.AbsorbedUSD,
			RateUsed:     rate,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("debtor settled",
		zap.String("debtor", key),
		zap.Int("settled_count", resp.SettledCount),
		zap.String("change_iqd", resp.ChangeIQD.String()))

	if s.onSettled != nil {
		for _, n := range notes {
			s.onSettled(ctx, n)
		}
	}
	return resp, nil
}

// ReverseDebt voids a debt and backs its applied payments out of the
// drawer. The drawer may go negative; the refund already happened in cash.
func (s *Service) ReverseDebt(ctx context.Context, debtID uuid.UUID, reason string) (*DebtResponse, error) {
	var resp *DebtResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		debt, err := repos.DebtRepo().FindByID(ctx, debtID)
		if err != nil {
			return err
		}
		if debt == nil {
			return shared.ErrNotFound
		}

		refundUSD, refundIQD, err := debt.Reverse(reason)
		if err != nil {
			return err
		}
		if err := repos.DebtRepo().SaveWithLock(ctx, debt); err != nil {
			return err
		}

		if refundUSD.IsPositive() || refundIQD.IsPositive() {
			ledger, err := s.drawer(ctx, repos)
			if err != nil {
				return err
			}
			if err := ledger.ForceDebit(refundUSD, refundIQD); err != nil {
				return err
			}
			if err := repos.LedgerRepo().SaveWithLock(ctx, ledger); err != nil {
				return err
			}
		}

		resp = toDebtResponse(debt)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("debt reversed",
		zap.String("debt_id", debtID.String()),
		zap.String("reason", reason))
	return resp, nil
}

// GetBalances reports the drawer balances valued at the current rate
func (s *Service) GetBalances(ctx context.Context) (*BalancesResponse, error) {
	var resp *BalancesResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ledger, err := s.drawer(ctx, repos)
		if err != nil {
			return err
		}
		rate, err := currentRate(ctx, repos)
		if err != nil {
			return err
		}
		total, err := ledger.TotalUSDEquivalent(rate)
		if err != nil {
			return err
		}
		resp = &BalancesResponse{
			Drawer:        ledger.Name,
			BalanceUSD:    ledger.BalanceUSD,
			BalanceIQD:    ledger.BalanceIQD,
			TotalUSDValue: total,
			Rate:          rate,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// SetExchangeRate appends a new USD to IQD rate quote
func (s *Service) SetExchangeRate(ctx context.Context, rate decimal.Decimal, source string) (*ExchangeRateResponse, error) {
	quote, err := settlement.NewExchangeRate(rate, source)
	if err != nil {
		return nil, err
	}
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		return repos.RateRepo().Save(ctx, quote)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("exchange rate updated",
		zap.String("rate", rate.String()),
		zap.String("source", source))
	return toRateResponse(quote), nil
}

// GetCurrentRate returns the latest recorded rate
func (s *Service) GetCurrentRate(ctx context.Context) (*ExchangeRateResponse, error) {
	var resp *ExchangeRateResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		quote, err := repos.RateRepo().Current(ctx)
		if err != nil {
			return err
		}
		if quote == nil {
			return shared.ErrNotFound
		}
		resp = toRateResponse(quote)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetRateHistory returns recorded rates, newest first
func (s *Service) GetRateHistory(ctx context.Context, limit int) ([]ExchangeRateResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	var resp []ExchangeRateResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		quotes, err := repos.RateRepo().History(ctx, limit)
		if err != nil {
			return err
		}
		resp = make([]ExchangeRateResponse, 0, len(quotes))
		for i := range quotes {
			resp = append(resp, *toRateResponse(&quotes[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// EnsureRate seeds the rate history with a default quote when empty.
// Called at startup so conversions always have a current rate.
func (s *Service) EnsureRate(ctx context.Context, rate decimal.Decimal, source string) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		quote, err := repos.RateRepo().Current(ctx)
		if err != nil {
			return err
		}
		if quote != nil {
			return nil
		}
		seeded, err := settlement.NewExchangeRate(rate, source)
		if err != nil {
			return err
		}
		return repos.RateRepo().Save(ctx, seeded)
	})
}
