package handler

import (
	"strconv"

	appsettlement "github.com/dukkan/backend/internal/application/settlement"
	"github.com/dukkan/backend/internal/domain/settlement"
	"github.com/dukkan/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettlementHandler handles debt, payment and exchange rate API endpoints
type SettlementHandler struct {
	BaseHandler
	service           *appsettlement.Service
	freezeRateDefault bool
}

// NewSettlementHandler creates a new SettlementHandler. freezeRateDefault
// controls whether new debts snapshot the current rate when the request
// does not say either way.
func NewSettlementHandler(service *appsettlement.Service, freezeRateDefault bool) *SettlementHandler {
	return &SettlementHandler{
		service:           service,
		freezeRateDefault: freezeRateDefault,
	}
}

// CreateDebtRequest represents a request to record a new debt
// @Description Request body for recording a debt. Amounts are decimal strings.
type CreateDebtRequest struct {
	DebtorName         string `json:"debtor_name" binding:"required,min=1,max=200" example:"Abu Ahmed"`
	Kind               string `json:"kind" binding:"required,oneof=CUSTOMER COMPANY PERSONAL" example:"CUSTOMER"`
	CurrencyTag        string `json:"currency_tag" binding:"required,oneof=USD IQD MULTI" example:"MULTI"`
	AmountUSD          string `json:"amount_usd" example:"20.00"`
	AmountIQD          string `json:"amount_iqd" example:"15000"`
	FreezeRate         *bool  `json:"freeze_rate,omitempty"`
	Description        string `json:"description" binding:"max=500" example:"Groceries on account"`
	SourceReference    string `json:"source_reference" binding:"max=100" example:"INV-2026-0142"`
	DisburseFromDrawer bool   `json:"disburse_from_drawer" example:"false"`
}

// PaymentRequest represents tendered cash applied against debt
// @Description Request body for a cash payment. Amounts are decimal strings.
type PaymentRequest struct {
	AmountUSD       string `json:"amount_usd" example:"10"`
	AmountIQD       string `json:"amount_iqd" example:"25000"`
	PreferUSDChange bool   `json:"prefer_usd_change" example:"false"`
	ForceCurrency   string `json:"force_currency" binding:"omitempty,oneof=USD IQD" example:"IQD"`
	Note            string `json:"note" binding:"max=500" example:"paid at counter"`
}

// ReverseDebtRequest represents a request to void a debt
// @Description Request body for reversing a debt
type ReverseDebtRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500" example:"entered against the wrong customer"`
}

// SetExchangeRateRequest represents a new USD to IQD rate quote
// @Description Request body for recording an exchange rate
type SetExchangeRateRequest struct {
	Rate   string `json:"rate" binding:"required" example:"1480"`
	Source string `json:"source" binding:"max=100" example:"market"`
}

// parseAmount converts a decimal string form field, treating empty as zero
func parseAmount(field, value string) (decimal.Decimal, *dto.ValidationDetail) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, &dto.ValidationDetail{Field: field, Message: "Must be a decimal number"}
	}
	return d, nil
}

func (r PaymentRequest) toService() (appsettlement.PaymentRequest, []dto.ValidationDetail) {
	var details []dto.ValidationDetail
	usd, detail := parseAmount("amount_usd", r.AmountUSD)
	if detail != nil {
		details = append(details, *detail)
	}
	iqd, detail := parseAmount("amount_iqd", r.AmountIQD)
	if detail != nil {
		details = append(details, *detail)
	}
	if details != nil {
		return appsettlement.PaymentRequest{}, details
	}
	return appsettlement.PaymentRequest{
		USD:             usd,
		IQD:             iqd,
		PreferUSDChange: r.PreferUSDChange,
		ForceCurrency:   settlement.ChangeCurrency(r.ForceCurrency),
		Note:            r.Note,
	}, nil
}

// CreateDebt godoc
// @ID           createDebt
// @Summary      Record a new debt
// @Description  Record a debt for a customer, a company or a personal loan
// @Tags         debts
// @Accept       json
// @Produce      json
// @Param        request body CreateDebtRequest true "Debt to record"
// @Success      201 {object} APIResponse[appsettlement.DebtResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /debts [post]
func (h *SettlementHandler) CreateDebt(c *gin.Context) {
	var req CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	var details []dto.ValidationDetail
	usd, detail := parseAmount("amount_usd", req.AmountUSD)
	if detail != nil {
		details = append(details, *detail)
	}
	iqd, detail := parseAmount("amount_iqd", req.AmountIQD)
	if detail != nil {
		details = append(details, *detail)
	}
	if details != nil {
		h.ValidationError(c, details)
		return
	}

	freeze := h.freezeRateDefault
	if req.FreezeRate != nil {
		freeze = *req.FreezeRate
	}

	resp, err := h.service.CreateDebt(c.Request.Context(), appsettlement.CreateDebtRequest{
		DebtorName:         req.DebtorName,
		Kind:               settlement.DebtKind(req.Kind),
		CurrencyTag:        settlement.CurrencyTag(req.CurrencyTag),
		OriginalUSD:        usd,
		OriginalIQD:        iqd,
		FreezeRate:         freeze,
		Description:        req.Description,
		SourceReference:    req.SourceReference,
		DisburseFromDrawer: req.DisburseFromDrawer,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetDebt godoc
// @ID           getDebt
// @Summary      Get a debt
// @Description  Get one debt by ID, including its payment history
// @Tags         debts
// @Produce      json
// @Param        id path string true "Debt ID" format(uuid)
// @Success      200 {object} APIResponse[appsettlement.DebtResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /debts/{id} [get]
func (h *SettlementHandler) GetDebt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid debt ID format")
		return
	}

	resp, err := h.service.GetDebt(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListDebts godoc
// @ID           listDebts
// @Summary      List debts
// @Description  List debts with filtering and pagination
// @Tags         debts
// @Produce      json
// @Param        debtor query string false "Debtor name, matched on the normalized key"
// @Param        kind query string false "Debt kind" Enums(CUSTOMER, COMPANY, PERSONAL)
// @Param        status query string false "Debt status" Enums(PENDING, PARTIAL, PAID, REVERSED)
// @Param        open_only query bool false "Only debts with an outstanding balance"
// @Param        search query string false "Free text over debtor name, description and reference"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]appsettlement.DebtResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /debts [get]
func (h *SettlementHandler) ListDebts(c *gin.Context) {
	var filter appsettlement.ListDebtsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	page, err := h.service.ListDebts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// PayDebt godoc
// @ID           payDebt
// @Summary      Apply a payment to a debt
// @Description  Apply tendered USD and IQD cash to one debt. Overpayment comes back as rounded change; the remainder below the smallest bill is absorbed.
// @Tags         debts
// @Accept       json
// @Produce      json
// @Param        id path string true "Debt ID" format(uuid)
// @Param        request body PaymentRequest true "Tendered cash"
// @Success      200 {object} APIResponse[appsettlement.PaymentResultResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /debts/{id}/payments [post]
func (h *SettlementHandler) PayDebt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid debt ID format")
		return
	}

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	svcReq, details := req.toService()
	if details != nil {
		h.ValidationError(c, details)
		return
	}

	resp, err := h.service.ReconcilePayment(c.Request.Context(), id, svcReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ReverseDebt godoc
// @ID           reverseDebt
// @Summary      Reverse a debt
// @Description  Void a debt and refund its applied payments from the drawer
// @Tags         debts
// @Accept       json
// @Produce      json
// @Param        id path string true "Debt ID" format(uuid)
// @Param        request body ReverseDebtRequest true "Reversal reason"
// @Success      200 {object} APIResponse[appsettlement.DebtResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /debts/{id}/reverse [post]
func (h *SettlementHandler) ReverseDebt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid debt ID format")
		return
	}

	var req ReverseDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.ReverseDebt(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// SettleDebtor godoc
// @ID           settleDebtor
// @Summary      Settle a debtor's open debts
// @Description  Apply one cash pool across all of a debtor's open debts, oldest first, returning a single change amount
// @Tags         debtors
// @Accept       json
// @Produce      json
// @Param        key path string true "Debtor name or normalized key"
// @Param        request body PaymentRequest true "Tendered cash"
// @Success      200 {object} APIResponse[appsettlement.SettleAllResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /debtors/{key}/settlements [post]
func (h *SettlementHandler) SettleDebtor(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	svcReq, details := req.toService()
	if details != nil {
		h.ValidationError(c, details)
		return
	}

	resp, err := h.service.SettleAllForDebtor(c.Request.Context(), c.Param("key"), svcReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// OutstandingSummaries godoc
// @ID           listOutstanding
// @Summary      Outstanding balances per debtor
// @Description  Aggregate every debtor's open debts into one outstanding balance per currency
// @Tags         debtors
// @Produce      json
// @Success      200 {object} APIResponse[[]settlement.OutstandingSummary]
// @Router       /debtors/outstanding [get]
func (h *SettlementHandler) OutstandingSummaries(c *gin.Context) {
	summaries, err := h.service.GetOutstandingSummaries(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summaries)
}

// GetBalances godoc
// @ID           getBalances
// @Summary      Drawer balances
// @Description  Current drawer balances per currency plus a USD valuation at the current rate
// @Tags         balances
// @Produce      json
// @Success      200 {object} APIResponse[appsettlement.BalancesResponse]
// @Router       /balances [get]
func (h *SettlementHandler) GetBalances(c *gin.Context) {
	resp, err := h.service.GetBalances(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetCurrentRate godoc
// @ID           getCurrentRate
// @Summary      Current exchange rate
// @Description  The most recently recorded USD to IQD rate
// @Tags         exchange-rates
// @Produce      json
// @Success      200 {object} APIResponse[appsettlement.ExchangeRateResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /exchange-rates [get]
func (h *SettlementHandler) GetCurrentRate(c *gin.Context) {
	resp, err := h.service.GetCurrentRate(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// SetExchangeRate godoc
// @ID           setExchangeRate
// @Summary      Record an exchange rate
// @Description  Append a new USD to IQD rate quote. History is kept; existing debts with a frozen rate are unaffected.
// @Tags         exchange-rates
// @Accept       json
// @Produce      json
// @Param        request body SetExchangeRateRequest true "Rate quote"
// @Success      201 {object} APIResponse[appsettlement.ExchangeRateResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /exchange-rates [post]
func (h *SettlementHandler) SetExchangeRate(c *gin.Context) {
	var req SetExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	rate, detail := parseAmount("rate", req.Rate)
	if detail != nil {
		h.ValidationError(c, []dto.ValidationDetail{*detail})
		return
	}

	resp, err := h.service.SetExchangeRate(c.Request.Context(), rate, req.Source)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetRateHistory godoc
// @ID           getRateHistory
// @Summary      Exchange rate history
// @Description  Recorded rate quotes, newest first
// @Tags         exchange-rates
// @Produce      json
// @Param        limit query int false "Maximum quotes to return" default(50)
// @Success      200 {object} APIResponse[[]appsettlement.ExchangeRateResponse]
// @Router       /exchange-rates/history [get]
func (h *SettlementHandler) GetRateHistory(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.BadRequest(c, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	resp, err := h.service.GetRateHistory(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RegisterRoutes registers all settlement endpoints on the given group
func (h *SettlementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	debts := rg.Group("/debts")
	{
		debts.POST("", h.CreateDebt)
		debts.GET("", h.ListDebts)
		debts.GET("/:id", h.GetDebt)
		debts.POST("/:id/payments", h.PayDebt)
		debts.POST("/:id/reverse", h.ReverseDebt)
	}

	debtors := rg.Group("/debtors")
	{
		debtors.GET("/outstanding", h.OutstandingSummaries)
		debtors.POST("/:key/settlements", h.SettleDebtor)
	}

	rg.GET("/balances", h.GetBalances)

	rates := rg.Group("/exchange-rates")
	{
		rates.GET("", h.GetCurrentRate)
		rates.POST("", h.SetExchangeRate)
		rates.GET("/history", h.GetRateHistory)
	}
}
