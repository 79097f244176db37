package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ipupy/tesoreria_backend/internal/core/ports/services"
	"github.com/ipupy/tesoreria_backend/internal/dto"
)

// LedgerHandler drives the monthly ledger lifecycle over HTTP.
type LedgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ls portssvc.LedgerSvcFacade) *LedgerHandler {
	return &LedgerHandler{ledgerService: ls}
}

// registerLedgerRoutes sets up the routes for the ledger lifecycle.
func registerLedgerRoutes(rg *gin.RouterGroup, ls portssvc.LedgerSvcFacade) {
	h := NewLedgerHandler(ls)

	ledgers := rg.Group("/ledgers")
	{
		ledgers.POST("", h.OpenLedger)
		ledgers.GET("", h.GetLedger)
		ledgers.GET("/trial-balance", h.GetTrialBalance)
		ledgers.POST("/:ledgerID/close", h.CloseLedger)
		ledgers.POST("/:ledgerID/reconcile", h.ReconcileLedger)
	}
}

// periodFromQuery parses the mandatory month and year query parameters.
func periodFromQuery(c *gin.Context) (int, int, bool) {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or missing month parameter"})
		return 0, 0, false
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or missing year parameter"})
		return 0, 0, false
	}
	return month, year, true
}

// OpenLedger godoc
// @Summary Open a monthly ledger
// @Description Opens the ledger for a church and period, or the national ledger when churchID is omitted. The opening balance carries over from the prior period's closing balance.
// @Tags ledgers
// @Accept json
// @Produce json
// @Param ledger body dto.OpenLedgerRequest true "Period to open"
// @Success 201 {object} dto.LedgerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Ledger for the period already exists"
// @Security BearerAuth
// @Router /ledgers [post]
func (h *LedgerHandler) OpenLedger(c *gin.Context) {
	principalID, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req dto.OpenLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	ledger, err := h.ledgerService.OpenLedger(c.Request.Context(), principalID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToLedgerResponse(ledger))
}

// GetLedger godoc
// @Summary Get a ledger by period
// @Description Retrieves the ledger for a church and period. Omit churchID for the national ledger.
// @Tags ledgers
// @Produce json
// @Param churchID query string false "Church ID"
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Success 200 {object} dto.LedgerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledgers [get]
func (h *LedgerHandler) GetLedger(c *gin.Context) {
	principalID, ok := requirePrincipal(c)
	if !ok {
		return
	}
	month, year, ok := periodFromQuery(c)
	if !ok {
		return
	}
	var churchID *string
	if v := c.Query("churchID"); v != "" {
		churchID = &v
	}

	ledger, err := h.ledgerService.GetLedger(c.Request.Context(), principalID, churchID, month, year)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}

// GetTrialBalance godoc
// @Summary Trial balance for a period
// @Description Sums debit and credit entries over the period. National-level access only.
// @Tags ledgers
// @Produce json
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledgers/trial-balance [get]
func (h *LedgerHandler) GetTrialBalance(c *gin.Context) {
	principalID, ok := requirePrincipal(c)
	if !ok {
		return
	}
	month, year, ok := periodFromQuery(c)
	if !ok {
		return
	}

	tb, err := h.ledgerService.GetTrialBalance(c.Request.Context(), principalID, month, year)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TrialBalanceResponse{
		Month:    month,
		Year:     year,
		Debits:   tb.Debits,
		Credits:  tb.Credits,
		Balanced: tb.Debits.Equal(tb.Credits),
	})
}

// CloseLedger godoc
// @Summary Close a monthly ledger
// @Description Recomputes period totals from posted transactions and closes the ledger.
// @Tags ledgers
// @Produce json
// @Param ledgerID path string true "Ledger ID"
// @Success 200 {object} dto.LedgerResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Ledger is not open"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/close [post]
func (h *LedgerHandler) CloseLedger(c *gin.Context) {
	principalID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	ledger, err := h.ledgerService.CloseLedger(c.Request.Context(), principalID, c.Param("ledgerID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}

// ReconcileLedger godoc
// @Summary Reconcile a closed ledger
// @Description Verifies the closed ledger against independently recomputed totals and the period trial balance. Any discrepancy is returned with the amounts.
// @Tags ledgers
// @Produce json
// @Param ledgerID path string true "Ledger ID"
// @Success 200 {object} dto.LedgerResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Ledger is not closed"
// @Failure 422 {object} ErrorResponse "Reconciliation mismatch"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/reconcile [post]
func (h *LedgerHandler) ReconcileLedger(c *gin.Context) {
	principalID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	ledger, err := h.ledgerService.ReconcileLedger(c.Request.Context(), principalID, c.Param("ledgerID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}
