package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ipupy/tesoreria_backend/internal/core/ports/services"
	"github.com/ipupy/tesoreria_backend/internal/dto"
)

// FundHandler handles fund management and fund movement listings.
type FundHandler struct {
	fundService portssvc.FundSvcFacade
}

// NewFundHandler creates a new FundHandler.
func NewFundHandler(fs portssvc.FundSvcFacade) *FundHandler {
	return &FundHandler{fundService: fs}
}

// registerFundRoutes sets up the routes for fund management.
func registerFundRoutes(rg *gin.RouterGroup, fs portssvc.FundSvcFacade) {
	h := NewFundHandler(fs)

	funds := rg.Group("/funds")
	{
		funds.POST("", h.CreateFund)
		funds.GET("", h.ListFunds)
		funds.GET("/:fundID", h.GetFund)
		funds.PUT("/:fundID", h.UpdateFund)
		funds.GET("/:fundID/transactions", h.ListFundTransactions)
	}
}

// CreateFund godoc
// @Summary Create a fund
// @Description Registers a new fund with a zero balance.
// @Tags funds
// @Accept json
// @Produce json
// @Param fund body dto.CreateFundRequest true "Fund details"
// @Success 201 {object} dto.FundResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /funds [post]
func (h *FundHandler) CreateFund(c *gin.Context) {
	principalID, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req dto.CreateFundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	fund, err := h.fundService.CreateFund(c.Request.Context(), principalID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToFundResponse(fund))
}

// ListFunds godoc
// @Summary List funds
// @Description Lists funds visible to the caller. Fund directors only see their assigned funds.
// @Tags funds
// @Produce json
// @Success 200 {array} dto.FundResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /funds [get]
func (h *FundHandler) ListFunds(c *gin.Context) {
	principalID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	funds, err := h.fundService.ListFunds(c.Request.Context(), principalID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := make([]dto.FundResponse, len(funds))
	for i := range funds {
		resp[i] = dto.ToFundResponse(&funds[i])
	}
	c.JSON(http.StatusOK, resp)
}

// GetFund godoc
// @Summary Get a fund
// @Tags funds
// @Produce json
// @Param fundID path string true "Fund ID"
// @Success 200 {object} dto.FundResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /funds/{fundID} [get]
func (h *FundHandler) GetFund(c *gin.Context) {
	principalID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	fund, err := h.fundService.GetFund(c.Request.Context(), principalID, c.Param("fundID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToFundResponse(fund))
}

// UpdateFund godoc
// @Summary Update fund metadata
// @Description Updates name and description. Balances only ever change through postings.
// @Tags funds
// @Accept json
// @Produce json
// @Param fundID path string true "Fund ID"
// @Param fund body dto.UpdateFundRequest true "Fields to update"
// @Success 200 {object} dto.FundResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /funds/{fundID} [put]
func (h *FundHandler) UpdateFund(c *gin.Context) {
	principalID, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req dto.UpdateFundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	fund, err := h.fundService.UpdateFund(c.Request.Context(), principalID, c.Param("fundID"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToFundResponse(fund))
}

// ListFundTransactions godoc
// @Summary List fund movements
// @Description Pages through a fund's transactions, newest first.
// @Tags funds
// @Produce json
// @Param fundID path string true "Fund ID"
// @Param limit query int false "Page size (default 50, max 200)"
// @Param nextToken query string false "Opaque pagination token"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /funds/{fundID}/transactions [get]
func (h *FundHandler) ListFundTransactions(c *gin.Context) {
	principalID, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.fundService.ListFundTransactions(c.Request.Context(), principalID, c.Param("fundID"), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
