package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ipupy/tesoreria_backend/internal/core/ports/services"
	"github.com/ipupy/tesoreria_backend/internal/dto"
)

// SummaryHandler serves the read-only accounting summary.
type SummaryHandler struct {
	summaryService portssvc.SummarySvc
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(ss portssvc.SummarySvc) *SummaryHandler {
	return &SummaryHandler{summaryService: ss}
}

// registerSummaryRoutes sets up the summary route.
func registerSummaryRoutes(rg *gin.RouterGroup, ss portssvc.SummarySvc) {
	h := NewSummaryHandler(ss)
	rg.GET("/summary", h.GetSummary)
}

// GetSummary godoc
// @Summary Accounting summary for a period
// @Description Aggregates income, expenses and ledger movements for the caller's scope. Defaults to the current month when no period is given.
// @Tags summary
// @Produce json
// @Param churchID query string false "Church ID"
// @Param month query int false "Month (1-12)"
// @Param year query int false "Year"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /summary [get]
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	principalID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	params := dto.SummaryParams{}
	if v := c.Query("churchID"); v != "" {
		params.ChurchID = &v
	}
	if monthStr := c.Query("month"); monthStr != "" {
		month, err := strconv.Atoi(monthStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid month parameter"})
			return
		}
		params.Month = &month
	}
	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid year parameter"})
			return
		}
		params.Year = &year
	}

	summary, err := h.summaryService.GetSummary(c.Request.Context(), principalID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
