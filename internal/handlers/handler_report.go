package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ipupy/tesoreria_backend/internal/core/domain"
	portssvc "github.com/ipupy/tesoreria_backend/internal/core/ports/services"
	"github.com/ipupy/tesoreria_backend/internal/dto"
)

// ReportHandler drives the monthly report workflow over HTTP.
type ReportHandler struct {
	reportService portssvc.ReportSvcFacade
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs portssvc.ReportSvcFacade) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// registerReportRoutes sets up the routes for the report workflow.
func registerReportRoutes(rg *gin.RouterGroup, rs portssvc.ReportSvcFacade) {
	h := NewReportHandler(rs)

	reports := rg.Group("/reports")
	{
		reports.POST("", h.CreateReport)
		reports.GET("", h.ListReports)
		reports.GET("/:reportID", h.GetReport)
		reports.PUT("/:reportID", h.UpdateReport)
		reports.POST("/:reportID/submit", h.SubmitReport)
		reports.POST("/:reportID/approve", h.ApproveReport)
		reports.POST("/:reportID/reject", h.RejectReport)
		reports.POST("/:reportID/process", h.ProcessReport)
	}
}

// CreateReport godoc
// @Summary Create a draft report
// @Description Creates a draft monthly report for a church and period. Totals are computed server-side.
// @Tags reports
// @Accept json
// @Produce json
// @Param report body dto.CreateReportRequest true "Report fields"
// @Success 201 {object} dto.ReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "A report for this church and period already exists"
// @Security BearerAuth
// @Router /reports [post]
func (h *ReportHandler) CreateReport(c *gin.Context) {
	principalID, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req dto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	report, err := h.reportService.CreateDraft(c.Request.Context(), principalID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToReportResponse(report))
}

// ListReports godoc
// @Summary List reports
// @Description Lists reports within the caller's scope, filterable by church, period and status.
// @Tags reports
// @Produce json
// @Param churchID query string false "Church ID"
// @Param month query int false "Month (1-12)"
// @Param year query int false "Year"
// @Param status query string false "Report status" Enums(DRAFT, SUBMITTED, APPROVED, PROCESSED)
// @Success 200 {array} dto.ReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports [get]
func (h *ReportHandler) ListReports(c *gin.Context) {
	principalID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	params := dto.ListReportsParams{}
	if churchID := c.Query("churchID"); churchID != "" {
		params.ChurchID = &churchID
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
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.ReportStatus(statusStr)
		switch status {
		case domain.ReportDraft, domain.ReportSubmitted, domain.ReportApproved, domain.ReportProcessed:
			params.Status = &status
		default:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid status parameter"})
			return
		}
	}

	reports, err := h.reportService.ListReports(c.Request.Context(), principalID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := make([]dto.ReportResponse, len(reports))
	for i := range reports {
		resp[i] = dto.ToReportResponse(&reports[i])
	}
	c.JSON(http.StatusOK, resp)
}

// GetReport godoc
// @Summary Get a report
// @Tags reports
// @Produce json
// @Param reportID path string true "Report ID"
// @Success 200 {object} dto.ReportResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/{reportID} [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	principalID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	report, err := h.reportService.GetReport(c.Request.Context(), principalID, c.Param("reportID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReportResponse(report))
}

// UpdateReport godoc
// @Summary Update a draft report
// @Description Edits a draft report's raw fields and recomputes totals. Only drafts are editable.
// @Tags reports
// @Accept json
// @Produce json
// @Param reportID path string true "Report ID"
// @Param report body dto.UpdateReportRequest true "Fields to update"
// @Success 200 {object} dto.ReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Report is not a draft"
// @Security BearerAuth
// @Router /reports/{reportID} [put]
func (h *ReportHandler) UpdateReport(c *gin.Context) {
	principalID, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req dto.UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	report, err := h.reportService.UpdateDraft(c.Request.Context(), principalID, c.Param("reportID"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReportResponse(report))
}

// SubmitReport godoc
// @Summary Submit a report for approval
// @Description Moves a draft to submitted. Requires deposit evidence on the report.
// @Tags reports
// @Produce json
// @Param reportID path string true "Report ID"
// @Success 200 {object} dto.ReportResponse
// @Failure 400 {object} ErrorResponse "Deposit reference missing"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Report is not a draft"
// @Security BearerAuth
// @Router /reports/{reportID}/submit [post]
func (h *ReportHandler) SubmitReport(c *gin.Context) {
	principalID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	report, err := h.reportService.Submit(c.Request.Context(), principalID, c.Param("reportID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReportResponse(report))
}

// ApproveReport godoc
// @Summary Approve a report
// @Description Approves a submitted report and posts it to the fund ledger in one atomic unit. National admins may approve a draft directly with manualEntry set.
// @Tags reports
// @Accept json
// @Produce json
// @Param reportID path string true "Report ID"
// @Param approval body dto.ApproveReportRequest false "Approval options"
// @Success 200 {object} dto.ReportResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Report is not submitted"
// @Failure 502 {object} ErrorResponse "Posting failed, report left unchanged"
// @Security BearerAuth
// @Router /reports/{reportID}/approve [post]
func (h *ReportHandler) ApproveReport(c *gin.Context) {
	principalID, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req dto.ApproveReportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
			return
		}
	}

	report, err := h.reportService.Approve(c.Request.Context(), principalID, c.Param("reportID"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReportResponse(report))
}

// RejectReport godoc
// @Summary Reject a submitted report
// @Description Returns a submitted report to draft with a mandatory reason.
// @Tags reports
// @Accept json
// @Produce json
// @Param reportID path string true "Report ID"
// @Param rejection body dto.RejectReportRequest true "Rejection reason"
// @Success 200 {object} dto.ReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Report is not submitted"
// @Security BearerAuth
// @Router /reports/{reportID}/reject [post]
func (h *ReportHandler) RejectReport(c *gin.Context) {
	principalID, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req dto.RejectReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Rejection reason is required"})
		return
	}

	report, err := h.reportService.Reject(c.Request.Context(), principalID, c.Param("reportID"), req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReportResponse(report))
}

// ProcessReport godoc
// @Summary Mark a report processed
// @Description Administrative terminal step after funds are banked. Idempotent on processed reports.
// @Tags reports
// @Produce json
// @Param reportID path string true "Report ID"
// @Success 200 {object} dto.ReportResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Report is not approved"
// @Security BearerAuth
// @Router /reports/{reportID}/process [post]
func (h *ReportHandler) ProcessReport(c *gin.Context) {
	principalID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	report, err := h.reportService.MarkProcessed(c.Request.Context(), principalID, c.Param("reportID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReportResponse(report))
}
