package services

import (
	"context"

	"github.com/ipupy/tesoreria_backend/internal/core/domain"
	"github.com/ipupy/tesoreria_backend/internal/dto"
)

// ReportReaderSvc defines read operations for monthly reports.
type ReportReaderSvc interface {
	// GetReport retrieves a report the principal may see.
	GetReport(ctx context.Context, principalID string, reportID string) (*domain.MonthlyReport, error)

	// ListReports lists reports within the principal's scope.
	ListReports(ctx context.Context, principalID string, params dto.ListReportsParams) ([]domain.MonthlyReport, error)
}

// ReportWorkflowSvc drives the report state machine.
type ReportWorkflowSvc interface {
	// CreateDraft creates a draft report, recomputing totals server-side.
	// Duplicate (churchID, month, year) surfaces as ErrConflict.
	CreateDraft(ctx context.Context, principalID string, req dto.CreateReportRequest) (*domain.MonthlyReport, error)

	// UpdateDraft edits a draft report's raw fields and recomputes totals.
	UpdateDraft(ctx context.Context, principalID string, reportID string, req dto.UpdateReportRequest) (*domain.MonthlyReport, error)

	// Submit moves draft -> submitted; requires deposit evidence.
	Submit(ctx context.Context, principalID string, reportID string) (*domain.MonthlyReport, error)

	// Approve marks the report approved and posts it to the ledger in one
	// atomic unit. Posting failure rolls everything back and surfaces as
	// ErrPostingFailed with the report still submitted.
	Approve(ctx context.Context, principalID string, reportID string, req dto.ApproveReportRequest) (*domain.MonthlyReport, error)

	// Reject returns a submitted report to draft with a mandatory reason.
	Reject(ctx context.Context, principalID string, reportID string, reason string) (*domain.MonthlyReport, error)

	// MarkProcessed is the administrative terminal step; idempotent on
	// already-processed reports.
	MarkProcessed(ctx context.Context, principalID string, reportID string) (*domain.MonthlyReport, error)
}

// ReportSvcFacade combines all report service interfaces.
type ReportSvcFacade interface {
	ReportReaderSvc
	ReportWorkflowSvc
}
