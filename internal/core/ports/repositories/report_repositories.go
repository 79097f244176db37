package repositories

import (
	"context"
	"time"

	"github.com/ipupy/tesoreria_backend/internal/core/domain"
	"github.com/ipupy/tesoreria_backend/internal/dto"
)

// ReportReader defines read operations for monthly reports.
type ReportReader interface {
	// FindReportByID retrieves a report with its fund allocations.
	FindReportByID(ctx context.Context, reportID string) (*domain.MonthlyReport, error)

	// FindReportByPeriod retrieves the report keyed by (churchID, month, year).
	FindReportByPeriod(ctx context.Context, churchID string, month, year int) (*domain.MonthlyReport, error)

	// ListReports retrieves reports matching the filter, newest first.
	ListReports(ctx context.Context, params dto.ListReportsParams) ([]domain.MonthlyReport, error)

	// SumReportTotals aggregates approved/processed report totals for a
	// period, optionally narrowed to one church.
	SumReportTotals(ctx context.Context, churchID *string, month, year int) (dto.IncomeSummary, error)
}

// ReportWriter defines write operations for monthly reports. Approval is not
// here: it lives on PostingRepository because it must share a transaction
// with the ledger posting.
type ReportWriter interface {
	// SaveReport persists a new draft report and its allocations. A duplicate
	// (churchID, month, year) key surfaces as ErrConflict.
	SaveReport(ctx context.Context, report domain.MonthlyReport) error

	// UpdateReportFields rewrites a draft report's raw fields and recomputed
	// totals.
	UpdateReportFields(ctx context.Context, report domain.MonthlyReport) error

	// UpdateReportStatus moves a report between workflow states. The update
	// is guarded by expectedStatus; zero rows affected surfaces as
	// ErrInvalidState.
	UpdateReportStatus(ctx context.Context, reportID string, expected, next domain.ReportStatus, reason *string, updatedBy string, now time.Time) error
}

// ReportRepositoryFacade combines all report repository interfaces.
type ReportRepositoryFacade interface {
	ReportReader
	ReportWriter
}
