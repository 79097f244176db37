package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ipupy/tesoreria_backend/internal/apperrors"
	"github.com/ipupy/tesoreria_backend/internal/core/domain"
	portsrepo "github.com/ipupy/tesoreria_backend/internal/core/ports/repositories"
	"github.com/ipupy/tesoreria_backend/internal/dto"
	"github.com/ipupy/tesoreria_backend/internal/models"
)

type PgxReportRepository struct {
	BaseRepository
}

// newPgxReportRepository creates a new repository for monthly reports.
func newPgxReportRepository(pool *pgxpool.Pool) portsrepo.ReportRepositoryFacade {
	return &PgxReportRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportRepositoryFacade = (*PgxReportRepository)(nil)

func toDomainReport(m models.MonthlyReport) domain.MonthlyReport {
	return domain.MonthlyReport{
		ReportID:             m.ReportID,
		ChurchID:             m.ChurchID,
		Month:                m.Month,
		Year:                 m.Year,
		Diezmos:              m.Diezmos,
		Ofrendas:             m.Ofrendas,
		OtrosIngresos:        m.OtrosIngresos,
		HonorariosPastorales: m.HonorariosPastorales,
		GastosOperativos:     m.GastosOperativos,
		OtrosGastos:          m.OtrosGastos,
		FondoNacional:        m.FondoNacional,
		TotalIncome:          m.TotalIncome,
		TotalExpense:         m.TotalExpense,
		MonthBalance:         m.MonthBalance,
		DepositReference:     m.DepositReference,
		DepositDate:          m.DepositDate,
		Status:               domain.ReportStatus(m.Status),
		EnteredBy:            m.EnteredBy,
		ApprovedBy:           m.ApprovedBy,
		ApprovedAt:           m.ApprovedAt,
		RejectionReason:      m.RejectionReason,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const reportColumns = `report_id, church_id, month, year, diezmos, ofrendas, otros_ingresos,
	honorarios_pastorales, gastos_operativos, otros_gastos,
	fondo_nacional, total_income, total_expense, month_balance,
	deposit_reference, deposit_date, status, entered_by, approved_by, approved_at, rejection_reason,
	created_at, created_by, last_updated_at, last_updated_by`

func scanReport(row pgx.Row) (*domain.MonthlyReport, error) {
	var m models.MonthlyReport
	err := row.Scan(
		&m.ReportID,
		&m.ChurchID,
		&m.Month,
		&m.Year,
		&m.Diezmos,
		&m.Ofrendas,
		&m.OtrosIngresos,
		&m.HonorariosPastorales,
		&m.GastosOperativos,
		&m.OtrosGastos,
		&m.FondoNacional,
		&m.TotalIncome,
		&m.TotalExpense,
		&m.MonthBalance,
		&m.DepositReference,
		&m.DepositDate,
		&m.Status,
		&m.EnteredBy,
		&m.ApprovedBy,
		&m.ApprovedAt,
		&m.RejectionReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	report := toDomainReport(m)
	return &report, nil
}

func (r *PgxReportRepository) loadAllocations(ctx context.Context, reportID string) ([]domain.FundAllocation, error) {
	rows, err := r.Pool.Query(ctx, `SELECT fund_id, amount FROM report_fund_allocations WHERE report_id = $1;`, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to load allocations for report %s: %w", reportID, err)
	}
	defer rows.Close()

	allocations := []domain.FundAllocation{}
	for rows.Next() {
		var a domain.FundAllocation
		if err := rows.Scan(&a.FundID, &a.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan allocation row: %w", err)
		}
		allocations = append(allocations, a)
	}
	return allocations, rows.Err()
}

// SaveReport inserts the report and its fund allocations in one transaction.
func (r *PgxReportRepository) SaveReport(ctx context.Context, report domain.MonthlyReport) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO monthly_reports (` + reportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25);
	`
	_, err = tx.Exec(ctx, query,
		report.ReportID,
		report.ChurchID,
		report.Month,
		report.Year,
		report.Diezmos,
		report.Ofrendas,
		report.OtrosIngresos,
		report.HonorariosPastorales,
		report.GastosOperativos,
		report.OtrosGastos,
		report.FondoNacional,
		report.TotalIncome,
		report.TotalExpense,
		report.MonthBalance,
		report.DepositReference,
		report.DepositDate,
		string(report.Status),
		report.EnteredBy,
		report.ApprovedBy,
		report.ApprovedAt,
		report.RejectionReason,
		report.CreatedAt,
		report.CreatedBy,
		report.LastUpdatedAt,
		report.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: report for church %s period %d/%d", apperrors.ErrConflict, report.ChurchID, report.Month, report.Year)
		}
		return fmt.Errorf("failed to save report %s: %w", report.ReportID, err)
	}

	if len(report.Allocations) > 0 {
		batch := &pgx.Batch{}
		for _, a := range report.Allocations {
			batch.Queue(`INSERT INTO report_fund_allocations (report_id, fund_id, amount) VALUES ($1, $2, $3);`, report.ReportID, a.FundID, a.Amount)
		}
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to save allocations for report %s: %w", report.ReportID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxReportRepository) FindReportByID(ctx context.Context, reportID string) (*domain.MonthlyReport, error) {
	query := `SELECT ` + reportColumns + ` FROM monthly_reports WHERE report_id = $1;`
	report, err := scanReport(r.Pool.QueryRow(ctx, query, reportID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find report %s: %w", reportID, err)
	}
	report.Allocations, err = r.loadAllocations(ctx, reportID)
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (r *PgxReportRepository) FindReportByPeriod(ctx context.Context, churchID string, month, year int) (*domain.MonthlyReport, error) {
	query := `SELECT ` + reportColumns + ` FROM monthly_reports WHERE church_id = $1 AND month = $2 AND year = $3;`
	report, err := scanReport(r.Pool.QueryRow(ctx, query, churchID, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find report for church %s period %d/%d: %w", churchID, month, year, err)
	}
	report.Allocations, err = r.loadAllocations(ctx, report.ReportID)
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (r *PgxReportRepository) ListReports(ctx context.Context, params dto.ListReportsParams) ([]domain.MonthlyReport, error) {
	query := `SELECT ` + reportColumns + ` FROM monthly_reports WHERE 1=1`
	args := []any{}
	if params.ChurchID != nil {
		args = append(args, *params.ChurchID)
		query += fmt.Sprintf(" AND church_id = $%d", len(args))
	}
	if params.Month != nil {
		args = append(args, *params.Month)
		query += fmt.Sprintf(" AND month = $%d", len(args))
	}
	if params.Year != nil {
		args = append(args, *params.Year)
		query += fmt.Sprintf(" AND year = $%d", len(args))
	}
	if params.Status != nil {
		args = append(args, string(*params.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += ` ORDER BY year DESC, month DESC, created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := []domain.MonthlyReport{}
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		reports = append(reports, *report)
	}
	return reports, rows.Err()
}

// SumReportTotals aggregates approved and processed reports for a period.
func (r *PgxReportRepository) SumReportTotals(ctx context.Context, churchID *string, month, year int) (dto.IncomeSummary, error) {
	query := `
		SELECT COALESCE(SUM(total_income), 0), COALESCE(SUM(diezmos), 0), COALESCE(SUM(ofrendas), 0), COALESCE(SUM(fondo_nacional), 0), COUNT(*)
		FROM monthly_reports
		WHERE month = $1 AND year = $2 AND status IN ('APPROVED', 'PROCESSED')
	`
	args := []any{month, year}
	if churchID != nil {
		args = append(args, *churchID)
		query += fmt.Sprintf(" AND church_id = $%d", len(args))
	}
	query += ";"

	var summary dto.IncomeSummary
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&summary.TotalIncome,
		&summary.Diezmos,
		&summary.Ofrendas,
		&summary.FondoNacional,
		&summary.ReportCount,
	)
	if err != nil {
		return dto.IncomeSummary{}, fmt.Errorf("failed to sum report totals for %d/%d: %w", month, year, err)
	}
	return summary, nil
}

// UpdateReportFields rewrites a draft's amounts and deposit evidence. The
// status predicate makes the write race-safe: a report submitted or approved
// between the service's read and this UPDATE matches zero rows instead of
// mutating totals that were already posted.
func (r *PgxReportRepository) UpdateReportFields(ctx context.Context, report domain.MonthlyReport) error {
	query := `
		UPDATE monthly_reports
		SET diezmos = $2, ofrendas = $3, otros_ingresos = $4,
		    honorarios_pastorales = $5, gastos_operativos = $6, otros_gastos = $7,
		    fondo_nacional = $8, total_income = $9, total_expense = $10, month_balance = $11,
		    deposit_reference = $12, deposit_date = $13,
		    last_updated_at = $14, last_updated_by = $15
		WHERE report_id = $1 AND status = 'DRAFT';
	`
	tag, err := r.Pool.Exec(ctx, query,
		report.ReportID,
		report.Diezmos,
		report.Ofrendas,
		report.OtrosIngresos,
		report.HonorariosPastorales,
		report.GastosOperativos,
		report.OtrosGastos,
		report.FondoNacional,
		report.TotalIncome,
		report.TotalExpense,
		report.MonthBalance,
		report.DepositReference,
		report.DepositDate,
		report.LastUpdatedAt,
		report.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update report %s: %w", report.ReportID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: report %s is not editable", apperrors.ErrInvalidState, report.ReportID)
	}
	return nil
}

// UpdateReportStatus moves a report between workflow states, guarded by the
// expected current status. Losing the guard means someone else moved the
// report first; that surfaces as ErrInvalidState. The reason column is
// rewritten on every transition, which clears stale rejection reasons on
// resubmission.
func (r *PgxReportRepository) UpdateReportStatus(ctx context.Context, reportID string, expected, next domain.ReportStatus, reason *string, updatedBy string, now time.Time) error {
	query := `
		UPDATE monthly_reports
		SET status = $3, rejection_reason = $4, last_updated_at = $5, last_updated_by = $6
		WHERE report_id = $1 AND status = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, reportID, string(expected), string(next), reason, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update status for report %s: %w", reportID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: report %s is not %s", apperrors.ErrInvalidState, reportID, expected)
	}
	return nil
}
