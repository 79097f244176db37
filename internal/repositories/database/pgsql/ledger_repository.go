package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ipupy/tesoreria_backend/internal/apperrors"
	"github.com/ipupy/tesoreria_backend/internal/core/domain"
	portsrepo "github.com/ipupy/tesoreria_backend/internal/core/ports/repositories"
	"github.com/ipupy/tesoreria_backend/internal/models"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for monthly ledgers.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func toDomainLedger(m models.MonthlyLedger) domain.MonthlyLedger {
	return domain.MonthlyLedger{
		LedgerID:       m.LedgerID,
		ChurchID:       m.ChurchID,
		Month:          m.Month,
		Year:           m.Year,
		Status:         domain.LedgerStatus(m.Status),
		OpeningBalance: m.OpeningBalance,
		TotalIncome:    m.TotalIncome,
		TotalExpense:   m.TotalExpense,
		ClosingBalance: m.ClosingBalance,
		ClosedAt:       m.ClosedAt,
		ReconciledAt:   m.ReconciledAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const ledgerColumns = `ledger_id, church_id, month, year, status, opening_balance, total_income, total_expense, closing_balance, closed_at, reconciled_at, created_at, created_by, last_updated_at, last_updated_by`

func scanLedger(row pgx.Row) (*domain.MonthlyLedger, error) {
	var m models.MonthlyLedger
	err := row.Scan(
		&m.LedgerID,
		&m.ChurchID,
		&m.Month,
		&m.Year,
		&m.Status,
		&m.OpeningBalance,
		&m.TotalIncome,
		&m.TotalExpense,
		&m.ClosingBalance,
		&m.ClosedAt,
		&m.ReconciledAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	ledger := toDomainLedger(m)
	return &ledger, nil
}

// SaveLedger inserts a newly opened ledger. The partial unique index over
// (church_id, month, year) turns a duplicate period into ErrConflict,
// including the national NULL church case.
func (r *PgxLedgerRepository) SaveLedger(ctx context.Context, ledger domain.MonthlyLedger) error {
	query := `
		INSERT INTO monthly_ledgers (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		ledger.LedgerID,
		ledger.ChurchID,
		ledger.Month,
		ledger.Year,
		string(ledger.Status),
		ledger.OpeningBalance,
		ledger.TotalIncome,
		ledger.TotalExpense,
		ledger.ClosingBalance,
		ledger.ClosedAt,
		ledger.ReconciledAt,
		ledger.CreatedAt,
		ledger.CreatedBy,
		ledger.LastUpdatedAt,
		ledger.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: ledger for period %d/%d already exists", apperrors.ErrConflict, ledger.Month, ledger.Year)
		}
		return fmt.Errorf("failed to save ledger %s: %w", ledger.LedgerID, err)
	}
	return nil
}

func (r *PgxLedgerRepository) FindLedgerByID(ctx context.Context, ledgerID string) (*domain.MonthlyLedger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM monthly_ledgers WHERE ledger_id = $1;`
	ledger, err := scanLedger(r.Pool.QueryRow(ctx, query, ledgerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger %s: %w", ledgerID, err)
	}
	return ledger, nil
}

func (r *PgxLedgerRepository) FindLedgerByPeriod(ctx context.Context, churchID *string, month, year int) (*domain.MonthlyLedger, error) {
	var row pgx.Row
	if churchID != nil {
		row = r.Pool.QueryRow(ctx, `SELECT `+ledgerColumns+` FROM monthly_ledgers WHERE church_id = $1 AND month = $2 AND year = $3;`, *churchID, month, year)
	} else {
		row = r.Pool.QueryRow(ctx, `SELECT `+ledgerColumns+` FROM monthly_ledgers WHERE church_id IS NULL AND month = $1 AND year = $2;`, month, year)
	}
	ledger, err := scanLedger(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger for period %d/%d: %w", month, year, err)
	}
	return ledger, nil
}

// UpdateLedger rewrites totals, status and lifecycle stamps, guarded by the
// expected current status.
func (r *PgxLedgerRepository) UpdateLedger(ctx context.Context, ledger domain.MonthlyLedger, expectedStatus domain.LedgerStatus) error {
	query := `
		UPDATE monthly_ledgers
		SET status = $3, total_income = $4, total_expense = $5, closing_balance = $6,
		    closed_at = $7, reconciled_at = $8, last_updated_at = $9, last_updated_by = $10
		WHERE ledger_id = $1 AND status = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		ledger.LedgerID,
		string(expectedStatus),
		string(ledger.Status),
		ledger.TotalIncome,
		ledger.TotalExpense,
		ledger.ClosingBalance,
		ledger.ClosedAt,
		ledger.ReconciledAt,
		ledger.LastUpdatedAt,
		ledger.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update ledger %s: %w", ledger.LedgerID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: ledger %s is not %s", apperrors.ErrInvalidState, ledger.LedgerID, expectedStatus)
	}
	return nil
}
