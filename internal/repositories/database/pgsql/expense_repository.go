package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ipupy/tesoreria_backend/internal/apperrors"
	"github.com/ipupy/tesoreria_backend/internal/core/domain"
	portsrepo "github.com/ipupy/tesoreria_backend/internal/core/ports/repositories"
	"github.com/ipupy/tesoreria_backend/internal/models"
)

// PgxExpenseRepository reads expense records. Inserts happen only through
// the posting repository so an expense row never exists without its ledger
// effect.
type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new read repository for expenses.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

func toDomainExpense(m models.ExpenseRecord) domain.ExpenseRecord {
	return domain.ExpenseRecord{
		ExpenseID:  m.ExpenseID,
		FundID:     m.FundID,
		ChurchID:   m.ChurchID,
		CategoryID: m.CategoryID,
		Concept:    m.Concept,
		Provider:   m.Provider,
		Amount:     m.Amount,
		Date:       m.Date,
		ApprovedBy: m.ApprovedBy,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const expenseColumns = `expense_id, fund_id, church_id, category_id, concept, provider, amount, date, approved_by, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.ExpenseRecord, error) {
	query := `SELECT ` + expenseColumns + ` FROM expense_records WHERE expense_id = $1;`
	var m models.ExpenseRecord
	err := r.Pool.QueryRow(ctx, query, expenseID).Scan(
		&m.ExpenseID,
		&m.FundID,
		&m.ChurchID,
		&m.CategoryID,
		&m.Concept,
		&m.Provider,
		&m.Amount,
		&m.Date,
		&m.ApprovedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense %s: %w", expenseID, err)
	}
	expense := toDomainExpense(m)
	return &expense, nil
}

func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, churchID *string, start, end time.Time) ([]domain.ExpenseRecord, error) {
	query := `SELECT ` + expenseColumns + ` FROM expense_records WHERE date >= $1 AND date < $2`
	args := []any{start, end}
	if churchID != nil {
		args = append(args, *churchID)
		query += fmt.Sprintf(" AND church_id = $%d", len(args))
	}
	query += ` ORDER BY date DESC, created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []domain.ExpenseRecord{}
	for rows.Next() {
		var m models.ExpenseRecord
		if err := rows.Scan(
			&m.ExpenseID,
			&m.FundID,
			&m.ChurchID,
			&m.CategoryID,
			&m.Concept,
			&m.Provider,
			&m.Amount,
			&m.Date,
			&m.ApprovedBy,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, toDomainExpense(m))
	}
	return expenses, rows.Err()
}
