package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ipupy/tesoreria_backend/internal/apperrors"
	"github.com/ipupy/tesoreria_backend/internal/core/domain"
	portsrepo "github.com/ipupy/tesoreria_backend/internal/core/ports/repositories"
	"github.com/ipupy/tesoreria_backend/internal/models"
	"github.com/ipupy/tesoreria_backend/internal/utils/pagination"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new read repository over the
// append-only ledger.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		FundID:          m.FundID,
		ChurchID:        m.ChurchID,
		ReportID:        m.ReportID,
		ExpenseID:       m.ExpenseID,
		Concept:         m.Concept,
		AmountIn:        m.AmountIn,
		AmountOut:       m.AmountOut,
		Balance:         m.Balance,
		TransactionDate: m.TransactionDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const transactionColumns = `transaction_id, fund_id, church_id, report_id, expense_id, concept, amount_in, amount_out, balance, transaction_date, created_at, created_by, last_updated_at, last_updated_by`

func scanTransactionRows(rows pgx.Rows) ([]models.Transaction, error) {
	defer rows.Close()
	txns := []models.Transaction{}
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(
			&m.TransactionID,
			&m.FundID,
			&m.ChurchID,
			&m.ReportID,
			&m.ExpenseID,
			&m.Concept,
			&m.AmountIn,
			&m.AmountOut,
			&m.Balance,
			&m.TransactionDate,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, m)
	}
	return txns, rows.Err()
}

// ListTransactionsByFund pages through a fund's movements, newest first,
// using a (transaction_date, created_at) keyset cursor.
func (r *PgxTransactionRepository) ListTransactionsByFund(ctx context.Context, fundID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	// Fetch one extra row to detect whether another page exists.
	fetchLimit := limit + 1
	baseQuery := `SELECT ` + transactionColumns + ` FROM fund_transactions WHERE fund_id = $1`
	orderByClause := `ORDER BY transaction_date DESC, created_at DESC`
	args := []any{fundID}

	var rows pgx.Rows
	var err error
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		cursorClause := `AND (transaction_date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)
		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions for fund %s: %w", fundID, err)
	}

	modelTxns, err := scanTransactionRows(rows)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(modelTxns) > limit {
		last := modelTxns[limit-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		nextTokenVal = &token
		modelTxns = modelTxns[:limit]
	}

	txns := make([]domain.Transaction, len(modelTxns))
	for i, m := range modelTxns {
		txns[i] = toDomainTransaction(m)
	}
	return txns, nextTokenVal, nil
}

func (r *PgxTransactionRepository) FindTransactionsByReportID(ctx context.Context, reportID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM fund_transactions WHERE report_id = $1 ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, query, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for report %s: %w", reportID, err)
	}
	modelTxns, err := scanTransactionRows(rows)
	if err != nil {
		return nil, err
	}
	txns := make([]domain.Transaction, len(modelTxns))
	for i, m := range modelTxns {
		txns[i] = toDomainTransaction(m)
	}
	return txns, nil
}

// SumPeriodTotals aggregates posted movement over [start, end), optionally
// narrowed to one church. A nil church means the national view across all
// churches.
func (r *PgxTransactionRepository) SumPeriodTotals(ctx context.Context, churchID *string, start, end time.Time) (portsrepo.PeriodTotals, error) {
	query := `
		SELECT COALESCE(SUM(amount_in), 0), COALESCE(SUM(amount_out), 0), COUNT(*)
		FROM fund_transactions
		WHERE transaction_date >= $1 AND transaction_date < $2
	`
	args := []any{start, end}
	if churchID != nil {
		args = append(args, *churchID)
		query += fmt.Sprintf(" AND church_id = $%d", len(args))
	}
	query += ";"

	var totals portsrepo.PeriodTotals
	err := r.Pool.QueryRow(ctx, query, args...).Scan(&totals.AmountIn, &totals.AmountOut, &totals.Count)
	if err != nil {
		return portsrepo.PeriodTotals{}, fmt.Errorf("failed to sum period totals: %w", err)
	}
	return totals, nil
}

// SumFundNet returns sum(amount_in - amount_out) over all of a fund's
// transactions. Used to verify the running balance invariant.
func (r *PgxTransactionRepository) SumFundNet(ctx context.Context, fundID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount_in - amount_out), 0) FROM fund_transactions WHERE fund_id = $1;`
	var net decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, fundID).Scan(&net); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum fund net for %s: %w", fundID, err)
	}
	return net, nil
}

// TrialBalance sums debit and credit entries over [start, end). The church
// filter joins through fund_transactions so the sums cover only the entries
// posted for that church's movements.
func (r *PgxTransactionRepository) TrialBalance(ctx context.Context, churchID *string, start, end time.Time) (domain.TrialBalance, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN e.side = 'DEBIT' THEN e.amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN e.side = 'CREDIT' THEN e.amount ELSE 0 END), 0)
		FROM accounting_entries e
		WHERE e.entry_date >= $1 AND e.entry_date < $2
	`
	args := []any{start, end}
	if churchID != nil {
		args = append(args, *churchID)
		query += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM fund_transactions t
			WHERE t.transaction_id = e.transaction_id AND t.church_id = $%d
		)`, len(args))
	}
	query += ";"

	var tb domain.TrialBalance
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&tb.Debits, &tb.Credits); err != nil {
		return domain.TrialBalance{}, fmt.Errorf("failed to compute trial balance: %w", err)
	}
	return tb, nil
}
