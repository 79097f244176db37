package pgsql

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ipupy/tesoreria_backend/internal/apperrors"
	"github.com/ipupy/tesoreria_backend/internal/core/domain"
	portsrepo "github.com/ipupy/tesoreria_backend/internal/core/ports/repositories"
)

// PgxPostingRepository executes the units of work that must not be split:
// report approval with its ledger posting, and expense recording with its
// amount-out line. Fund rows are locked FOR UPDATE for the duration, so
// concurrent postings against the same fund serialize and every running
// balance snapshot is computed from the committed predecessor.
type PgxPostingRepository struct {
	BaseRepository
	fundRepo portsrepo.FundTransactionSupport
}

// newPgxPostingRepository creates a new posting repository.
func newPgxPostingRepository(pool *pgxpool.Pool, fundRepo portsrepo.FundTransactionSupport) portsrepo.PostingRepository {
	return &PgxPostingRepository{
		BaseRepository: BaseRepository{Pool: pool},
		fundRepo:       fundRepo,
	}
}

var _ portsrepo.PostingRepository = (*PgxPostingRepository)(nil)

const insertTransactionQuery = `
	INSERT INTO fund_transactions (transaction_id, fund_id, church_id, report_id, expense_id, concept, amount_in, amount_out, balance, transaction_date, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
`

const insertEntryQuery = `
	INSERT INTO accounting_entries (entry_id, transaction_id, account_code, side, amount, description, entry_date, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
`

// postTransactionsInTx locks the affected funds, computes each line's running
// balance from the locked balances, inserts the lines and their entries, and
// applies the net balance changes. Caller owns the transaction.
func (r *PgxPostingRepository) postTransactionsInTx(ctx context.Context, tx pgx.Tx, txns []domain.Transaction, entries []domain.AccountingEntry, userID string, now time.Time) ([]domain.Transaction, error) {
	fundIDSet := make(map[string]struct{})
	for _, txn := range txns {
		fundIDSet[txn.FundID] = struct{}{}
	}
	fundIDs := make([]string, 0, len(fundIDSet))
	for id := range fundIDSet {
		fundIDs = append(fundIDs, id)
	}
	sort.Strings(fundIDs)

	lockedFunds, err := r.fundRepo.FindFundsByIDsForUpdate(ctx, tx, fundIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock funds: %w", err)
	}

	// Running balances start from the locked (committed) fund balances and
	// advance line by line within this posting.
	runningBalances := make(map[string]decimal.Decimal, len(lockedFunds))
	balanceChanges := make(map[string]decimal.Decimal, len(lockedFunds))
	for id, fund := range lockedFunds {
		runningBalances[id] = fund.CurrentBalance
		balanceChanges[id] = decimal.Zero
	}

	batch := &pgx.Batch{}
	posted := make([]domain.Transaction, len(txns))
	for i, txn := range txns {
		net := txn.Net()
		newBalance := runningBalances[txn.FundID].Add(net)
		runningBalances[txn.FundID] = newBalance
		balanceChanges[txn.FundID] = balanceChanges[txn.FundID].Add(net)

		txn.Balance = newBalance
		posted[i] = txn

		batch.Queue(insertTransactionQuery,
			txn.TransactionID,
			txn.FundID,
			txn.ChurchID,
			txn.ReportID,
			txn.ExpenseID,
			txn.Concept,
			txn.AmountIn,
			txn.AmountOut,
			txn.Balance,
			txn.TransactionDate,
			now,
			userID,
			now,
			userID,
		)
	}
	for _, entry := range entries {
		batch.Queue(insertEntryQuery,
			entry.EntryID,
			entry.TransactionID,
			entry.AccountCode,
			string(entry.Side),
			entry.Amount,
			entry.Description,
			entry.EntryDate,
			now,
			userID,
			now,
			userID,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("failed to insert posting rows: %w", err)
	}

	if err := r.fundRepo.UpdateFundBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return nil, fmt.Errorf("failed to apply fund balance changes: %w", err)
	}
	return posted, nil
}

// ApproveReportAndPost moves the report to APPROVED and posts its ledger
// effect in one database transaction. The guarded status update runs first:
// losing it means a concurrent approval already happened and the whole unit
// aborts with ErrInvalidState before any ledger row exists. Any later
// failure rolls everything back and surfaces as ErrPostingFailed, leaving
// the report observably unchanged.
func (r *PgxPostingRepository) ApproveReportAndPost(ctx context.Context, report domain.MonthlyReport, expectedStatus domain.ReportStatus, approverID string, txns []domain.Transaction, entries []domain.AccountingEntry) ([]domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now().UTC()
	tag, err := tx.Exec(ctx, `
		UPDATE monthly_reports
		SET status = $3, approved_by = $4, approved_at = $5, last_updated_at = $5, last_updated_by = $4
		WHERE report_id = $1 AND status = $2;
	`, report.ReportID, string(expectedStatus), string(domain.ReportApproved), approverID, now)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to mark report %s approved: %v", apperrors.ErrPostingFailed, report.ReportID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: report %s is not %s", apperrors.ErrInvalidState, report.ReportID, expectedStatus)
	}

	posted, err := r.postTransactionsInTx(ctx, tx, txns, entries, approverID, now)
	if err != nil {
		return nil, fmt.Errorf("%w: report %s: %v", apperrors.ErrPostingFailed, report.ReportID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("%w: report %s: %v", apperrors.ErrPostingFailed, report.ReportID, err)
	}
	return posted, nil
}

// PostExpense inserts the expense record with its amount-out line, entry
// pair and fund balance change in one database transaction.
func (r *PgxPostingRepository) PostExpense(ctx context.Context, expense domain.ExpenseRecord, txn domain.Transaction, entries []domain.AccountingEntry) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now().UTC()
	_, err = tx.Exec(ctx, `
		INSERT INTO expense_records (expense_id, fund_id, church_id, category_id, concept, provider, amount, date, approved_by, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`,
		expense.ExpenseID,
		expense.FundID,
		expense.ChurchID,
		expense.CategoryID,
		expense.Concept,
		expense.Provider,
		expense.Amount,
		expense.Date,
		expense.ApprovedBy,
		expense.CreatedAt,
		expense.CreatedBy,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to insert expense %s: %v", apperrors.ErrPostingFailed, expense.ExpenseID, err)
	}

	posted, err := r.postTransactionsInTx(ctx, tx, []domain.Transaction{txn}, entries, expense.CreatedBy, now)
	if err != nil {
		return nil, fmt.Errorf("%w: expense %s: %v", apperrors.ErrPostingFailed, expense.ExpenseID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("%w: expense %s: %v", apperrors.ErrPostingFailed, expense.ExpenseID, err)
	}
	return &posted[0], nil
}
