package repositories

import (
	"context"

	"github.com/ipupy/tesoreria_backend/internal/core/domain"
)

// PostingRepository executes the atomic units of work that span report or
// expense state, transaction insertion, accounting entries and fund
// balances. Every method is all-or-nothing: a failure anywhere rolls the
// whole unit back.
type PostingRepository interface {
	// ApproveReportAndPost, inside one database transaction: moves the
	// report from expectedStatus to APPROVED (stamping approver), locks the
	// affected funds, inserts one transaction per fund with its running
	// balance snapshot, inserts the matched accounting entries, and applies
	// the fund balance changes. The returned transactions carry the balances
	// computed under the lock. Zero rows on the guarded status update
	// surfaces as ErrInvalidState; any later failure as ErrPostingFailed.
	ApproveReportAndPost(ctx context.Context, report domain.MonthlyReport, expectedStatus domain.ReportStatus, approverID string, txns []domain.Transaction, entries []domain.AccountingEntry) ([]domain.Transaction, error)

	// PostExpense inserts the expense record, its amount-out transaction and
	// entry pair, and the fund balance change in one database transaction.
	PostExpense(ctx context.Context, expense domain.ExpenseRecord, txn domain.Transaction, entries []domain.AccountingEntry) (*domain.Transaction, error)
}
