package services

import (
	"context"

	"github.com/ipupy/tesoreria_backend/internal/core/domain"
	"github.com/ipupy/tesoreria_backend/internal/dto"
)

// LedgerPostingSvc builds the posting rows the report approval unit persists
// atomically. It is a pure computation, not an independent public operation.
type LedgerPostingSvc interface {
	// BuildReportPostings computes the per-fund transactions and matched
	// accounting entries for a report, without persisting anything.
	BuildReportPostings(ctx context.Context, report *domain.MonthlyReport) ([]domain.Transaction, []domain.AccountingEntry, error)
}

// LedgerLifecycleSvc drives monthly ledger open/close/reconcile.
type LedgerLifecycleSvc interface {
	// OpenLedger opens the period ledger; ErrConflict if one already exists.
	OpenLedger(ctx context.Context, principalID string, req dto.OpenLedgerRequest) (*domain.MonthlyLedger, error)

	// CloseLedger recomputes period totals from posted transactions and
	// closes the ledger; ErrInvalidState unless open.
	CloseLedger(ctx context.Context, principalID string, ledgerID string) (*domain.MonthlyLedger, error)

	// ReconcileLedger verifies the closed ledger against recomputed totals
	// and the period trial balance; mismatch surfaces as a
	// ReconciliationMismatchError.
	ReconcileLedger(ctx context.Context, principalID string, ledgerID string) (*domain.MonthlyLedger, error)

	// GetLedger retrieves a ledger by period within the principal's scope.
	GetLedger(ctx context.Context, principalID string, churchID *string, month, year int) (*domain.MonthlyLedger, error)

	// GetTrialBalance sums debits and credits for the period.
	GetTrialBalance(ctx context.Context, principalID string, month, year int) (*domain.TrialBalance, error)
}

// LedgerSvcFacade combines the ledger engine interfaces.
type LedgerSvcFacade interface {
	LedgerPostingSvc
	LedgerLifecycleSvc
}
