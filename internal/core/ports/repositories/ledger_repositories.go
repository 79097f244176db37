package repositories

import (
	"context"

	"github.com/ipupy/tesoreria_backend/internal/core/domain"
)

// LedgerReader defines read operations for monthly ledgers.
type LedgerReader interface {
	// FindLedgerByID retrieves a ledger by its unique identifier.
	FindLedgerByID(ctx context.Context, ledgerID string) (*domain.MonthlyLedger, error)

	// FindLedgerByPeriod retrieves the ledger for (churchID|nil, month, year).
	FindLedgerByPeriod(ctx context.Context, churchID *string, month, year int) (*domain.MonthlyLedger, error)
}

// LedgerWriter defines write operations for monthly ledgers.
type LedgerWriter interface {
	// SaveLedger persists a newly opened ledger. A duplicate period surfaces
	// as ErrConflict.
	SaveLedger(ctx context.Context, ledger domain.MonthlyLedger) error

	// UpdateLedger rewrites totals, status and close/reconcile stamps. The
	// update is guarded by expectedStatus; zero rows affected surfaces as
	// ErrInvalidState.
	UpdateLedger(ctx context.Context, ledger domain.MonthlyLedger, expectedStatus domain.LedgerStatus) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
