package repositories

import (
	"context"
	"time"

	"github.com/ipupy/tesoreria_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PeriodTotals aggregates posted movement for a period.
type PeriodTotals struct {
	AmountIn  decimal.Decimal
	AmountOut decimal.Decimal
	Count     int
}

// TransactionReader defines read operations over the append-only ledger.
type TransactionReader interface {
	// ListTransactionsByFund pages through a fund's movements, newest first,
	// using token-based pagination.
	ListTransactionsByFund(ctx context.Context, fundID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// FindTransactionsByReportID retrieves the lines posted for a report.
	FindTransactionsByReportID(ctx context.Context, reportID string) ([]domain.Transaction, error)

	// SumPeriodTotals aggregates amountIn/amountOut over [start, end),
	// optionally narrowed to one church.
	SumPeriodTotals(ctx context.Context, churchID *string, start, end time.Time) (PeriodTotals, error)

	// SumFundNet returns sum(amountIn - amountOut) over all of a fund's
	// transactions, for balance invariant checks.
	SumFundNet(ctx context.Context, fundID string) (decimal.Decimal, error)
}

// EntryReader defines read operations over accounting entries.
type EntryReader interface {
	// TrialBalance sums debits and credits over [start, end), optionally
	// narrowed to the entries posted for one church's transactions. A nil
	// church means the national view.
	TrialBalance(ctx context.Context, churchID *string, start, end time.Time) (domain.TrialBalance, error)
}

// TransactionRepositoryFacade combines ledger read interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	EntryReader
}
