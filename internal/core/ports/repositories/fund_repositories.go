package repositories

import (
	"context"
	"time"

	"github.com/ipupy/tesoreria_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// FundReader defines read operations for fund data.
type FundReader interface {
	// FindFundByID retrieves a fund by its unique identifier.
	FindFundByID(ctx context.Context, fundID string) (*domain.Fund, error)

	// FindFundByName retrieves a fund by its unique name.
	FindFundByName(ctx context.Context, name string) (*domain.Fund, error)

	// ListFunds retrieves all funds, optionally including deactivated ones.
	ListFunds(ctx context.Context, includeInactive bool) ([]domain.Fund, error)
}

// FundWriter defines write operations for fund data.
type FundWriter interface {
	// SaveFund persists a new fund.
	SaveFund(ctx context.Context, fund domain.Fund) error

	// UpdateFund updates fund metadata. Balance changes go through
	// FundTransactionSupport only.
	UpdateFund(ctx context.Context, fund domain.Fund) error
}

// FundTransactionSupport defines the balance operations used inside posting
// transactions. Callers must hold a pgx.Tx spanning the whole posting.
type FundTransactionSupport interface {
	// FindFundsByIDsForUpdate selects funds and locks their rows (FOR UPDATE)
	// within the transaction, serializing concurrent postings per fund.
	FindFundsByIDsForUpdate(ctx context.Context, tx pgx.Tx, fundIDs []string) (map[string]domain.Fund, error)

	// UpdateFundBalancesInTx applies net balance changes to the locked funds.
	UpdateFundBalancesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, userID string, now time.Time) error
}

// FundRepositoryFacade combines all fund repository interfaces.
type FundRepositoryFacade interface {
	FundReader
	FundWriter
	FundTransactionSupport
}
