package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ipupy/tesoreria_backend/internal/apperrors"
	"github.com/ipupy/tesoreria_backend/internal/core/domain"
	portsrepo "github.com/ipupy/tesoreria_backend/internal/core/ports/repositories"
	"github.com/ipupy/tesoreria_backend/internal/models"
)

type PgxFundRepository struct {
	BaseRepository
}

// newPgxFundRepository creates a new repository for fund data.
func newPgxFundRepository(pool *pgxpool.Pool) portsrepo.FundRepositoryFacade {
	return &PgxFundRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FundRepositoryFacade = (*PgxFundRepository)(nil)

func toDomainFund(m models.Fund) domain.Fund {
	return domain.Fund{
		FundID:         m.FundID,
		Name:           m.Name,
		Description:    m.Description,
		CurrentBalance: m.CurrentBalance,
		IsActive:       m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const fundColumns = `fund_id, name, description, current_balance, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanFund(row pgx.Row) (*domain.Fund, error) {
	var m models.Fund
	err := row.Scan(
		&m.FundID,
		&m.Name,
		&m.Description,
		&m.CurrentBalance,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	fund := toDomainFund(m)
	return &fund, nil
}

func (r *PgxFundRepository) SaveFund(ctx context.Context, fund domain.Fund) error {
	query := `
		INSERT INTO funds (` + fundColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		fund.FundID,
		fund.Name,
		fund.Description,
		fund.CurrentBalance,
		fund.IsActive,
		fund.CreatedAt,
		fund.CreatedBy,
		fund.LastUpdatedAt,
		fund.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: fund %s already exists", apperrors.ErrConflict, fund.Name)
		}
		return fmt.Errorf("failed to save fund %s: %w", fund.FundID, err)
	}
	return nil
}

func (r *PgxFundRepository) FindFundByID(ctx context.Context, fundID string) (*domain.Fund, error) {
	query := `SELECT ` + fundColumns + ` FROM funds WHERE fund_id = $1;`
	fund, err := scanFund(r.Pool.QueryRow(ctx, query, fundID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fund %s: %w", fundID, err)
	}
	return fund, nil
}

func (r *PgxFundRepository) FindFundByName(ctx context.Context, name string) (*domain.Fund, error) {
	query := `SELECT ` + fundColumns + ` FROM funds WHERE name = $1;`
	fund, err := scanFund(r.Pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fund %q: %w", name, err)
	}
	return fund, nil
}

func (r *PgxFundRepository) ListFunds(ctx context.Context, includeInactive bool) ([]domain.Fund, error) {
	query := `SELECT ` + fundColumns + ` FROM funds`
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list funds: %w", err)
	}
	defer rows.Close()

	funds := []domain.Fund{}
	for rows.Next() {
		var m models.Fund
		if err := rows.Scan(
			&m.FundID,
			&m.Name,
			&m.Description,
			&m.CurrentBalance,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan fund row: %w", err)
		}
		funds = append(funds, toDomainFund(m))
	}
	return funds, rows.Err()
}

func (r *PgxFundRepository) UpdateFund(ctx context.Context, fund domain.Fund) error {
	query := `
		UPDATE funds
		SET name = $2, description = $3, last_updated_at = $4, last_updated_by = $5
		WHERE fund_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		fund.FundID,
		fund.Name,
		fund.Description,
		fund.LastUpdatedAt,
		fund.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update fund %s: %w", fund.FundID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindFundsByIDsForUpdate selects the funds and locks their rows within the
// caller's transaction. Concurrent postings touching the same fund serialize
// on these locks, which is what keeps running balances consistent.
func (r *PgxFundRepository) FindFundsByIDsForUpdate(ctx context.Context, tx pgx.Tx, fundIDs []string) (map[string]domain.Fund, error) {
	if len(fundIDs) == 0 {
		return map[string]domain.Fund{}, nil
	}
	query := `SELECT ` + fundColumns + ` FROM funds WHERE fund_id = ANY($1) FOR UPDATE;`

	rows, err := tx.Query(ctx, query, fundIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock funds: %w", err)
	}
	defer rows.Close()

	funds := make(map[string]domain.Fund, len(fundIDs))
	for rows.Next() {
		var m models.Fund
		if err := rows.Scan(
			&m.FundID,
			&m.Name,
			&m.Description,
			&m.CurrentBalance,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan locked fund row: %w", err)
		}
		funds[m.FundID] = toDomainFund(m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, id := range fundIDs {
		if _, ok := funds[id]; !ok {
			return nil, fmt.Errorf("%w: fund %s", apperrors.ErrNotFound, id)
		}
	}
	return funds, nil
}

// UpdateFundBalancesInTx applies net balance changes to funds already locked
// in this transaction.
func (r *PgxFundRepository) UpdateFundBalancesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE funds
		SET current_balance = current_balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE fund_id = $1;
	`
	batch := &pgx.Batch{}
	for fundID, change := range changes {
		batch.Queue(query, fundID, change, now, userID)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to update fund balances: %w", err)
	}
	return nil
}
