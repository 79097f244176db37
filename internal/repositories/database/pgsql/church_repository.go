package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ipupy/tesoreria_backend/internal/apperrors"
	"github.com/ipupy/tesoreria_backend/internal/core/domain"
	portsrepo "github.com/ipupy/tesoreria_backend/internal/core/ports/repositories"
	"github.com/ipupy/tesoreria_backend/internal/models"
)

type PgxChurchRepository struct {
	BaseRepository
}

// newPgxChurchRepository creates a new repository for church data.
func newPgxChurchRepository(pool *pgxpool.Pool) portsrepo.ChurchRepositoryFacade {
	return &PgxChurchRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ChurchRepositoryFacade = (*PgxChurchRepository)(nil)

func toDomainChurch(m models.Church) domain.Church {
	return domain.Church{
		ChurchID: m.ChurchID,
		Name:     m.Name,
		City:     m.City,
		Pastor:   m.Pastor,
		Phone:    m.Phone,
		IsActive: m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func (r *PgxChurchRepository) SaveChurch(ctx context.Context, church domain.Church) error {
	query := `
		INSERT INTO churches (church_id, name, city, pastor, phone, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		church.ChurchID,
		church.Name,
		church.City,
		church.Pastor,
		church.Phone,
		church.IsActive,
		church.CreatedAt,
		church.CreatedBy,
		church.LastUpdatedAt,
		church.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: church %s already exists", apperrors.ErrConflict, church.Name)
		}
		return fmt.Errorf("failed to save church %s: %w", church.ChurchID, err)
	}
	return nil
}

func (r *PgxChurchRepository) FindChurchByID(ctx context.Context, churchID string) (*domain.Church, error) {
	query := `
		SELECT church_id, name, city, pastor, phone, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM churches
		WHERE church_id = $1;
	`
	var m models.Church
	err := r.Pool.QueryRow(ctx, query, churchID).Scan(
		&m.ChurchID,
		&m.Name,
		&m.City,
		&m.Pastor,
		&m.Phone,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find church %s: %w", churchID, err)
	}
	church := toDomainChurch(m)
	return &church, nil
}

func (r *PgxChurchRepository) ListChurches(ctx context.Context, includeInactive bool) ([]domain.Church, error) {
	query := `
		SELECT church_id, name, city, pastor, phone, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM churches
	`
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list churches: %w", err)
	}
	defer rows.Close()

	churches := []domain.Church{}
	for rows.Next() {
		var m models.Church
		if err := rows.Scan(
			&m.ChurchID,
			&m.Name,
			&m.City,
			&m.Pastor,
			&m.Phone,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan church row: %w", err)
		}
		churches = append(churches, toDomainChurch(m))
	}
	return churches, rows.Err()
}

func (r *PgxChurchRepository) UpdateChurch(ctx context.Context, church domain.Church) error {
	query := `
		UPDATE churches
		SET name = $2, city = $3, pastor = $4, phone = $5, last_updated_at = $6, last_updated_by = $7
		WHERE church_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		church.ChurchID,
		church.Name,
		church.City,
		church.Pastor,
		church.Phone,
		church.LastUpdatedAt,
		church.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update church %s: %w", church.ChurchID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxChurchRepository) DeactivateChurch(ctx context.Context, churchID string, userID string, now time.Time) error {
	query := `
		UPDATE churches
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE church_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, churchID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate church %s: %w", churchID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
