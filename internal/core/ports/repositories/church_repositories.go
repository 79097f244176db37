package repositories

import (
	"context"
	"time"

	"github.com/ipupy/tesoreria_backend/internal/core/domain"
)

// ChurchReader defines read operations for church data.
type ChurchReader interface {
	// FindChurchByID retrieves a church by its unique identifier.
	FindChurchByID(ctx context.Context, churchID string) (*domain.Church, error)

	// ListChurches retrieves all churches, optionally including deactivated ones.
	ListChurches(ctx context.Context, includeInactive bool) ([]domain.Church, error)
}

// ChurchWriter defines write operations for church data.
type ChurchWriter interface {
	// SaveChurch persists a new church.
	SaveChurch(ctx context.Context, church domain.Church) error

	// UpdateChurch updates an existing church's metadata.
	UpdateChurch(ctx context.Context, church domain.Church) error

	// DeactivateChurch soft-deactivates a church.
	DeactivateChurch(ctx context.Context, churchID string, userID string, now time.Time) error
}

// ChurchRepositoryFacade combines all church repository interfaces.
type ChurchRepositoryFacade interface {
	ChurchReader
	ChurchWriter
}
