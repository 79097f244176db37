package repositories

import (
	"context"
	"time"

	"github.com/ipupy/tesoreria_backend/internal/core/domain"
)

// CategoryReader defines read operations for the transaction taxonomy.
type CategoryReader interface {
	// FindCategoryByID retrieves a category by its unique identifier.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.TransactionCategory, error)

	// ListCategories retrieves the taxonomy, optionally including
	// deactivated entries.
	ListCategories(ctx context.Context, includeInactive bool) ([]domain.TransactionCategory, error)
}

// CategoryWriter defines write operations for the transaction taxonomy.
type CategoryWriter interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.TransactionCategory) error

	// DeactivateCategory soft-deactivates a category; referenced categories
	// are never deleted.
	DeactivateCategory(ctx context.Context, categoryID string, userID string, now time.Time) error
}

// CategoryRepositoryFacade combines the taxonomy repository interfaces.
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
