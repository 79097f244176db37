package repositories

import (
	"context"
	"time"

	"github.com/ipupy/tesoreria_backend/internal/core/domain"
)

// UserReader defines read operations for principal records.
type UserReader interface {
	// FindUserByID retrieves a user by its unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsers retrieves all users.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// FindFundAssignments returns the fund IDs assigned to a fund director.
	FindFundAssignments(ctx context.Context, userID string) ([]string, error)
}

// UserWriter defines write operations for principal records.
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUserRole applies the admin role/scope mutation, replacing fund
	// assignments atomically.
	UpdateUserRole(ctx context.Context, userID string, role domain.Role, churchID *string, fundIDs []string, updatedBy string, now time.Time) error

	// DeactivateUser soft-deactivates a user.
	DeactivateUser(ctx context.Context, userID string, updatedBy string, now time.Time) error
}

// UserRepositoryFacade combines all user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
