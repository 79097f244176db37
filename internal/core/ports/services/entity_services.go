package services

import (
	"context"

	"github.com/ipupy/tesoreria_backend/internal/core/domain"
	"github.com/ipupy/tesoreria_backend/internal/dto"
)

// ChurchSvcFacade manages congregations.
type ChurchSvcFacade interface {
	CreateChurch(ctx context.Context, principalID string, req dto.CreateChurchRequest) (*domain.Church, error)
	GetChurch(ctx context.Context, principalID string, churchID string) (*domain.Church, error)
	ListChurches(ctx context.Context, principalID string) ([]domain.Church, error)
	UpdateChurch(ctx context.Context, principalID string, churchID string, req dto.UpdateChurchRequest) (*domain.Church, error)
	DeactivateChurch(ctx context.Context, principalID string, churchID string) error
}

// FundSvcFacade manages funds and exposes fund movement listings.
type FundSvcFacade interface {
	CreateFund(ctx context.Context, principalID string, req dto.CreateFundRequest) (*domain.Fund, error)
	GetFund(ctx context.Context, principalID string, fundID string) (*domain.Fund, error)
	ListFunds(ctx context.Context, principalID string) ([]domain.Fund, error)
	UpdateFund(ctx context.Context, principalID string, fundID string, req dto.UpdateFundRequest) (*domain.Fund, error)
	ListFundTransactions(ctx context.Context, principalID string, fundID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// ExpenseSvcFacade records and reads expenses.
type ExpenseSvcFacade interface {
	CreateExpense(ctx context.Context, principalID string, req dto.CreateExpenseRequest) (*domain.ExpenseRecord, error)
	GetExpense(ctx context.Context, principalID string, expenseID string) (*domain.ExpenseRecord, error)
	ListExpenses(ctx context.Context, principalID string, churchID *string, month, year int) ([]domain.ExpenseRecord, error)
}

// CategorySvcFacade manages the transaction taxonomy.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, principalID string, req dto.CreateCategoryRequest) (*domain.TransactionCategory, error)
	ListCategories(ctx context.Context, principalID string) ([]domain.TransactionCategory, error)
	DeactivateCategory(ctx context.Context, principalID string, categoryID string) error
}

// UserSvcFacade manages principals.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, principalID string, req dto.CreateUserRequest) (*domain.User, error)
	GetUser(ctx context.Context, principalID string, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, principalID string) ([]domain.User, error)
	UpdateUserRole(ctx context.Context, principalID string, userID string, req dto.UpdateUserRoleRequest) (*domain.User, error)
	DeactivateUser(ctx context.Context, principalID string, userID string) error

	// Authenticate verifies credentials and returns the user for token
	// issuance. Used by the auth handler only.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// FindOrProvisionOAuthUser returns the user for an externally verified
	// email, provisioning a secretary-level principal on first login.
	FindOrProvisionOAuthUser(ctx context.Context, email, name string) (*domain.User, error)
}
