package repositories

import (
	"context"
	"time"

	"github.com/ipupy/tesoreria_backend/internal/core/domain"
)

// ExpenseReader defines read operations for expense records. Inserts happen
// only through PostingRepository.PostExpense.
type ExpenseReader interface {
	// FindExpenseByID retrieves an expense by its unique identifier.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.ExpenseRecord, error)

	// ListExpenses retrieves expenses over [start, end), optionally narrowed
	// to one church, newest first.
	ListExpenses(ctx context.Context, churchID *string, start, end time.Time) ([]domain.ExpenseRecord, error)
}

// ExpenseRepositoryFacade is the expense read facade.
type ExpenseRepositoryFacade interface {
	ExpenseReader
}
