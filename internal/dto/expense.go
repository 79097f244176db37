package dto

import (
	"time"

	"github.com/ipupy/tesoreria_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest records an approved expense; posting happens in the
// same database transaction as the insert.
type CreateExpenseRequest struct {
	FundID     string          `json:"fundID" binding:"required"`
	ChurchID   *string         `json:"churchID"`
	CategoryID string          `json:"categoryID" binding:"required"`
	Concept    string          `json:"concept" binding:"required"`
	Provider   string          `json:"provider"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Date       time.Time       `json:"date" binding:"required"`
}

// ExpenseResponse is the API shape of an expense record.
type ExpenseResponse struct {
	ExpenseID  string          `json:"expenseID"`
	FundID     string          `json:"fundID"`
	ChurchID   *string         `json:"churchID,omitempty"`
	CategoryID string          `json:"categoryID"`
	Concept    string          `json:"concept"`
	Provider   string          `json:"provider"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	ApprovedBy string          `json:"approvedBy"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ToExpenseResponse maps a domain expense to its API shape.
func ToExpenseResponse(e *domain.ExpenseRecord) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:  e.ExpenseID,
		FundID:     e.FundID,
		ChurchID:   e.ChurchID,
		CategoryID: e.CategoryID,
		Concept:    e.Concept,
		Provider:   e.Provider,
		Amount:     e.Amount,
		Date:       e.Date,
		ApprovedBy: e.ApprovedBy,
		CreatedAt:  e.CreatedAt,
	}
}
