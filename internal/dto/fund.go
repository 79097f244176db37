package dto

import (
	"time"

	"github.com/ipupy/tesoreria_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateFundRequest registers a new fund with a zero balance.
type CreateFundRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateFundRequest edits fund metadata. Balances are never set directly.
type UpdateFundRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// FundResponse is the API shape of a fund.
type FundResponse struct {
	FundID         string          `json:"fundID"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToFundResponse maps a domain fund to its API shape.
func ToFundResponse(f *domain.Fund) FundResponse {
	return FundResponse{
		FundID:         f.FundID,
		Name:           f.Name,
		Description:    f.Description,
		CurrentBalance: f.CurrentBalance,
		IsActive:       f.IsActive,
		CreatedAt:      f.CreatedAt,
	}
}

// ListTransactionsParams pages through a fund's movements.
type ListTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// TransactionResponse is the API shape of a ledger line.
type TransactionResponse struct {
	TransactionID   string          `json:"transactionID"`
	FundID          string          `json:"fundID"`
	ChurchID        *string         `json:"churchID,omitempty"`
	ReportID        *string         `json:"reportID,omitempty"`
	ExpenseID       *string         `json:"expenseID,omitempty"`
	Concept         string          `json:"concept"`
	AmountIn        decimal.Decimal `json:"amountIn"`
	AmountOut       decimal.Decimal `json:"amountOut"`
	Balance         decimal.Decimal `json:"balance"`
	TransactionDate time.Time       `json:"transactionDate"`
	CreatedBy       string          `json:"createdBy"`
}

// ToTransactionResponse maps a domain transaction to its API shape.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		FundID:          t.FundID,
		ChurchID:        t.ChurchID,
		ReportID:        t.ReportID,
		ExpenseID:       t.ExpenseID,
		Concept:         t.Concept,
		AmountIn:        t.AmountIn,
		AmountOut:       t.AmountOut,
		Balance:         t.Balance,
		TransactionDate: t.TransactionDate,
		CreatedBy:       t.CreatedBy,
	}
}

// ToTransactionResponses maps a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToTransactionResponse(&txns[i])
	}
	return out
}

// ListTransactionsResponse is a page of fund movements.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
