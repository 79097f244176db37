package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an immutable ledger line for one fund. Corrections are
// reversing entries; rows are never edited in place. Balance is the fund's
// running balance immediately after this line, computed at insertion time
// from the fund's locked current balance.
type Transaction struct {
	TransactionID   string          `json:"transactionID"` // Primary Key (UUID)
	FundID          string          `json:"fundID"`
	ChurchID        *string         `json:"churchID,omitempty"` // Nil for national-level movements
	ReportID        *string         `json:"reportID,omitempty"` // Originating report, if any
	ExpenseID       *string         `json:"expenseID,omitempty"`
	Concept         string          `json:"concept"`
	AmountIn        decimal.Decimal `json:"amountIn"`
	AmountOut       decimal.Decimal `json:"amountOut"`
	Balance         decimal.Decimal `json:"balance"`
	TransactionDate time.Time       `json:"transactionDate"`
	AuditFields
}

// Net returns amountIn - amountOut for this line.
func (t Transaction) Net() decimal.Decimal {
	return t.AmountIn.Sub(t.AmountOut)
}
