package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseRecord represents an expense_records row.
type ExpenseRecord struct {
	ExpenseID  string          `db:"expense_id"`
	FundID     string          `db:"fund_id"`
	ChurchID   *string         `db:"church_id"`
	CategoryID string          `db:"category_id"`
	Concept    string          `db:"concept"`
	Provider   string          `db:"provider"`
	Amount     decimal.Decimal `db:"amount"`
	Date       time.Time       `db:"date"`
	ApprovedBy string          `db:"approved_by"`
	AuditFields
}
