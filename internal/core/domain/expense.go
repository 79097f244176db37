package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseRecord is a category-tagged expense. Creating one posts an
// amount-out transaction plus a matched entry pair in the same database
// transaction, so an expense row never exists without its ledger effect.
type ExpenseRecord struct {
	ExpenseID  string          `json:"expenseID"` // Primary Key (UUID)
	FundID     string          `json:"fundID"`
	ChurchID   *string         `json:"churchID,omitempty"`
	CategoryID string          `json:"categoryID"`
	Concept    string          `json:"concept"`
	Provider   string          `json:"provider"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	ApprovedBy string          `json:"approvedBy"`
	AuditFields
}
