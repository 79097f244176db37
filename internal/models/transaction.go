package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents an immutable fund_transactions row. balance is the
// fund's running balance right after this line.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	FundID          string          `db:"fund_id"`
	ChurchID        *string         `db:"church_id"`
	ReportID        *string         `db:"report_id"`
	ExpenseID       *string         `db:"expense_id"`
	Concept         string          `db:"concept"`
	AmountIn        decimal.Decimal `db:"amount_in"`
	AmountOut       decimal.Decimal `db:"amount_out"`
	Balance         decimal.Decimal `db:"balance"`
	TransactionDate time.Time       `db:"transaction_date"`
	AuditFields
}
