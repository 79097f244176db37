package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyLedger represents a monthly_ledgers row. church_id NULL means the
// national ledger; uniqueness over (church_id, month, year) is enforced with
// a partial index for the NULL case.
type MonthlyLedger struct {
	LedgerID string  `db:"ledger_id"`
	ChurchID *string `db:"church_id"`
	Month    int     `db:"month"`
	Year     int     `db:"year"`

	Status         string          `db:"status"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	TotalIncome    decimal.Decimal `db:"total_income"`
	TotalExpense   decimal.Decimal `db:"total_expense"`
	ClosingBalance decimal.Decimal `db:"closing_balance"`

	ClosedAt     *time.Time `db:"closed_at"`
	ReconciledAt *time.Time `db:"reconciled_at"`
	AuditFields
}
