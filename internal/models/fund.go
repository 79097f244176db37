package models

import "github.com/shopspring/decimal"

// Fund represents a fund row. current_balance is only written inside the
// posting transaction that holds the row lock.
type Fund struct {
	FundID         string          `db:"fund_id"`
	Name           string          `db:"name"`
	Description    string          `db:"description"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
