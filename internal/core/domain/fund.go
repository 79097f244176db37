package domain

import "github.com/shopspring/decimal"

// WellKnownFundNacional is the seeded national fund that receives the
// contribution share of every approved report.
const WellKnownFundNacional = "Fondo Nacional"

// Fund is a named pool of money with its own running balance. The balance is
// derived state: it must always equal the running sum of the fund's
// transactions and is only mutated inside the posting transaction that locks
// the fund row.
type Fund struct {
	FundID         string          `json:"fundID"` // Primary Key (UUID)
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}
