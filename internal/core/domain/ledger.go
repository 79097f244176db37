package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerStatus is the lifecycle state of a monthly ledger. NOT_CREATED is a
// reported status for missing ledgers, never stored.
type LedgerStatus string

const (
	LedgerNotCreated LedgerStatus = "NOT_CREATED"
	LedgerOpen       LedgerStatus = "OPEN"
	LedgerClosed     LedgerStatus = "CLOSED"
	LedgerReconciled LedgerStatus = "RECONCILED"
)

// MonthlyLedger aggregates one period's posted transactions for one church,
// or nationally when ChurchID is nil. Opening balance is the prior period's
// closing balance. RECONCILED is terminal.
type MonthlyLedger struct {
	LedgerID string  `json:"ledgerID"` // Primary Key (UUID)
	ChurchID *string `json:"churchID,omitempty"`
	Month    int     `json:"month"`
	Year     int     `json:"year"`

	Status         LedgerStatus    `json:"status"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	TotalIncome    decimal.Decimal `json:"totalIncome"`
	TotalExpense   decimal.Decimal `json:"totalExpense"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`

	ClosedAt     *time.Time `json:"closedAt,omitempty"`
	ReconciledAt *time.Time `json:"reconciledAt,omitempty"`
	AuditFields
}

// TrialBalance holds the period's debit and credit sums.
type TrialBalance struct {
	Debits  decimal.Decimal `json:"debits"`
	Credits decimal.Decimal `json:"credits"`
}

// Balanced reports whether debits equal credits.
func (tb TrialBalance) Balanced() bool {
	return tb.Debits.Equal(tb.Credits)
}
