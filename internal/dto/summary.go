package dto

import (
	"github.com/ipupy/tesoreria_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SummaryParams filters the accounting summary. ChurchID narrows to one
// church (mandatory for church-scoped callers); Month/Year select a period.
type SummaryParams struct {
	ChurchID *string
	Month    *int
	Year     *int
}

// IncomeSummary aggregates report income for the selected scope.
type IncomeSummary struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	Diezmos       decimal.Decimal `json:"diezmos"`
	Ofrendas      decimal.Decimal `json:"ofrendas"`
	FondoNacional decimal.Decimal `json:"fondoNacional"`
	ReportCount   int             `json:"reportCount"`
}

// ExpenseSummary aggregates expenses for the selected scope.
type ExpenseSummary struct {
	TotalExpense decimal.Decimal `json:"total_expense"`
	RecordCount  int             `json:"recordCount"`
}

// MovementSummary aggregates posted ledger activity for the selected scope.
type MovementSummary struct {
	AmountIn  decimal.Decimal `json:"amountIn"`
	AmountOut decimal.Decimal `json:"amountOut"`
	Count     int             `json:"count"`
}

// SummaryResponse is the read-side aggregation over reports, expenses,
// transactions and the period's ledger.
type SummaryResponse struct {
	Income       IncomeSummary       `json:"income"`
	Expenses     ExpenseSummary      `json:"expenses"`
	Movements    MovementSummary     `json:"movements"`
	LedgerStatus domain.LedgerStatus `json:"ledgerStatus"`
	NetResult    decimal.Decimal     `json:"netResult"`
}
