package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportStatus indicates where a monthly report sits in its workflow.
type ReportStatus string

const (
	ReportDraft     ReportStatus = "DRAFT"
	ReportSubmitted ReportStatus = "SUBMITTED"
	ReportApproved  ReportStatus = "APPROVED"
	ReportProcessed ReportStatus = "PROCESSED"
)

// FondoNacionalRate is the share of tithes and offerings every church remits
// to the national fund.
var FondoNacionalRate = decimal.RequireFromString("0.10")

// FundAllocation earmarks part of a report's income for a designated fund
// (missions, building fund, etc.).
type FundAllocation struct {
	FundID string          `json:"fundID"`
	Amount decimal.Decimal `json:"amount"`
}

// MonthlyReport is a church's self-reported income/expense submission for one
// calendar month. Unique per (churchID, month, year). Totals are derived and
// recomputed server-side on every mutation; client-submitted totals are never
// trusted.
type MonthlyReport struct {
	ReportID string `json:"reportID"` // Primary Key (UUID)
	ChurchID string `json:"churchID"`
	Month    int    `json:"month"` // 1..12
	Year     int    `json:"year"`

	// Income fields
	Diezmos       decimal.Decimal `json:"diezmos"`
	Ofrendas      decimal.Decimal `json:"ofrendas"`
	OtrosIngresos decimal.Decimal `json:"otrosIngresos"`

	// Expense fields
	HonorariosPastorales decimal.Decimal `json:"honorariosPastorales"`
	GastosOperativos     decimal.Decimal `json:"gastosOperativos"`
	OtrosGastos          decimal.Decimal `json:"otrosGastos"`

	// Derived totals, see RecomputeTotals.
	FondoNacional decimal.Decimal `json:"fondoNacional"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpense  decimal.Decimal `json:"totalExpense"`
	MonthBalance  decimal.Decimal `json:"monthBalance"`

	// Deposit evidence, required before submission.
	DepositReference string     `json:"depositReference"`
	DepositDate      *time.Time `json:"depositDate,omitempty"`

	Allocations []FundAllocation `json:"allocations,omitempty"`

	Status          ReportStatus `json:"status"`
	EnteredBy       string       `json:"enteredBy"`
	ApprovedBy      *string      `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time   `json:"approvedAt,omitempty"`
	RejectionReason *string      `json:"rejectionReason,omitempty"`
	AuditFields
}

// RecomputeTotals derives fondo nacional, income, expense and month balance
// from the raw fields. Idempotent: recomputing twice yields the same totals.
func (r *MonthlyReport) RecomputeTotals() {
	r.FondoNacional = r.Diezmos.Add(r.Ofrendas).Mul(FondoNacionalRate).Round(2)
	r.TotalIncome = r.Diezmos.Add(r.Ofrendas).Add(r.OtrosIngresos).Round(2)
	r.TotalExpense = r.HonorariosPastorales.Add(r.GastosOperativos).Add(r.OtrosGastos).Round(2)
	r.MonthBalance = r.TotalIncome.Sub(r.TotalExpense)
}

// AllocationsTotal sums the designated fund allocations.
func (r *MonthlyReport) AllocationsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, a := range r.Allocations {
		total = total.Add(a.Amount)
	}
	return total
}

// reportTransitions enumerates the legal forward transitions. PROCESSED is
// terminal; corrections happen through reversing entries, never edits.
var reportTransitions = map[ReportStatus][]ReportStatus{
	ReportDraft:     {ReportSubmitted},
	ReportSubmitted: {ReportApproved, ReportDraft}, // back to draft only via rejection
	ReportApproved:  {ReportProcessed},
	ReportProcessed: {},
}

// CanTransitionTo reports whether moving from the current status to next is a
// legal workflow step.
func (r *MonthlyReport) CanTransitionTo(next ReportStatus) bool {
	for _, s := range reportTransitions[r.Status] {
		if s == next {
			return true
		}
	}
	return false
}
