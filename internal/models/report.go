package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyReport represents a monthly_reports row. Unique on
// (church_id, month, year). Totals are stored as computed by the service.
type MonthlyReport struct {
	ReportID string `db:"report_id"`
	ChurchID string `db:"church_id"`
	Month    int    `db:"month"`
	Year     int    `db:"year"`

	Diezmos       decimal.Decimal `db:"diezmos"`
	Ofrendas      decimal.Decimal `db:"ofrendas"`
	OtrosIngresos decimal.Decimal `db:"otros_ingresos"`

	HonorariosPastorales decimal.Decimal `db:"honorarios_pastorales"`
	GastosOperativos     decimal.Decimal `db:"gastos_operativos"`
	OtrosGastos          decimal.Decimal `db:"otros_gastos"`

	FondoNacional decimal.Decimal `db:"fondo_nacional"`
	TotalIncome   decimal.Decimal `db:"total_income"`
	TotalExpense  decimal.Decimal `db:"total_expense"`
	MonthBalance  decimal.Decimal `db:"month_balance"`

	DepositReference string     `db:"deposit_reference"`
	DepositDate      *time.Time `db:"deposit_date"`

	Status          string     `db:"status"`
	EnteredBy       string     `db:"entered_by"`
	ApprovedBy      *string    `db:"approved_by"`
	ApprovedAt      *time.Time `db:"approved_at"`
	RejectionReason *string    `db:"rejection_reason"`
	AuditFields
}
