package dto

import (
	"time"

	"github.com/ipupy/tesoreria_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FundAllocationRequest earmarks part of a report's income for a designated fund.
type FundAllocationRequest struct {
	FundID string          `json:"fundID" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// CreateReportRequest creates a draft monthly report. Totals are recomputed
// server-side; any client-sent totals are ignored.
type CreateReportRequest struct {
	ChurchID string `json:"churchID" binding:"required"`
	Month    int    `json:"month" binding:"required,min=1,max=12"`
	Year     int    `json:"year" binding:"required,min=2000,max=2100"`

	Diezmos       decimal.Decimal `json:"diezmos"`
	Ofrendas      decimal.Decimal `json:"ofrendas"`
	OtrosIngresos decimal.Decimal `json:"otrosIngresos"`

	HonorariosPastorales decimal.Decimal `json:"honorariosPastorales"`
	GastosOperativos     decimal.Decimal `json:"gastosOperativos"`
	OtrosGastos          decimal.Decimal `json:"otrosGastos"`

	DepositReference string     `json:"depositReference"`
	DepositDate      *time.Time `json:"depositDate"`

	Allocations []FundAllocationRequest `json:"allocations"`
}

// UpdateReportRequest edits a draft report's raw fields.
type UpdateReportRequest struct {
	Diezmos       *decimal.Decimal `json:"diezmos"`
	Ofrendas      *decimal.Decimal `json:"ofrendas"`
	OtrosIngresos *decimal.Decimal `json:"otrosIngresos"`

	HonorariosPastorales *decimal.Decimal `json:"honorariosPastorales"`
	GastosOperativos     *decimal.Decimal `json:"gastosOperativos"`
	OtrosGastos          *decimal.Decimal `json:"otrosGastos"`

	DepositReference *string    `json:"depositReference"`
	DepositDate      *time.Time `json:"depositDate"`
}

// ApproveReportRequest carries the optional manual-entry override flag. Only
// a national admin may approve a draft directly, and only with ManualEntry
// set.
type ApproveReportRequest struct {
	ManualEntry bool `json:"manualEntry"`
}

// RejectReportRequest returns a submitted report to draft with a mandatory
// audit reason.
type RejectReportRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ReportResponse is the API shape of a monthly report.
type ReportResponse struct {
	ReportID string `json:"reportID"`
	ChurchID string `json:"churchID"`
	Month    int    `json:"month"`
	Year     int    `json:"year"`

	Diezmos       decimal.Decimal `json:"diezmos"`
	Ofrendas      decimal.Decimal `json:"ofrendas"`
	OtrosIngresos decimal.Decimal `json:"otrosIngresos"`

	HonorariosPastorales decimal.Decimal `json:"honorariosPastorales"`
	GastosOperativos     decimal.Decimal `json:"gastosOperativos"`
	OtrosGastos          decimal.Decimal `json:"otrosGastos"`

	FondoNacional decimal.Decimal `json:"fondoNacional"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpense  decimal.Decimal `json:"totalExpense"`
	MonthBalance  decimal.Decimal `json:"monthBalance"`

	DepositReference string     `json:"depositReference"`
	DepositDate      *time.Time `json:"depositDate,omitempty"`

	Status          domain.ReportStatus `json:"status"`
	EnteredBy       string              `json:"enteredBy"`
	ApprovedBy      *string             `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time          `json:"approvedAt,omitempty"`
	RejectionReason *string             `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
}

// ToReportResponse maps a domain report to its API shape.
func ToReportResponse(r *domain.MonthlyReport) ReportResponse {
	return ReportResponse{
		ReportID:             r.ReportID,
		ChurchID:             r.ChurchID,
		Month:                r.Month,
		Year:                 r.Year,
		Diezmos:              r.Diezmos,
		Ofrendas:             r.Ofrendas,
		OtrosIngresos:        r.OtrosIngresos,
		HonorariosPastorales: r.HonorariosPastorales,
		GastosOperativos:     r.GastosOperativos,
		OtrosGastos:          r.OtrosGastos,
		FondoNacional:        r.FondoNacional,
		TotalIncome:          r.TotalIncome,
		TotalExpense:         r.TotalExpense,
		MonthBalance:         r.MonthBalance,
		DepositReference:     r.DepositReference,
		DepositDate:          r.DepositDate,
		Status:               r.Status,
		EnteredBy:            r.EnteredBy,
		ApprovedBy:           r.ApprovedBy,
		ApprovedAt:           r.ApprovedAt,
		RejectionReason:      r.RejectionReason,
		CreatedAt:            r.CreatedAt,
	}
}

// ListReportsParams filters report listings.
type ListReportsParams struct {
	ChurchID *string
	Month    *int
	Year     *int
	Status   *domain.ReportStatus
}
