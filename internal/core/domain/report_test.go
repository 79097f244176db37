package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ipupy/tesoreria_backend/internal/core/domain"
)

func TestRecomputeTotals(t *testing.T) {
	report := domain.MonthlyReport{
		Diezmos:              decimal.RequireFromString("100000"),
		Ofrendas:             decimal.RequireFromString("50000"),
		OtrosIngresos:        decimal.RequireFromString("10000"),
		HonorariosPastorales: decimal.RequireFromString("40000"),
		GastosOperativos:     decimal.RequireFromString("15000"),
		OtrosGastos:          decimal.RequireFromString("5000"),
	}

	report.RecomputeTotals()

	assert.True(t, report.FondoNacional.Equal(decimal.RequireFromString("15000")), "fondo nacional is 10%% of diezmos+ofrendas, got %s", report.FondoNacional)
	assert.True(t, report.TotalIncome.Equal(decimal.RequireFromString("160000")))
	assert.True(t, report.TotalExpense.Equal(decimal.RequireFromString("60000")))
	assert.True(t, report.MonthBalance.Equal(decimal.RequireFromString("100000")))
}

func TestRecomputeTotalsRoundsToTwoDecimals(t *testing.T) {
	report := domain.MonthlyReport{
		Diezmos:  decimal.RequireFromString("100.33"),
		Ofrendas: decimal.RequireFromString("50.22"),
	}

	report.RecomputeTotals()

	// 150.55 * 0.10 = 15.055, rounds to 15.06
	assert.True(t, report.FondoNacional.Equal(decimal.RequireFromString("15.06")), "got %s", report.FondoNacional)
}

func TestRecomputeTotalsIsIdempotent(t *testing.T) {
	report := domain.MonthlyReport{
		Diezmos:  decimal.RequireFromString("123456.78"),
		Ofrendas: decimal.RequireFromString("9876.54"),
	}

	report.RecomputeTotals()
	first := report.FondoNacional
	report.RecomputeTotals()

	assert.True(t, report.FondoNacional.Equal(first))
	assert.True(t, report.TotalIncome.Equal(report.Diezmos.Add(report.Ofrendas).Round(2)))
}

func TestAllocationsTotal(t *testing.T) {
	report := domain.MonthlyReport{
		Allocations: []domain.FundAllocation{
			{FundID: "a", Amount: decimal.RequireFromString("1000")},
			{FundID: "b", Amount: decimal.RequireFromString("2500")},
		},
	}

	assert.True(t, report.AllocationsTotal().Equal(decimal.RequireFromString("3500")))
}

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from    domain.ReportStatus
		to      domain.ReportStatus
		allowed bool
	}{
		{domain.ReportDraft, domain.ReportSubmitted, true},
		{domain.ReportDraft, domain.ReportApproved, false},
		{domain.ReportSubmitted, domain.ReportApproved, true},
		{domain.ReportSubmitted, domain.ReportDraft, true}, // rejection
		{domain.ReportSubmitted, domain.ReportProcessed, false},
		{domain.ReportApproved, domain.ReportProcessed, true},
		{domain.ReportApproved, domain.ReportDraft, false},
		{domain.ReportProcessed, domain.ReportApproved, false},
		{domain.ReportProcessed, domain.ReportDraft, false},
	}

	for _, tc := range cases {
		report := domain.MonthlyReport{Status: tc.from}
		assert.Equal(t, tc.allowed, report.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}
