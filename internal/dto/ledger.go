package dto

import (
	"time"

	"github.com/ipupy/tesoreria_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenLedgerRequest opens the monthly ledger for a church, or the national
// ledger when churchID is omitted.
type OpenLedgerRequest struct {
	ChurchID *string `json:"churchID"`
	Month    int     `json:"month" binding:"required,min=1,max=12"`
	Year     int     `json:"year" binding:"required,min=2000,max=2100"`
}

// LedgerResponse is the API shape of a monthly ledger.
type LedgerResponse struct {
	LedgerID       string              `json:"ledgerID"`
	ChurchID       *string             `json:"churchID,omitempty"`
	Month          int                 `json:"month"`
	Year           int                 `json:"year"`
	Status         domain.LedgerStatus `json:"status"`
	OpeningBalance decimal.Decimal     `json:"openingBalance"`
	TotalIncome    decimal.Decimal     `json:"totalIncome"`
	TotalExpense   decimal.Decimal     `json:"totalExpense"`
	ClosingBalance decimal.Decimal     `json:"closingBalance"`
	ClosedAt       *time.Time          `json:"closedAt,omitempty"`
	ReconciledAt   *time.Time          `json:"reconciledAt,omitempty"`
}

// ToLedgerResponse maps a domain ledger to its API shape.
func ToLedgerResponse(l *domain.MonthlyLedger) LedgerResponse {
	return LedgerResponse{
		LedgerID:       l.LedgerID,
		ChurchID:       l.ChurchID,
		Month:          l.Month,
		Year:           l.Year,
		Status:         l.Status,
		OpeningBalance: l.OpeningBalance,
		TotalIncome:    l.TotalIncome,
		TotalExpense:   l.TotalExpense,
		ClosingBalance: l.ClosingBalance,
		ClosedAt:       l.ClosedAt,
		ReconciledAt:   l.ReconciledAt,
	}
}

// TrialBalanceResponse carries the debit/credit sums for a period.
type TrialBalanceResponse struct {
	Month    int             `json:"month"`
	Year     int             `json:"year"`
	Debits   decimal.Decimal `json:"debits"`
	Credits  decimal.Decimal `json:"credits"`
	Balanced bool            `json:"balanced"`
}
