package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ipupy/tesoreria_backend/internal/apperrors"
	"github.com/ipupy/tesoreria_backend/internal/core/domain"
	portsrepo "github.com/ipupy/tesoreria_backend/internal/core/ports/repositories"
	portssvc "github.com/ipupy/tesoreria_backend/internal/core/ports/services"
	"github.com/ipupy/tesoreria_backend/internal/dto"
	"github.com/ipupy/tesoreria_backend/internal/utils"
)

var ErrNationalFundMissing = errors.New("national fund is not provisioned")

// ledgerService converts approved reports into posting rows and drives the
// monthly ledger open/close/reconcile lifecycle.
type ledgerService struct {
	BaseService
	fundRepo   portsrepo.FundRepositoryFacade
	ledgerRepo portsrepo.LedgerRepositoryFacade
	txnRepo    portsrepo.TransactionRepositoryFacade
}

// NewLedgerService creates a new LedgerSvcFacade.
func NewLedgerService(fundRepo portsrepo.FundRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade, authorizer portssvc.AuthorizerSvc) portssvc.LedgerSvcFacade {
	return &ledgerService{
		BaseService: BaseService{Authorizer: authorizer},
		fundRepo:    fundRepo,
		ledgerRepo:  ledgerRepo,
		txnRepo:     txnRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// BuildReportPostings computes the per-fund transactions and their matched
// debit/credit entries for a report without persisting anything. One line
// goes to the national fund for the fondo nacional share, plus one per
// designated fund allocation. Running balances are left zero here; the
// posting repository computes them under the fund row locks.
func (s *ledgerService) BuildReportPostings(ctx context.Context, report *domain.MonthlyReport) ([]domain.Transaction, []domain.AccountingEntry, error) {
	report.RecomputeTotals()

	nationalFund, err := s.fundRepo.FindFundByName(ctx, domain.WellKnownFundNacional)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrInternal, ErrNationalFundMissing)
		}
		return nil, nil, err
	}

	now := time.Now().UTC()
	var txns []domain.Transaction
	var entries []domain.AccountingEntry

	addPosting := func(fundID, concept, creditAccount string, amount decimal.Decimal) {
		txnID := uuid.NewString()
		txns = append(txns, domain.Transaction{
			TransactionID:   txnID,
			FundID:          fundID,
			ChurchID:        &report.ChurchID,
			ReportID:        &report.ReportID,
			Concept:         concept,
			AmountIn:        amount,
			AmountOut:       decimal.Zero,
			TransactionDate: now,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     report.EnteredBy,
				LastUpdatedAt: now,
				LastUpdatedBy: report.EnteredBy,
			},
		})
		audit := domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     report.EnteredBy,
			LastUpdatedAt: now,
			LastUpdatedBy: report.EnteredBy,
		}
		entries = append(entries,
			domain.AccountingEntry{
				EntryID:       uuid.NewString(),
				TransactionID: txnID,
				AccountCode:   domain.AccountCodeCash,
				Side:          domain.Debit,
				Amount:        amount,
				Description:   concept,
				EntryDate:     now,
				AuditFields:   audit,
			},
			domain.AccountingEntry{
				EntryID:       uuid.NewString(),
				TransactionID: txnID,
				AccountCode:   creditAccount,
				Side:          domain.Credit,
				Amount:        amount,
				Description:   concept,
				EntryDate:     now,
				AuditFields:   audit,
			},
		)
	}

	if report.FondoNacional.IsPositive() {
		concept := fmt.Sprintf("Fondo nacional %02d/%d", report.Month, report.Year)
		addPosting(nationalFund.FundID, concept, domain.AccountCodeFondoNacional, report.FondoNacional)
	}
	for _, alloc := range report.Allocations {
		fund, err := s.fundRepo.FindFundByID(ctx, alloc.FundID)
		if err != nil {
			return nil, nil, err
		}
		if !fund.IsActive {
			return nil, nil, fmt.Errorf("%w: fund %s is deactivated", apperrors.ErrValidation, alloc.FundID)
		}
		concept := fmt.Sprintf("Ofrenda designada %s %02d/%d", fund.Name, report.Month, report.Year)
		addPosting(fund.FundID, concept, domain.AccountCodeDesignatedFund, alloc.Amount)
	}

	return txns, entries, nil
}

// OpenLedger opens the period ledger for a church, or the national ledger
// when no church is given. Opening balance carries over from the prior
// period's closing balance.
func (s *ledgerService) OpenLedger(ctx context.Context, principalID string, req dto.OpenLedgerRequest) (*domain.MonthlyLedger, error) {
	scope, err := s.Authorizer.Authorize(ctx, principalID, domain.ResourceLedger, domain.ActionOpen, domain.AuthzTarget{ChurchID: req.ChurchID})
	if err != nil {
		return nil, err
	}
	if _, _, err := utils.PeriodRange(req.Month, req.Year); err != nil {
		return nil, err
	}

	opening := decimal.Zero
	prevMonth, prevYear := utils.PreviousPeriod(req.Month, req.Year)
	prev, err := s.ledgerRepo.FindLedgerByPeriod(ctx, req.ChurchID, prevMonth, prevYear)
	switch {
	case err == nil:
		opening = prev.ClosingBalance
	case errors.Is(err, apperrors.ErrNotFound):
		// first ledger for this scope, opens at zero
	default:
		return nil, err
	}

	now := time.Now().UTC()
	ledger := domain.MonthlyLedger{
		LedgerID:       uuid.NewString(),
		ChurchID:       req.ChurchID,
		Month:          req.Month,
		Year:           req.Year,
		Status:         domain.LedgerOpen,
		OpeningBalance: opening,
		TotalIncome:    decimal.Zero,
		TotalExpense:   decimal.Zero,
		ClosingBalance: opening,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     scope.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: scope.UserID,
		},
	}
	if err := s.ledgerRepo.SaveLedger(ctx, ledger); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: ledger for period %d/%d already exists", apperrors.ErrConflict, req.Month, req.Year)
		}
		s.LogError(ctx, err, "failed to open ledger", "month", req.Month, "year", req.Year)
		return nil, err
	}
	s.LogInfo(ctx, "ledger opened", "ledger_id", ledger.LedgerID, "month", req.Month, "year", req.Year)
	return &ledger, nil
}

// CloseLedger recomputes the period totals from posted transactions and
// writes the closing balance. Only open ledgers can close.
func (s *ledgerService) CloseLedger(ctx context.Context, principalID string, ledgerID string) (*domain.MonthlyLedger, error) {
	ledger, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	scope, err := s.Authorizer.Authorize(ctx, principalID, domain.ResourceLedger, domain.ActionClose, domain.AuthzTarget{ChurchID: ledger.ChurchID})
	if err != nil {
		return nil, err
	}
	if ledger.Status != domain.LedgerOpen {
		return nil, fmt.Errorf("%w: cannot close a %s ledger", apperrors.ErrInvalidState, ledger.Status)
	}

	start, end, err := utils.PeriodRange(ledger.Month, ledger.Year)
	if err != nil {
		return nil, err
	}
	totals, err := s.txnRepo.SumPeriodTotals(ctx, ledger.ChurchID, start, end)
	if err != nil {
		s.LogError(ctx, err, "failed to sum period totals", "ledger_id", ledgerID)
		return nil, err
	}

	now := time.Now().UTC()
	ledger.TotalIncome = totals.AmountIn
	ledger.TotalExpense = totals.AmountOut
	ledger.ClosingBalance = ledger.OpeningBalance.Add(totals.AmountIn).Sub(totals.AmountOut)
	ledger.Status = domain.LedgerClosed
	ledger.ClosedAt = &now
	ledger.LastUpdatedAt = now
	ledger.LastUpdatedBy = scope.UserID

	if err := s.ledgerRepo.UpdateLedger(ctx, *ledger, domain.LedgerOpen); err != nil {
		s.LogError(ctx, err, "failed to close ledger", "ledger_id", ledgerID)
		return nil, err
	}
	s.LogInfo(ctx, "ledger closed", "ledger_id", ledgerID, "closing_balance", ledger.ClosingBalance.String())
	return ledger, nil
}

// ReconcileLedger verifies a closed ledger against independently recomputed
// totals and the period trial balance. Any discrepancy surfaces as a
// ReconciliationMismatchError and leaves the ledger closed.
func (s *ledgerService) ReconcileLedger(ctx context.Context, principalID string, ledgerID string) (*domain.MonthlyLedger, error) {
	ledger, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	scope, err := s.Authorizer.Authorize(ctx, principalID, domain.ResourceLedger, domain.ActionReconcile, domain.AuthzTarget{ChurchID: ledger.ChurchID})
	if err != nil {
		return nil, err
	}
	if ledger.Status != domain.LedgerClosed {
		return nil, fmt.Errorf("%w: cannot reconcile a %s ledger", apperrors.ErrInvalidState, ledger.Status)
	}

	start, end, err := utils.PeriodRange(ledger.Month, ledger.Year)
	if err != nil {
		return nil, err
	}
	totals, err := s.txnRepo.SumPeriodTotals(ctx, ledger.ChurchID, start, end)
	if err != nil {
		return nil, err
	}
	// Narrow the trial balance to the ledger's own church so a lopsided
	// posting there cannot hide behind globally balanced sums.
	trial, err := s.txnRepo.TrialBalance(ctx, ledger.ChurchID, start, end)
	if err != nil {
		return nil, err
	}

	expectedClosing := ledger.OpeningBalance.Add(totals.AmountIn).Sub(totals.AmountOut)
	discrepancy := ledger.ClosingBalance.Sub(expectedClosing)
	gap := trial.Debits.Sub(trial.Credits)
	if !discrepancy.IsZero() || !gap.IsZero() {
		s.LogError(ctx, apperrors.ErrReconciliationMismatch, "ledger reconciliation failed",
			"ledger_id", ledgerID,
			"balance_discrepancy", discrepancy.String(),
			"trial_balance_gap", gap.String())
		return nil, &apperrors.ReconciliationMismatchError{
			LedgerID:           ledgerID,
			BalanceDiscrepancy: discrepancy,
			TrialBalanceGap:    gap,
		}
	}

	now := time.Now().UTC()
	ledger.Status = domain.LedgerReconciled
	ledger.ReconciledAt = &now
	ledger.LastUpdatedAt = now
	ledger.LastUpdatedBy = scope.UserID

	if err := s.ledgerRepo.UpdateLedger(ctx, *ledger, domain.LedgerClosed); err != nil {
		s.LogError(ctx, err, "failed to reconcile ledger", "ledger_id", ledgerID)
		return nil, err
	}
	s.LogInfo(ctx, "ledger reconciled", "ledger_id", ledgerID)
	return ledger, nil
}

func (s *ledgerService) GetLedger(ctx context.Context, principalID string, churchID *string, month, year int) (*domain.MonthlyLedger, error) {
	if _, err := s.Authorizer.Authorize(ctx, principalID, domain.ResourceLedger, domain.ActionRead, domain.AuthzTarget{ChurchID: churchID}); err != nil {
		return nil, err
	}
	if _, _, err := utils.PeriodRange(month, year); err != nil {
		return nil, err
	}
	return s.ledgerRepo.FindLedgerByPeriod(ctx, churchID, month, year)
}

func (s *ledgerService) GetTrialBalance(ctx context.Context, principalID string, month, year int) (*domain.TrialBalance, error) {
	if _, err := s.Authorizer.Authorize(ctx, principalID, domain.ResourceLedger, domain.ActionRead, domain.AuthzTarget{}); err != nil {
		return nil, err
	}
	start, end, err := utils.PeriodRange(month, year)
	if err != nil {
		return nil, err
	}
	trial, err := s.txnRepo.TrialBalance(ctx, nil, start, end)
	if err != nil {
		return nil, err
	}
	return &trial, nil
}
