package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ipupy/tesoreria_backend/internal/apperrors"
	"github.com/ipupy/tesoreria_backend/internal/core/domain"
	portsrepo "github.com/ipupy/tesoreria_backend/internal/core/ports/repositories"
	portssvc "github.com/ipupy/tesoreria_backend/internal/core/ports/services"
	"github.com/ipupy/tesoreria_backend/internal/dto"
	"github.com/ipupy/tesoreria_backend/internal/utils"
)

// summaryService is the read-only aggregation facade. Every query is
// scope-filtered before aggregation, so out-of-scope records never reach a
// total.
type summaryService struct {
	BaseService
	reportRepo  portsrepo.ReportRepositoryFacade
	expenseRepo portsrepo.ExpenseRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
}

// NewSummaryService creates a new SummarySvc.
func NewSummaryService(reportRepo portsrepo.ReportRepositoryFacade, expenseRepo portsrepo.ExpenseRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, authorizer portssvc.AuthorizerSvc) portssvc.SummarySvc {
	return &summaryService{
		BaseService: BaseService{Authorizer: authorizer},
		reportRepo:  reportRepo,
		expenseRepo: expenseRepo,
		txnRepo:     txnRepo,
		ledgerRepo:  ledgerRepo,
	}
}

var _ portssvc.SummarySvc = (*summaryService)(nil)

func (s *summaryService) GetSummary(ctx context.Context, principalID string, params dto.SummaryParams) (*dto.SummaryResponse, error) {
	scope, err := s.Authorizer.ResolveScope(ctx, principalID)
	if err != nil {
		return nil, err
	}
	permScope, ok := domain.Permission(scope.Role, domain.ResourceSummary, domain.ActionRead)
	if !ok {
		return nil, forbidden(domain.ResourceSummary, domain.ActionRead, scope.Role)
	}
	if permScope == domain.ScopeOwnChurch {
		if scope.ChurchID == nil {
			return nil, forbidden(domain.ResourceSummary, domain.ActionRead, scope.Role)
		}
		// Asking for another congregation is a denial, not a redirect.
		if params.ChurchID != nil && *params.ChurchID != *scope.ChurchID {
			return nil, forbidden(domain.ResourceSummary, domain.ActionRead, scope.Role)
		}
		params.ChurchID = scope.ChurchID
	}

	// Default to the current period.
	now := time.Now().UTC()
	month, year := int(now.Month()), now.Year()
	if params.Month != nil {
		month = *params.Month
	}
	if params.Year != nil {
		year = *params.Year
	}
	start, end, err := utils.PeriodRange(month, year)
	if err != nil {
		return nil, err
	}

	income, err := s.reportRepo.SumReportTotals(ctx, params.ChurchID, month, year)
	if err != nil {
		s.LogError(ctx, err, "failed to sum report totals", "month", month, "year", year)
		return nil, err
	}

	expenses, err := s.expenseRepo.ListExpenses(ctx, params.ChurchID, start, end)
	if err != nil {
		return nil, err
	}
	expenseSummary := dto.ExpenseSummary{TotalExpense: decimal.Zero}
	for _, e := range expenses {
		expenseSummary.TotalExpense = expenseSummary.TotalExpense.Add(e.Amount)
		expenseSummary.RecordCount++
	}

	totals, err := s.txnRepo.SumPeriodTotals(ctx, params.ChurchID, start, end)
	if err != nil {
		return nil, err
	}

	ledgerStatus := domain.LedgerNotCreated
	ledger, err := s.ledgerRepo.FindLedgerByPeriod(ctx, params.ChurchID, month, year)
	switch {
	case err == nil:
		ledgerStatus = ledger.Status
	case errors.Is(err, apperrors.ErrNotFound):
		// no ledger opened for the period yet
	default:
		return nil, err
	}

	return &dto.SummaryResponse{
		Income:   income,
		Expenses: expenseSummary,
		Movements: dto.MovementSummary{
			AmountIn:  totals.AmountIn,
			AmountOut: totals.AmountOut,
			Count:     totals.Count,
		},
		LedgerStatus: ledgerStatus,
		NetResult:    income.TotalIncome.Sub(expenseSummary.TotalExpense),
	}, nil
}
