package services

import (
	"context"
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

// expenseService records approved expenses. The expense row and its ledger
// effect are committed by the posting repository in one database
// transaction, so an expense never exists without its amount-out line.
type expenseService struct {
	BaseService
	expenseRepo  portsrepo.ExpenseRepositoryFacade
	postingRepo  portsrepo.PostingRepository
	fundRepo     portsrepo.FundRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewExpenseService creates a new ExpenseSvcFacade.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, postingRepo portsrepo.PostingRepository, fundRepo portsrepo.FundRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade, authorizer portssvc.AuthorizerSvc) portssvc.ExpenseSvcFacade {
	return &expenseService{
		BaseService:  BaseService{Authorizer: authorizer},
		expenseRepo:  expenseRepo,
		postingRepo:  postingRepo,
		fundRepo:     fundRepo,
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) CreateExpense(ctx context.Context, principalID string, req dto.CreateExpenseRequest) (*domain.ExpenseRecord, error) {
	scope, err := s.Authorizer.ResolveScope(ctx, principalID)
	if err != nil {
		return nil, err
	}
	// Church-scoped callers record against their own congregation.
	if req.ChurchID == nil && scope.Role.IsChurchScoped() {
		req.ChurchID = scope.ChurchID
	}
	if !s.Authorizer.Can(scope, domain.ResourceExpense, domain.ActionCreate, domain.AuthzTarget{ChurchID: req.ChurchID, FundID: &req.FundID}) {
		return nil, forbidden(domain.ResourceExpense, domain.ActionCreate, scope.Role)
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}
	fund, err := s.fundRepo.FindFundByID(ctx, req.FundID)
	if err != nil {
		return nil, err
	}
	if !fund.IsActive {
		return nil, fmt.Errorf("%w: fund %s is deactivated", apperrors.ErrValidation, req.FundID)
	}
	category, err := s.categoryRepo.FindCategoryByID(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if category.Kind != domain.CategoryExpense || !category.IsActive {
		return nil, fmt.Errorf("%w: category %s is not an active expense category", apperrors.ErrValidation, req.CategoryID)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     scope.UserID,
		LastUpdatedAt: now,
		LastUpdatedBy: scope.UserID,
	}
	expense := domain.ExpenseRecord{
		ExpenseID:   uuid.NewString(),
		FundID:      req.FundID,
		ChurchID:    req.ChurchID,
		CategoryID:  req.CategoryID,
		Concept:     req.Concept,
		Provider:    req.Provider,
		Amount:      req.Amount,
		Date:        req.Date,
		ApprovedBy:  scope.UserID,
		AuditFields: audit,
	}

	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		FundID:          req.FundID,
		ChurchID:        req.ChurchID,
		ExpenseID:       &expense.ExpenseID,
		Concept:         req.Concept,
		AmountIn:        decimal.Zero,
		AmountOut:       req.Amount,
		TransactionDate: req.Date,
		AuditFields:     audit,
	}
	entries := []domain.AccountingEntry{
		{
			EntryID:       uuid.NewString(),
			TransactionID: txn.TransactionID,
			AccountCode:   domain.AccountCodeExpense,
			Side:          domain.Debit,
			Amount:        req.Amount,
			Description:   req.Concept,
			EntryDate:     now,
			AuditFields:   audit,
		},
		{
			EntryID:       uuid.NewString(),
			TransactionID: txn.TransactionID,
			AccountCode:   domain.AccountCodeCash,
			Side:          domain.Credit,
			Amount:        req.Amount,
			Description:   req.Concept,
			EntryDate:     now,
			AuditFields:   audit,
		},
	}

	if _, err := s.postingRepo.PostExpense(ctx, expense, txn, entries); err != nil {
		s.LogError(ctx, err, "expense posting failed", "fund_id", req.FundID)
		return nil, err
	}
	s.LogInfo(ctx, "expense recorded", "expense_id", expense.ExpenseID, "fund_id", req.FundID)
	return &expense, nil
}

func (s *expenseService) GetExpense(ctx context.Context, principalID string, expenseID string) (*domain.ExpenseRecord, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Authorizer.Authorize(ctx, principalID, domain.ResourceExpense, domain.ActionRead, domain.AuthzTarget{ChurchID: expense.ChurchID, FundID: &expense.FundID}); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, principalID string, churchID *string, month, year int) ([]domain.ExpenseRecord, error) {
	scope, err := s.Authorizer.ResolveScope(ctx, principalID)
	if err != nil {
		return nil, err
	}
	permScope, ok := domain.Permission(scope.Role, domain.ResourceExpense, domain.ActionRead)
	if !ok {
		return nil, forbidden(domain.ResourceExpense, domain.ActionRead, scope.Role)
	}
	if permScope == domain.ScopeOwnChurch {
		if scope.ChurchID == nil {
			return []domain.ExpenseRecord{}, nil
		}
		if churchID != nil && *churchID != *scope.ChurchID {
			return nil, forbidden(domain.ResourceExpense, domain.ActionRead, scope.Role)
		}
		churchID = scope.ChurchID
	}

	start, end, err := utils.PeriodRange(month, year)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ListExpenses(ctx, churchID, start, end)
	if err != nil {
		return nil, err
	}
	if permScope == domain.ScopeAssignedFunds {
		assigned := make([]domain.ExpenseRecord, 0, len(expenses))
		for _, e := range expenses {
			if scope.HasFund(e.FundID) {
				assigned = append(assigned, e)
			}
		}
		return assigned, nil
	}
	return expenses, nil
}
