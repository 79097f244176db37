package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ipupy/tesoreria_backend/internal/apperrors"
	"github.com/ipupy/tesoreria_backend/internal/core/domain"
	portssvc "github.com/ipupy/tesoreria_backend/internal/core/ports/services"
	"github.com/ipupy/tesoreria_backend/internal/core/services"
	"github.com/ipupy/tesoreria_backend/internal/dto"
)

type ExpenseServiceTestSuite struct {
	suite.Suite
	mockUserRepo     *MockUserRepository
	mockExpenseRepo  *MockExpenseRepository
	mockPostingRepo  *MockPostingRepository
	mockFundRepo     *MockFundRepository
	mockCategoryRepo *MockCategoryRepository
	expenseService   portssvc.ExpenseSvcFacade
	ctx              context.Context

	churchID    string
	fundID      string
	categoryID  string
	treasurerID string
	directorID  string
}

func (s *ExpenseServiceTestSuite) SetupTest() {
	s.mockUserRepo = new(MockUserRepository)
	s.mockExpenseRepo = new(MockExpenseRepository)
	s.mockPostingRepo = new(MockPostingRepository)
	s.mockFundRepo = new(MockFundRepository)
	s.mockCategoryRepo = new(MockCategoryRepository)

	authorizer := services.NewAuthorizerService(s.mockUserRepo)
	s.expenseService = services.NewExpenseService(s.mockExpenseRepo, s.mockPostingRepo, s.mockFundRepo, s.mockCategoryRepo, authorizer)
	s.ctx = context.Background()

	s.churchID = uuid.NewString()
	s.fundID = uuid.NewString()
	s.categoryID = uuid.NewString()
	s.treasurerID = uuid.NewString()
	s.directorID = uuid.NewString()
}

func (s *ExpenseServiceTestSuite) givenTreasurer() {
	churchID := s.churchID
	s.mockUserRepo.On("FindUserByID", mock.Anything, s.treasurerID).Return(&domain.User{
		UserID:   s.treasurerID,
		Role:     domain.RoleTreasurer,
		ChurchID: &churchID,
		IsActive: true,
	}, nil)
}

func (s *ExpenseServiceTestSuite) givenFundDirector(fundIDs ...string) {
	s.mockUserRepo.On("FindUserByID", mock.Anything, s.directorID).Return(&domain.User{
		UserID:   s.directorID,
		Role:     domain.RoleFundDirector,
		IsActive: true,
	}, nil)
	s.mockUserRepo.On("FindFundAssignments", mock.Anything, s.directorID).Return(fundIDs, nil)
}

func (s *ExpenseServiceTestSuite) givenActiveFundAndCategory() {
	s.mockFundRepo.On("FindFundByID", mock.Anything, s.fundID).Return(&domain.Fund{
		FundID:   s.fundID,
		Name:     "Misiones",
		IsActive: true,
	}, nil)
	s.mockCategoryRepo.On("FindCategoryByID", mock.Anything, s.categoryID).Return(&domain.TransactionCategory{
		CategoryID: s.categoryID,
		Name:       "Servicios",
		Kind:       domain.CategoryExpense,
		IsActive:   true,
	}, nil)
}

func (s *ExpenseServiceTestSuite) createRequest() dto.CreateExpenseRequest {
	churchID := s.churchID
	return dto.CreateExpenseRequest{
		FundID:     s.fundID,
		ChurchID:   &churchID,
		CategoryID: s.categoryID,
		Concept:    "Factura de electricidad",
		Provider:   "ANDE",
		Amount:     decimal.RequireFromString("45000"),
		Date:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_PostsDebitCreditPair() {
	s.givenTreasurer()
	s.givenActiveFundAndCategory()
	req := s.createRequest()

	s.mockPostingRepo.On("PostExpense", mock.Anything,
		mock.MatchedBy(func(e domain.ExpenseRecord) bool {
			return e.FundID == s.fundID && e.Amount.Equal(req.Amount) && e.ApprovedBy == s.treasurerID
		}),
		mock.MatchedBy(func(t domain.Transaction) bool {
			return t.AmountOut.Equal(req.Amount) && t.AmountIn.IsZero() && t.ExpenseID != nil
		}),
		mock.MatchedBy(func(entries []domain.AccountingEntry) bool {
			if len(entries) != 2 {
				return false
			}
			debit, credit := entries[0], entries[1]
			return debit.Side == domain.Debit && debit.AccountCode == domain.AccountCodeExpense &&
				credit.Side == domain.Credit && credit.AccountCode == domain.AccountCodeCash &&
				debit.Amount.Equal(credit.Amount)
		}),
	).Return(&domain.Transaction{TransactionID: uuid.NewString()}, nil).Once()

	expense, err := s.expenseService.CreateExpense(s.ctx, s.treasurerID, req)

	s.Require().NoError(err)
	s.Equal(s.fundID, expense.FundID)
	s.Equal(s.treasurerID, expense.ApprovedBy)
	s.mockPostingRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_RejectsNonPositiveAmount() {
	s.givenTreasurer()
	req := s.createRequest()
	req.Amount = decimal.Zero

	_, err := s.expenseService.CreateExpense(s.ctx, s.treasurerID, req)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockPostingRepo.AssertNotCalled(s.T(), "PostExpense", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_RejectsInactiveFund() {
	s.givenTreasurer()
	req := s.createRequest()
	s.mockFundRepo.On("FindFundByID", mock.Anything, s.fundID).Return(&domain.Fund{
		FundID:   s.fundID,
		IsActive: false,
	}, nil).Once()

	_, err := s.expenseService.CreateExpense(s.ctx, s.treasurerID, req)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_RejectsIncomeCategory() {
	s.givenTreasurer()
	req := s.createRequest()
	s.mockFundRepo.On("FindFundByID", mock.Anything, s.fundID).Return(&domain.Fund{
		FundID:   s.fundID,
		IsActive: true,
	}, nil).Once()
	s.mockCategoryRepo.On("FindCategoryByID", mock.Anything, s.categoryID).Return(&domain.TransactionCategory{
		CategoryID: s.categoryID,
		Name:       "Diezmos",
		Kind:       domain.CategoryIncome,
		IsActive:   true,
	}, nil).Once()

	_, err := s.expenseService.CreateExpense(s.ctx, s.treasurerID, req)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockPostingRepo.AssertNotCalled(s.T(), "PostExpense", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_DirectorLimitedToAssignedFunds() {
	s.givenFundDirector(uuid.NewString()) // assigned elsewhere
	req := s.createRequest()
	req.ChurchID = nil

	_, err := s.expenseService.CreateExpense(s.ctx, s.directorID, req)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_DirectorOnAssignedFund() {
	s.givenFundDirector(s.fundID)
	s.givenActiveFundAndCategory()
	req := s.createRequest()
	req.ChurchID = nil

	s.mockPostingRepo.On("PostExpense", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.Transaction{TransactionID: uuid.NewString()}, nil).Once()

	expense, err := s.expenseService.CreateExpense(s.ctx, s.directorID, req)

	s.Require().NoError(err)
	s.Equal(s.directorID, expense.ApprovedBy)
	s.mockPostingRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestListExpenses_DirectorFilteredToAssignedFunds() {
	s.givenFundDirector(s.fundID)
	otherFundID := uuid.NewString()
	s.mockExpenseRepo.On("ListExpenses", mock.Anything, (*string)(nil), mock.Anything, mock.Anything).Return([]domain.ExpenseRecord{
		{ExpenseID: uuid.NewString(), FundID: s.fundID},
		{ExpenseID: uuid.NewString(), FundID: otherFundID},
	}, nil).Once()

	expenses, err := s.expenseService.ListExpenses(s.ctx, s.directorID, nil, 3, 2025)

	s.Require().NoError(err)
	s.Require().Len(expenses, 1)
	s.Equal(s.fundID, expenses[0].FundID)
}

func (s *ExpenseServiceTestSuite) TestListExpenses_ChurchScopePinned() {
	s.givenTreasurer()
	s.mockExpenseRepo.On("ListExpenses", mock.Anything, mock.MatchedBy(func(churchID *string) bool {
		return churchID != nil && *churchID == s.churchID
	}), mock.Anything, mock.Anything).Return([]domain.ExpenseRecord{}, nil).Once()

	// no church filter given: the caller defaults to their own church
	_, err := s.expenseService.ListExpenses(s.ctx, s.treasurerID, nil, 3, 2025)

	s.Require().NoError(err)
	s.mockExpenseRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestListExpenses_CrossChurchForbidden() {
	s.givenTreasurer()
	requested := uuid.NewString()

	_, err := s.expenseService.ListExpenses(s.ctx, s.treasurerID, &requested, 3, 2025)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrForbidden)
	s.mockExpenseRepo.AssertNotCalled(s.T(), "ListExpenses", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
