package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ipupy/tesoreria_backend/internal/apperrors"
	"github.com/ipupy/tesoreria_backend/internal/core/domain"
	portsrepo "github.com/ipupy/tesoreria_backend/internal/core/ports/repositories"
	portssvc "github.com/ipupy/tesoreria_backend/internal/core/ports/services"
	"github.com/ipupy/tesoreria_backend/internal/core/services"
	"github.com/ipupy/tesoreria_backend/internal/dto"
)

type SummaryServiceTestSuite struct {
	suite.Suite
	mockUserRepo    *MockUserRepository
	mockReportRepo  *MockReportRepository
	mockExpenseRepo *MockExpenseRepository
	mockTxnRepo     *MockTransactionRepository
	mockLedgerRepo  *MockLedgerRepository
	summaryService  portssvc.SummarySvc
	ctx             context.Context

	churchID    string
	treasurerID string
}

func (s *SummaryServiceTestSuite) SetupTest() {
	s.mockUserRepo = new(MockUserRepository)
	s.mockReportRepo = new(MockReportRepository)
	s.mockExpenseRepo = new(MockExpenseRepository)
	s.mockTxnRepo = new(MockTransactionRepository)
	s.mockLedgerRepo = new(MockLedgerRepository)

	authorizer := services.NewAuthorizerService(s.mockUserRepo)
	s.summaryService = services.NewSummaryService(s.mockReportRepo, s.mockExpenseRepo, s.mockTxnRepo, s.mockLedgerRepo, authorizer)
	s.ctx = context.Background()

	s.churchID = uuid.NewString()
	s.treasurerID = uuid.NewString()

	churchID := s.churchID
	s.mockUserRepo.On("FindUserByID", mock.Anything, s.treasurerID).Return(&domain.User{
		UserID:   s.treasurerID,
		Role:     domain.RoleTreasurer,
		ChurchID: &churchID,
		IsActive: true,
	}, nil)
}

func (s *SummaryServiceTestSuite) TestGetSummary_ChurchScopePinned() {
	month, year := 3, 2025

	matchOwnChurch := mock.MatchedBy(func(churchID *string) bool {
		return churchID != nil && *churchID == s.churchID
	})
	s.mockReportRepo.On("SumReportTotals", mock.Anything, matchOwnChurch, month, year).Return(dto.IncomeSummary{
		TotalIncome: decimal.RequireFromString("150000"),
		ReportCount: 1,
	}, nil).Once()
	s.mockExpenseRepo.On("ListExpenses", mock.Anything, matchOwnChurch, mock.Anything, mock.Anything).Return([]domain.ExpenseRecord{
		{ExpenseID: uuid.NewString(), Amount: decimal.RequireFromString("30000")},
		{ExpenseID: uuid.NewString(), Amount: decimal.RequireFromString("20000")},
	}, nil).Once()
	s.mockTxnRepo.On("SumPeriodTotals", mock.Anything, matchOwnChurch, mock.Anything, mock.Anything).Return(portsrepo.PeriodTotals{
		AmountIn:  decimal.RequireFromString("150000"),
		AmountOut: decimal.RequireFromString("50000"),
		Count:     7,
	}, nil).Once()
	s.mockLedgerRepo.On("FindLedgerByPeriod", mock.Anything, matchOwnChurch, month, year).Return(&domain.MonthlyLedger{
		LedgerID: uuid.NewString(),
		Status:   domain.LedgerOpen,
	}, nil).Once()

	// no church filter given: the caller defaults to their own church
	summary, err := s.summaryService.GetSummary(s.ctx, s.treasurerID, dto.SummaryParams{
		Month: &month,
		Year:  &year,
	})

	s.Require().NoError(err)
	s.Equal(domain.LedgerOpen, summary.LedgerStatus)
	s.Equal(2, summary.Expenses.RecordCount)
	s.True(summary.Expenses.TotalExpense.Equal(decimal.RequireFromString("50000")))
	s.True(summary.NetResult.Equal(decimal.RequireFromString("100000")))
	s.Equal(7, summary.Movements.Count)
	s.mockReportRepo.AssertExpectations(s.T())
}

func (s *SummaryServiceTestSuite) TestGetSummary_CrossChurchForbidden() {
	otherChurchID := uuid.NewString()
	month, year := 3, 2025

	_, err := s.summaryService.GetSummary(s.ctx, s.treasurerID, dto.SummaryParams{
		ChurchID: &otherChurchID,
		Month:    &month,
		Year:     &year,
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrForbidden)
	s.mockReportRepo.AssertNotCalled(s.T(), "SumReportTotals", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.mockExpenseRepo.AssertNotCalled(s.T(), "ListExpenses", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *SummaryServiceTestSuite) TestGetSummary_MissingLedgerReportsNotCreated() {
	month, year := 3, 2025
	s.mockReportRepo.On("SumReportTotals", mock.Anything, mock.Anything, month, year).Return(dto.IncomeSummary{}, nil).Once()
	s.mockExpenseRepo.On("ListExpenses", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]domain.ExpenseRecord{}, nil).Once()
	s.mockTxnRepo.On("SumPeriodTotals", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(portsrepo.PeriodTotals{}, nil).Once()
	s.mockLedgerRepo.On("FindLedgerByPeriod", mock.Anything, mock.Anything, month, year).Return(nil, apperrors.ErrNotFound).Once()

	summary, err := s.summaryService.GetSummary(s.ctx, s.treasurerID, dto.SummaryParams{Month: &month, Year: &year})

	s.Require().NoError(err)
	s.Equal(domain.LedgerNotCreated, summary.LedgerStatus)
}

func (s *SummaryServiceTestSuite) TestGetSummary_ChurchlessScopedCallerForbidden() {
	churchless := uuid.NewString()
	s.mockUserRepo.On("FindUserByID", mock.Anything, churchless).Return(&domain.User{
		UserID:   churchless,
		Role:     domain.RolePastor,
		IsActive: true,
	}, nil).Once()

	_, err := s.summaryService.GetSummary(s.ctx, churchless, dto.SummaryParams{})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrForbidden)
	s.mockReportRepo.AssertNotCalled(s.T(), "SumReportTotals", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSummaryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SummaryServiceTestSuite))
}
