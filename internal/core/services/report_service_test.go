package services_test

import (
	"context"
	"fmt"
	"testing"

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

type ReportServiceTestSuite struct {
	suite.Suite
	mockUserRepo    *MockUserRepository
	mockReportRepo  *MockReportRepository
	mockPostingRepo *MockPostingRepository
	mockFundRepo    *MockFundRepository
	mockLedgerRepo  *MockLedgerRepository
	mockTxnRepo     *MockTransactionRepository
	reportService   portssvc.ReportSvcFacade
	ctx             context.Context

	churchID       string
	otherChurchID  string
	adminID        string
	treasurerID    string
	nationalFundID string
}

func (s *ReportServiceTestSuite) SetupTest() {
	s.mockUserRepo = new(MockUserRepository)
	s.mockReportRepo = new(MockReportRepository)
	s.mockPostingRepo = new(MockPostingRepository)
	s.mockFundRepo = new(MockFundRepository)
	s.mockLedgerRepo = new(MockLedgerRepository)
	s.mockTxnRepo = new(MockTransactionRepository)

	authorizer := services.NewAuthorizerService(s.mockUserRepo)
	ledgerSvc := services.NewLedgerService(s.mockFundRepo, s.mockLedgerRepo, s.mockTxnRepo, authorizer)
	s.reportService = services.NewReportService(s.mockReportRepo, s.mockPostingRepo, ledgerSvc, authorizer)
	s.ctx = context.Background()

	s.churchID = uuid.NewString()
	s.otherChurchID = uuid.NewString()
	s.adminID = uuid.NewString()
	s.treasurerID = uuid.NewString()
	s.nationalFundID = uuid.NewString()
}

func (s *ReportServiceTestSuite) givenAdmin() {
	s.mockUserRepo.On("FindUserByID", mock.Anything, s.adminID).Return(&domain.User{
		UserID:   s.adminID,
		Role:     domain.RoleNationalAdmin,
		IsActive: true,
	}, nil)
}

func (s *ReportServiceTestSuite) givenTreasurer() {
	churchID := s.churchID
	s.mockUserRepo.On("FindUserByID", mock.Anything, s.treasurerID).Return(&domain.User{
		UserID:   s.treasurerID,
		Role:     domain.RoleTreasurer,
		ChurchID: &churchID,
		IsActive: true,
	}, nil)
}

func (s *ReportServiceTestSuite) givenNationalFund() {
	s.mockFundRepo.On("FindFundByName", mock.Anything, domain.WellKnownFundNacional).Return(&domain.Fund{
		FundID:   s.nationalFundID,
		Name:     domain.WellKnownFundNacional,
		IsActive: true,
	}, nil)
}

func (s *ReportServiceTestSuite) submittedReport() *domain.MonthlyReport {
	report := &domain.MonthlyReport{
		ReportID:         uuid.NewString(),
		ChurchID:         s.churchID,
		Month:            3,
		Year:             2025,
		Diezmos:          decimal.RequireFromString("100000"),
		Ofrendas:         decimal.RequireFromString("50000"),
		DepositReference: "DEP-001",
		Status:           domain.ReportSubmitted,
		EnteredBy:        s.treasurerID,
	}
	report.RecomputeTotals()
	return report
}

func (s *ReportServiceTestSuite) TestCreateDraft_Success() {
	s.givenTreasurer()
	req := dto.CreateReportRequest{
		ChurchID: s.churchID,
		Month:    3,
		Year:     2025,
		Diezmos:  decimal.RequireFromString("100000"),
		Ofrendas: decimal.RequireFromString("50000"),
	}
	s.mockReportRepo.On("SaveReport", mock.Anything, mock.MatchedBy(func(r domain.MonthlyReport) bool {
		return r.ChurchID == s.churchID &&
			r.Status == domain.ReportDraft &&
			r.FondoNacional.Equal(decimal.RequireFromString("15000")) &&
			r.TotalIncome.Equal(decimal.RequireFromString("150000"))
	})).Return(nil).Once()

	report, err := s.reportService.CreateDraft(s.ctx, s.treasurerID, req)

	s.Require().NoError(err)
	s.Equal(domain.ReportDraft, report.Status)
	s.True(report.FondoNacional.Equal(decimal.RequireFromString("15000")))
	s.True(report.MonthBalance.Equal(decimal.RequireFromString("150000")))
	s.Equal(s.treasurerID, report.EnteredBy)
	s.mockReportRepo.AssertExpectations(s.T())
}

func (s *ReportServiceTestSuite) TestCreateDraft_DuplicatePeriod() {
	s.givenTreasurer()
	req := dto.CreateReportRequest{ChurchID: s.churchID, Month: 3, Year: 2025}
	s.mockReportRepo.On("SaveReport", mock.Anything, mock.Anything).Return(apperrors.ErrConflict).Once()

	_, err := s.reportService.CreateDraft(s.ctx, s.treasurerID, req)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *ReportServiceTestSuite) TestCreateDraft_NegativeAmount() {
	s.givenTreasurer()
	req := dto.CreateReportRequest{
		ChurchID: s.churchID,
		Month:    3,
		Year:     2025,
		Diezmos:  decimal.RequireFromString("-1"),
	}

	_, err := s.reportService.CreateDraft(s.ctx, s.treasurerID, req)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockReportRepo.AssertNotCalled(s.T(), "SaveReport", mock.Anything, mock.Anything)
}

func (s *ReportServiceTestSuite) TestCreateDraft_AllocationsExceedIncome() {
	s.givenTreasurer()
	req := dto.CreateReportRequest{
		ChurchID: s.churchID,
		Month:    3,
		Year:     2025,
		Diezmos:  decimal.RequireFromString("1000"),
		Allocations: []dto.FundAllocationRequest{
			{FundID: uuid.NewString(), Amount: decimal.RequireFromString("2000")},
		},
	}

	_, err := s.reportService.CreateDraft(s.ctx, s.treasurerID, req)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockReportRepo.AssertNotCalled(s.T(), "SaveReport", mock.Anything, mock.Anything)
}

func (s *ReportServiceTestSuite) TestCreateDraft_CrossChurchForbidden() {
	s.givenTreasurer()
	req := dto.CreateReportRequest{ChurchID: s.otherChurchID, Month: 3, Year: 2025}

	_, err := s.reportService.CreateDraft(s.ctx, s.treasurerID, req)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrForbidden)
	s.mockReportRepo.AssertNotCalled(s.T(), "SaveReport", mock.Anything, mock.Anything)
}

func (s *ReportServiceTestSuite) TestSubmit_WithoutDepositReference() {
	s.givenTreasurer()
	report := s.submittedReport()
	report.Status = domain.ReportDraft
	report.DepositReference = ""
	s.mockReportRepo.On("FindReportByID", mock.Anything, report.ReportID).Return(report, nil).Once()

	_, err := s.reportService.Submit(s.ctx, s.treasurerID, report.ReportID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockReportRepo.AssertNotCalled(s.T(), "UpdateReportStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ReportServiceTestSuite) TestSubmit_Success() {
	s.givenTreasurer()
	report := s.submittedReport()
	report.Status = domain.ReportDraft
	s.mockReportRepo.On("FindReportByID", mock.Anything, report.ReportID).Return(report, nil).Once()
	s.mockReportRepo.On("UpdateReportStatus", mock.Anything, report.ReportID,
		domain.ReportDraft, domain.ReportSubmitted, (*string)(nil), s.treasurerID, mock.Anything).Return(nil).Once()

	updated, err := s.reportService.Submit(s.ctx, s.treasurerID, report.ReportID)

	s.Require().NoError(err)
	s.Equal(domain.ReportSubmitted, updated.Status)
	s.mockReportRepo.AssertExpectations(s.T())
}

func (s *ReportServiceTestSuite) TestApprove_SubmittedPostsAndRefetches() {
	s.givenTreasurer()
	s.givenNationalFund()
	report := s.submittedReport()

	approved := *report
	approved.Status = domain.ReportApproved

	s.mockReportRepo.On("FindReportByID", mock.Anything, report.ReportID).Return(report, nil).Once()
	s.mockPostingRepo.On("ApproveReportAndPost", mock.Anything, mock.Anything, domain.ReportSubmitted, s.treasurerID,
		mock.MatchedBy(func(txns []domain.Transaction) bool {
			// single national fund line at 10% of diezmos+ofrendas
			return len(txns) == 1 &&
				txns[0].FundID == s.nationalFundID &&
				txns[0].AmountIn.Equal(decimal.RequireFromString("15000"))
		}),
		mock.MatchedBy(func(entries []domain.AccountingEntry) bool {
			if len(entries) != 2 {
				return false
			}
			debit, credit := entries[0], entries[1]
			return debit.Side == domain.Debit && debit.AccountCode == domain.AccountCodeCash &&
				credit.Side == domain.Credit && credit.AccountCode == domain.AccountCodeFondoNacional &&
				debit.Amount.Equal(credit.Amount)
		}),
	).Return([]domain.Transaction{{TransactionID: uuid.NewString()}}, nil).Once()
	s.mockReportRepo.On("FindReportByID", mock.Anything, report.ReportID).Return(&approved, nil).Once()

	result, err := s.reportService.Approve(s.ctx, s.treasurerID, report.ReportID, dto.ApproveReportRequest{})

	s.Require().NoError(err)
	s.Equal(domain.ReportApproved, result.Status)
	s.mockPostingRepo.AssertExpectations(s.T())
	s.mockReportRepo.AssertExpectations(s.T())
}

func (s *ReportServiceTestSuite) TestApprove_PostingFailureSurfaces() {
	s.givenTreasurer()
	s.givenNationalFund()
	report := s.submittedReport()

	s.mockReportRepo.On("FindReportByID", mock.Anything, report.ReportID).Return(report, nil).Once()
	s.mockPostingRepo.On("ApproveReportAndPost", mock.Anything, mock.Anything, domain.ReportSubmitted, s.treasurerID, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: balance update lost", apperrors.ErrPostingFailed)).Once()

	_, err := s.reportService.Approve(s.ctx, s.treasurerID, report.ReportID, dto.ApproveReportRequest{})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrPostingFailed)
	// no refetch after a failed posting
	s.mockReportRepo.AssertNumberOfCalls(s.T(), "FindReportByID", 1)
}

func (s *ReportServiceTestSuite) TestApprove_DraftWithoutManualEntry() {
	s.givenAdmin()
	report := s.submittedReport()
	report.Status = domain.ReportDraft
	s.mockReportRepo.On("FindReportByID", mock.Anything, report.ReportID).Return(report, nil).Once()

	_, err := s.reportService.Approve(s.ctx, s.adminID, report.ReportID, dto.ApproveReportRequest{})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidState)
	s.mockPostingRepo.AssertNotCalled(s.T(), "ApproveReportAndPost",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ReportServiceTestSuite) TestApprove_DraftManualEntryRequiresAdmin() {
	s.givenTreasurer()
	report := s.submittedReport()
	report.Status = domain.ReportDraft
	s.mockReportRepo.On("FindReportByID", mock.Anything, report.ReportID).Return(report, nil).Once()

	_, err := s.reportService.Approve(s.ctx, s.treasurerID, report.ReportID, dto.ApproveReportRequest{ManualEntry: true})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidState)
}

func (s *ReportServiceTestSuite) TestApprove_DraftManualEntryByAdmin() {
	s.givenAdmin()
	s.givenNationalFund()
	report := s.submittedReport()
	report.Status = domain.ReportDraft

	approved := *report
	approved.Status = domain.ReportApproved

	s.mockReportRepo.On("FindReportByID", mock.Anything, report.ReportID).Return(report, nil).Once()
	s.mockPostingRepo.On("ApproveReportAndPost", mock.Anything, mock.Anything, domain.ReportDraft, s.adminID, mock.Anything, mock.Anything).
		Return([]domain.Transaction{}, nil).Once()
	s.mockReportRepo.On("FindReportByID", mock.Anything, report.ReportID).Return(&approved, nil).Once()

	result, err := s.reportService.Approve(s.ctx, s.adminID, report.ReportID, dto.ApproveReportRequest{ManualEntry: true})

	s.Require().NoError(err)
	s.Equal(domain.ReportApproved, result.Status)
	s.mockPostingRepo.AssertExpectations(s.T())
}

func (s *ReportServiceTestSuite) TestApprove_AlreadyApproved() {
	s.givenTreasurer()
	report := s.submittedReport()
	report.Status = domain.ReportApproved
	s.mockReportRepo.On("FindReportByID", mock.Anything, report.ReportID).Return(report, nil).Once()

	_, err := s.reportService.Approve(s.ctx, s.treasurerID, report.ReportID, dto.ApproveReportRequest{})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidState)
	s.mockPostingRepo.AssertNotCalled(s.T(), "ApproveReportAndPost",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ReportServiceTestSuite) TestReject_RequiresReason() {
	s.givenTreasurer()
	report := s.submittedReport()
	s.mockReportRepo.On("FindReportByID", mock.Anything, report.ReportID).Return(report, nil).Once()

	_, err := s.reportService.Reject(s.ctx, s.treasurerID, report.ReportID, "")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ReportServiceTestSuite) TestReject_ReturnsToDraftWithReason() {
	s.givenTreasurer()
	report := s.submittedReport()
	reason := "deposit slip does not match the reported total"
	s.mockReportRepo.On("FindReportByID", mock.Anything, report.ReportID).Return(report, nil).Once()
	s.mockReportRepo.On("UpdateReportStatus", mock.Anything, report.ReportID,
		domain.ReportSubmitted, domain.ReportDraft, &reason, s.treasurerID, mock.Anything).Return(nil).Once()

	rejected, err := s.reportService.Reject(s.ctx, s.treasurerID, report.ReportID, reason)

	s.Require().NoError(err)
	s.Equal(domain.ReportDraft, rejected.Status)
	s.Require().NotNil(rejected.RejectionReason)
	s.Equal(reason, *rejected.RejectionReason)
	s.mockReportRepo.AssertExpectations(s.T())
}

func (s *ReportServiceTestSuite) TestMarkProcessed_IdempotentWhenProcessed() {
	s.givenAdmin()
	report := s.submittedReport()
	report.Status = domain.ReportProcessed
	s.mockReportRepo.On("FindReportByID", mock.Anything, report.ReportID).Return(report, nil).Once()

	result, err := s.reportService.MarkProcessed(s.ctx, s.adminID, report.ReportID)

	s.Require().NoError(err)
	s.Equal(domain.ReportProcessed, result.Status)
	s.mockReportRepo.AssertNotCalled(s.T(), "UpdateReportStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ReportServiceTestSuite) TestMarkProcessed_RejectsSubmitted() {
	s.givenAdmin()
	report := s.submittedReport()
	s.mockReportRepo.On("FindReportByID", mock.Anything, report.ReportID).Return(report, nil).Once()

	_, err := s.reportService.MarkProcessed(s.ctx, s.adminID, report.ReportID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidState)
}

func (s *ReportServiceTestSuite) TestListReports_ChurchScopePinned() {
	s.givenTreasurer()
	s.mockReportRepo.On("ListReports", mock.Anything, mock.MatchedBy(func(p dto.ListReportsParams) bool {
		return p.ChurchID != nil && *p.ChurchID == s.churchID
	})).Return([]domain.MonthlyReport{}, nil).Once()

	// no church filter given: the caller defaults to their own church
	_, err := s.reportService.ListReports(s.ctx, s.treasurerID, dto.ListReportsParams{})

	s.Require().NoError(err)
	s.mockReportRepo.AssertExpectations(s.T())
}

func (s *ReportServiceTestSuite) TestListReports_CrossChurchForbidden() {
	s.givenTreasurer()
	requested := s.otherChurchID

	_, err := s.reportService.ListReports(s.ctx, s.treasurerID, dto.ListReportsParams{ChurchID: &requested})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrForbidden)
	s.mockReportRepo.AssertNotCalled(s.T(), "ListReports", mock.Anything, mock.Anything)
}

func (s *ReportServiceTestSuite) TestListReports_ChurchlessScopedCallerGetsEmpty() {
	churchless := uuid.NewString()
	s.mockUserRepo.On("FindUserByID", mock.Anything, churchless).Return(&domain.User{
		UserID:   churchless,
		Role:     domain.RoleTreasurer,
		IsActive: true,
	}, nil)

	reports, err := s.reportService.ListReports(s.ctx, churchless, dto.ListReportsParams{})

	s.Require().NoError(err)
	s.Empty(reports)
	s.mockReportRepo.AssertNotCalled(s.T(), "ListReports", mock.Anything, mock.Anything)
}

func (s *ReportServiceTestSuite) TestUpdateDraft_RejectsSubmitted() {
	s.givenTreasurer()
	report := s.submittedReport()
	s.mockReportRepo.On("FindReportByID", mock.Anything, report.ReportID).Return(report, nil).Once()

	diezmos := decimal.RequireFromString("1")
	_, err := s.reportService.UpdateDraft(s.ctx, s.treasurerID, report.ReportID, dto.UpdateReportRequest{Diezmos: &diezmos})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidState)
	s.mockReportRepo.AssertNotCalled(s.T(), "UpdateReportFields", mock.Anything, mock.Anything)
}

func (s *ReportServiceTestSuite) TestUpdateDraft_RecomputesTotals() {
	s.givenTreasurer()
	report := s.submittedReport()
	report.Status = domain.ReportDraft
	s.mockReportRepo.On("FindReportByID", mock.Anything, report.ReportID).Return(report, nil).Once()
	s.mockReportRepo.On("UpdateReportFields", mock.Anything, mock.MatchedBy(func(r domain.MonthlyReport) bool {
		return r.FondoNacional.Equal(decimal.RequireFromString("25000"))
	})).Return(nil).Once()

	diezmos := decimal.RequireFromString("200000")
	updated, err := s.reportService.UpdateDraft(s.ctx, s.treasurerID, report.ReportID, dto.UpdateReportRequest{Diezmos: &diezmos})

	s.Require().NoError(err)
	s.True(updated.FondoNacional.Equal(decimal.RequireFromString("25000")))
	s.mockReportRepo.AssertExpectations(s.T())
}

func (s *ReportServiceTestSuite) TestUpdateDraft_SurfacesStatusGuardLoss() {
	s.givenTreasurer()
	report := s.submittedReport()
	report.Status = domain.ReportDraft
	s.mockReportRepo.On("FindReportByID", mock.Anything, report.ReportID).Return(report, nil).Once()
	// the report was submitted between the read and the write; the repo's
	// status-guarded UPDATE matches zero rows
	s.mockReportRepo.On("UpdateReportFields", mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: report %s is not editable", apperrors.ErrInvalidState, report.ReportID)).Once()

	diezmos := decimal.RequireFromString("1")
	_, err := s.reportService.UpdateDraft(s.ctx, s.treasurerID, report.ReportID, dto.UpdateReportRequest{Diezmos: &diezmos})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidState)
	s.mockReportRepo.AssertExpectations(s.T())
}

func TestReportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}
