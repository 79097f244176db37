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
)

var (
	ErrNegativeAmount    = errors.New("monetary fields must not be negative")
	ErrDepositMissing    = errors.New("deposit reference is required before submission")
	ErrManualEntryDenied = errors.New("draft approval requires the admin manual entry override")
)

// reportService drives the monthly report state machine. Approval is the one
// operation that spans this service and the ledger engine: the posting rows
// are built here but committed by the posting repository in a single
// database transaction with the status change.
type reportService struct {
	BaseService
	reportRepo  portsrepo.ReportRepositoryFacade
	postingRepo portsrepo.PostingRepository
	ledgerSvc   portssvc.LedgerPostingSvc
}

// NewReportService creates a new ReportSvcFacade.
func NewReportService(reportRepo portsrepo.ReportRepositoryFacade, postingRepo portsrepo.PostingRepository, ledgerSvc portssvc.LedgerPostingSvc, authorizer portssvc.AuthorizerSvc) portssvc.ReportSvcFacade {
	return &reportService{
		BaseService: BaseService{Authorizer: authorizer},
		reportRepo:  reportRepo,
		postingRepo: postingRepo,
		ledgerSvc:   ledgerSvc,
	}
}

var _ portssvc.ReportSvcFacade = (*reportService)(nil)

// validateAmounts rejects negative monetary input before any write.
func validateAmounts(amounts ...decimal.Decimal) error {
	for _, a := range amounts {
		if a.IsNegative() {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNegativeAmount)
		}
	}
	return nil
}

func (s *reportService) CreateDraft(ctx context.Context, principalID string, req dto.CreateReportRequest) (*domain.MonthlyReport, error) {
	scope, err := s.Authorizer.Authorize(ctx, principalID, domain.ResourceReport, domain.ActionCreate, domain.AuthzTarget{ChurchID: &req.ChurchID})
	if err != nil {
		return nil, err
	}
	if err := validateAmounts(req.Diezmos, req.Ofrendas, req.OtrosIngresos, req.HonorariosPastorales, req.GastosOperativos, req.OtrosGastos); err != nil {
		return nil, err
	}

	allocations := make([]domain.FundAllocation, 0, len(req.Allocations))
	for _, a := range req.Allocations {
		if a.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: allocation for fund %s must be positive", apperrors.ErrValidation, a.FundID)
		}
		allocations = append(allocations, domain.FundAllocation{FundID: a.FundID, Amount: a.Amount})
	}

	now := time.Now().UTC()
	report := domain.MonthlyReport{
		ReportID:             uuid.NewString(),
		ChurchID:             req.ChurchID,
		Month:                req.Month,
		Year:                 req.Year,
		Diezmos:              req.Diezmos,
		Ofrendas:             req.Ofrendas,
		OtrosIngresos:        req.OtrosIngresos,
		HonorariosPastorales: req.HonorariosPastorales,
		GastosOperativos:     req.GastosOperativos,
		OtrosGastos:          req.OtrosGastos,
		DepositReference:     req.DepositReference,
		DepositDate:          req.DepositDate,
		Allocations:          allocations,
		Status:               domain.ReportDraft,
		EnteredBy:            scope.UserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     scope.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: scope.UserID,
		},
	}
	report.RecomputeTotals()

	if report.AllocationsTotal().GreaterThan(report.TotalIncome) {
		return nil, fmt.Errorf("%w: fund allocations exceed total income", apperrors.ErrValidation)
	}

	if err := s.reportRepo.SaveReport(ctx, report); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: report for church %s period %d/%d already exists", apperrors.ErrConflict, req.ChurchID, req.Month, req.Year)
		}
		s.LogError(ctx, err, "failed to save report", "church_id", req.ChurchID)
		return nil, err
	}
	s.LogInfo(ctx, "report draft created", "report_id", report.ReportID, "church_id", req.ChurchID)
	return &report, nil
}

func (s *reportService) UpdateDraft(ctx context.Context, principalID string, reportID string, req dto.UpdateReportRequest) (*domain.MonthlyReport, error) {
	report, err := s.reportRepo.FindReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	scope, err := s.Authorizer.Authorize(ctx, principalID, domain.ResourceReport, domain.ActionUpdate, domain.AuthzTarget{ChurchID: &report.ChurchID})
	if err != nil {
		return nil, err
	}
	if report.Status != domain.ReportDraft {
		return nil, fmt.Errorf("%w: cannot edit a %s report", apperrors.ErrInvalidState, report.Status)
	}

	if req.Diezmos != nil {
		report.Diezmos = *req.Diezmos
	}
	if req.Ofrendas != nil {
		report.Ofrendas = *req.Ofrendas
	}
	if req.OtrosIngresos != nil {
		report.OtrosIngresos = *req.OtrosIngresos
	}
	if req.HonorariosPastorales != nil {
		report.HonorariosPastorales = *req.HonorariosPastorales
	}
	if req.GastosOperativos != nil {
		report.GastosOperativos = *req.GastosOperativos
	}
	if req.OtrosGastos != nil {
		report.OtrosGastos = *req.OtrosGastos
	}
	if req.DepositReference != nil {
		report.DepositReference = *req.DepositReference
	}
	if req.DepositDate != nil {
		report.DepositDate = req.DepositDate
	}
	if err := validateAmounts(report.Diezmos, report.Ofrendas, report.OtrosIngresos, report.HonorariosPastorales, report.GastosOperativos, report.OtrosGastos); err != nil {
		return nil, err
	}
	report.RecomputeTotals()
	report.LastUpdatedAt = time.Now().UTC()
	report.LastUpdatedBy = scope.UserID

	if err := s.reportRepo.UpdateReportFields(ctx, *report); err != nil {
		s.LogError(ctx, err, "failed to update report", "report_id", reportID)
		return nil, err
	}
	return report, nil
}

func (s *reportService) Submit(ctx context.Context, principalID string, reportID string) (*domain.MonthlyReport, error) {
	report, err := s.reportRepo.FindReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	scope, err := s.Authorizer.Authorize(ctx, principalID, domain.ResourceReport, domain.ActionSubmit, domain.AuthzTarget{ChurchID: &report.ChurchID})
	if err != nil {
		return nil, err
	}
	if report.Status != domain.ReportDraft {
		return nil, fmt.Errorf("%w: cannot submit a %s report", apperrors.ErrInvalidState, report.Status)
	}
	if report.DepositReference == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDepositMissing)
	}

	now := time.Now().UTC()
	if err := s.reportRepo.UpdateReportStatus(ctx, reportID, domain.ReportDraft, domain.ReportSubmitted, nil, scope.UserID, now); err != nil {
		s.LogError(ctx, err, "failed to submit report", "report_id", reportID)
		return nil, err
	}
	report.Status = domain.ReportSubmitted
	report.LastUpdatedAt = now
	report.LastUpdatedBy = scope.UserID
	s.LogInfo(ctx, "report submitted", "report_id", reportID)
	return report, nil
}

// Approve marks the report approved and posts it to the ledger in one atomic
// unit of work. A posting failure rolls everything back: the caller sees
// ErrPostingFailed and the report stays submitted. A concurrent or repeated
// approval loses the guarded status update and surfaces as ErrInvalidState
// without double-posting.
func (s *reportService) Approve(ctx context.Context, principalID string, reportID string, req dto.ApproveReportRequest) (*domain.MonthlyReport, error) {
	report, err := s.reportRepo.FindReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	scope, err := s.Authorizer.Authorize(ctx, principalID, domain.ResourceReport, domain.ActionApprove, domain.AuthzTarget{ChurchID: &report.ChurchID})
	if err != nil {
		return nil, err
	}

	expected := domain.ReportSubmitted
	switch report.Status {
	case domain.ReportSubmitted:
		// normal path
	case domain.ReportDraft:
		// Direct draft approval is the explicit admin manual entry path.
		if !req.ManualEntry || scope.Role != domain.RoleNationalAdmin {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidState, ErrManualEntryDenied)
		}
		expected = domain.ReportDraft
	default:
		return nil, fmt.Errorf("%w: cannot approve a %s report", apperrors.ErrInvalidState, report.Status)
	}

	txns, entries, err := s.ledgerSvc.BuildReportPostings(ctx, report)
	if err != nil {
		s.LogError(ctx, err, "failed to build report postings", "report_id", reportID)
		return nil, err
	}

	if _, err := s.postingRepo.ApproveReportAndPost(ctx, *report, expected, scope.UserID, txns, entries); err != nil {
		s.LogError(ctx, err, "report approval failed", "report_id", reportID)
		return nil, err
	}

	s.LogInfo(ctx, "report approved and posted", "report_id", reportID, "approver_id", scope.UserID)
	return s.reportRepo.FindReportByID(ctx, reportID)
}

func (s *reportService) Reject(ctx context.Context, principalID string, reportID string, reason string) (*domain.MonthlyReport, error) {
	report, err := s.reportRepo.FindReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	scope, err := s.Authorizer.Authorize(ctx, principalID, domain.ResourceReport, domain.ActionReject, domain.AuthzTarget{ChurchID: &report.ChurchID})
	if err != nil {
		return nil, err
	}
	if report.Status != domain.ReportSubmitted {
		return nil, fmt.Errorf("%w: cannot reject a %s report", apperrors.ErrInvalidState, report.Status)
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	if err := s.reportRepo.UpdateReportStatus(ctx, reportID, domain.ReportSubmitted, domain.ReportDraft, &reason, scope.UserID, now); err != nil {
		s.LogError(ctx, err, "failed to reject report", "report_id", reportID)
		return nil, err
	}
	report.Status = domain.ReportDraft
	report.RejectionReason = &reason
	report.LastUpdatedAt = now
	report.LastUpdatedBy = scope.UserID
	s.LogInfo(ctx, "report rejected", "report_id", reportID)
	return report, nil
}

// MarkProcessed is the administrative terminal step. Already-processed
// reports are an idempotent no-op.
func (s *reportService) MarkProcessed(ctx context.Context, principalID string, reportID string) (*domain.MonthlyReport, error) {
	report, err := s.reportRepo.FindReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	scope, err := s.Authorizer.Authorize(ctx, principalID, domain.ResourceReport, domain.ActionProcess, domain.AuthzTarget{ChurchID: &report.ChurchID})
	if err != nil {
		return nil, err
	}
	if report.Status == domain.ReportProcessed {
		return report, nil
	}
	if report.Status != domain.ReportApproved {
		return nil, fmt.Errorf("%w: cannot process a %s report", apperrors.ErrInvalidState, report.Status)
	}

	now := time.Now().UTC()
	if err := s.reportRepo.UpdateReportStatus(ctx, reportID, domain.ReportApproved, domain.ReportProcessed, nil, scope.UserID, now); err != nil {
		s.LogError(ctx, err, "failed to mark report processed", "report_id", reportID)
		return nil, err
	}
	report.Status = domain.ReportProcessed
	report.LastUpdatedAt = now
	report.LastUpdatedBy = scope.UserID
	return report, nil
}

func (s *reportService) GetReport(ctx context.Context, principalID string, reportID string) (*domain.MonthlyReport, error) {
	report, err := s.reportRepo.FindReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Authorizer.Authorize(ctx, principalID, domain.ResourceReport, domain.ActionRead, domain.AuthzTarget{ChurchID: &report.ChurchID}); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *reportService) ListReports(ctx context.Context, principalID string, params dto.ListReportsParams) ([]domain.MonthlyReport, error) {
	scope, err := s.Authorizer.ResolveScope(ctx, principalID)
	if err != nil {
		return nil, err
	}
	permScope, ok := domain.Permission(scope.Role, domain.ResourceReport, domain.ActionRead)
	if !ok {
		return nil, forbidden(domain.ResourceReport, domain.ActionRead, scope.Role)
	}
	// Church-scoped callers default to their own congregation; naming any
	// other church is denied outright.
	if permScope == domain.ScopeOwnChurch {
		if scope.ChurchID == nil {
			return []domain.MonthlyReport{}, nil
		}
		if params.ChurchID != nil && *params.ChurchID != *scope.ChurchID {
			return nil, forbidden(domain.ResourceReport, domain.ActionRead, scope.Role)
		}
		params.ChurchID = scope.ChurchID
	}
	return s.reportRepo.ListReports(ctx, params)
}
