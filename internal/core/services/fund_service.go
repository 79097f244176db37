package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ipupy/tesoreria_backend/internal/core/domain"
	portsrepo "github.com/ipupy/tesoreria_backend/internal/core/ports/repositories"
	portssvc "github.com/ipupy/tesoreria_backend/internal/core/ports/services"
	"github.com/ipupy/tesoreria_backend/internal/dto"
)

const defaultTransactionPageSize = 50

// fundService manages funds and exposes fund movement listings.
type fundService struct {
	BaseService
	fundRepo portsrepo.FundRepositoryFacade
	txnRepo  portsrepo.TransactionRepositoryFacade
}

// NewFundService creates a new FundSvcFacade.
func NewFundService(fundRepo portsrepo.FundRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade, authorizer portssvc.AuthorizerSvc) portssvc.FundSvcFacade {
	return &fundService{
		BaseService: BaseService{Authorizer: authorizer},
		fundRepo:    fundRepo,
		txnRepo:     txnRepo,
	}
}

var _ portssvc.FundSvcFacade = (*fundService)(nil)

func (s *fundService) CreateFund(ctx context.Context, principalID string, req dto.CreateFundRequest) (*domain.Fund, error) {
	scope, err := s.Authorizer.Authorize(ctx, principalID, domain.ResourceFund, domain.ActionCreate, domain.AuthzTarget{})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	fund := domain.Fund{
		FundID:         uuid.NewString(),
		Name:           req.Name,
		Description:    req.Description,
		CurrentBalance: decimal.Zero,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     scope.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: scope.UserID,
		},
	}
	if err := s.fundRepo.SaveFund(ctx, fund); err != nil {
		s.LogError(ctx, err, "failed to save fund", "fund_name", req.Name)
		return nil, err
	}
	s.LogInfo(ctx, "fund created", "fund_id", fund.FundID)
	return &fund, nil
}

func (s *fundService) GetFund(ctx context.Context, principalID string, fundID string) (*domain.Fund, error) {
	if _, err := s.Authorizer.Authorize(ctx, principalID, domain.ResourceFund, domain.ActionRead, domain.AuthzTarget{FundID: &fundID}); err != nil {
		return nil, err
	}
	return s.fundRepo.FindFundByID(ctx, fundID)
}

func (s *fundService) ListFunds(ctx context.Context, principalID string) ([]domain.Fund, error) {
	scope, err := s.Authorizer.ResolveScope(ctx, principalID)
	if err != nil {
		return nil, err
	}
	permScope, ok := domain.Permission(scope.Role, domain.ResourceFund, domain.ActionRead)
	if !ok {
		return nil, forbidden(domain.ResourceFund, domain.ActionRead, scope.Role)
	}

	funds, err := s.fundRepo.ListFunds(ctx, scope.Role == domain.RoleNationalAdmin)
	if err != nil {
		return nil, err
	}
	if permScope == domain.ScopeAssignedFunds {
		assigned := make([]domain.Fund, 0, len(scope.FundIDs))
		for _, f := range funds {
			if scope.HasFund(f.FundID) {
				assigned = append(assigned, f)
			}
		}
		return assigned, nil
	}
	return funds, nil
}

func (s *fundService) UpdateFund(ctx context.Context, principalID string, fundID string, req dto.UpdateFundRequest) (*domain.Fund, error) {
	scope, err := s.Authorizer.Authorize(ctx, principalID, domain.ResourceFund, domain.ActionUpdate, domain.AuthzTarget{FundID: &fundID})
	if err != nil {
		return nil, err
	}
	fund, err := s.fundRepo.FindFundByID(ctx, fundID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		fund.Name = *req.Name
	}
	if req.Description != nil {
		fund.Description = *req.Description
	}
	fund.LastUpdatedAt = time.Now().UTC()
	fund.LastUpdatedBy = scope.UserID

	if err := s.fundRepo.UpdateFund(ctx, *fund); err != nil {
		s.LogError(ctx, err, "failed to update fund", "fund_id", fundID)
		return nil, err
	}
	return fund, nil
}

func (s *fundService) ListFundTransactions(ctx context.Context, principalID string, fundID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if _, err := s.Authorizer.Authorize(ctx, principalID, domain.ResourceTransaction, domain.ActionRead, domain.AuthzTarget{FundID: &fundID}); err != nil {
		return nil, err
	}
	if _, err := s.fundRepo.FindFundByID(ctx, fundID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 || limit > 200 {
		limit = defaultTransactionPageSize
	}
	txns, nextToken, err := s.txnRepo.ListTransactionsByFund(ctx, fundID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "failed to list fund transactions", "fund_id", fundID)
		return nil, err
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}
