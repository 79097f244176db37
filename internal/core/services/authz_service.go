package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ipupy/tesoreria_backend/internal/apperrors"
	"github.com/ipupy/tesoreria_backend/internal/core/domain"
	portsrepo "github.com/ipupy/tesoreria_backend/internal/core/ports/repositories"
	portssvc "github.com/ipupy/tesoreria_backend/internal/core/ports/services"
)

// authorizerService resolves principal scope from the user store and answers
// capability checks against the declarative permission matrix.
type authorizerService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewAuthorizerService creates a new AuthorizerSvc.
func NewAuthorizerService(userRepo portsrepo.UserRepositoryFacade) portssvc.AuthorizerSvc {
	return &authorizerService{userRepo: userRepo}
}

var _ portssvc.AuthorizerSvc = (*authorizerService)(nil)

// ResolveScope loads the principal's current role, church and fund
// assignments. Nothing is cached across calls, so role mutations take effect
// on the very next request.
func (s *authorizerService) ResolveScope(ctx context.Context, principalID string) (domain.ResolvedScope, error) {
	user, err := s.userRepo.FindUserByID(ctx, principalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.ResolvedScope{}, fmt.Errorf("%w: unknown principal %s", apperrors.ErrUnauthenticated, principalID)
		}
		return domain.ResolvedScope{}, fmt.Errorf("failed to resolve principal %s: %w", principalID, err)
	}
	if !user.IsActive {
		return domain.ResolvedScope{}, fmt.Errorf("%w: principal %s is deactivated", apperrors.ErrUnauthenticated, principalID)
	}

	scope := domain.ResolvedScope{
		UserID:   user.UserID,
		Role:     user.Role,
		ChurchID: user.ChurchID,
	}
	if user.Role == domain.RoleFundDirector {
		fundIDs, err := s.userRepo.FindFundAssignments(ctx, user.UserID)
		if err != nil {
			return domain.ResolvedScope{}, fmt.Errorf("failed to resolve fund assignments for %s: %w", principalID, err)
		}
		scope.FundIDs = fundIDs
	}
	return scope, nil
}

// Can is a pure function of the permission matrix, the resolved scope and the
// target's owning church/fund. Scoped grants require the matching target
// field: an own_church grant never reaches a national record, and an
// assigned_funds grant never reaches an unnamed fund.
func (s *authorizerService) Can(scope domain.ResolvedScope, resource domain.Resource, action domain.Action, target domain.AuthzTarget) bool {
	permScope, ok := domain.Permission(scope.Role, resource, action)
	if !ok {
		return false
	}
	switch permScope {
	case domain.ScopeAll:
		return true
	case domain.ScopeOwnChurch:
		return target.ChurchID != nil && scope.ChurchID != nil && *target.ChurchID == *scope.ChurchID
	case domain.ScopeAssignedFunds:
		return target.FundID != nil && scope.HasFund(*target.FundID)
	}
	return false
}

// Authorize resolves the principal and checks the capability in one step.
func (s *authorizerService) Authorize(ctx context.Context, principalID string, resource domain.Resource, action domain.Action, target domain.AuthzTarget) (domain.ResolvedScope, error) {
	scope, err := s.ResolveScope(ctx, principalID)
	if err != nil {
		return domain.ResolvedScope{}, err
	}
	if !s.Can(scope, resource, action, target) {
		s.LogDebug(ctx, "authorization denied",
			"user_id", principalID,
			"resource", string(resource),
			"action", string(action))
		return domain.ResolvedScope{}, fmt.Errorf("%w: %s %s denied for role %s", apperrors.ErrForbidden, action, resource, scope.Role)
	}
	return scope, nil
}
