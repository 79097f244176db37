package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ipupy/tesoreria_backend/internal/apperrors"
	"github.com/ipupy/tesoreria_backend/internal/core/domain"
	portsrepo "github.com/ipupy/tesoreria_backend/internal/core/ports/repositories"
	portssvc "github.com/ipupy/tesoreria_backend/internal/core/ports/services"
	"github.com/ipupy/tesoreria_backend/internal/dto"
	"github.com/ipupy/tesoreria_backend/internal/utils"
)

// userService manages principal records and credential verification.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserSvcFacade.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, authorizer portssvc.AuthorizerSvc) portssvc.UserSvcFacade {
	return &userService{
		BaseService: BaseService{Authorizer: authorizer},
		userRepo:    userRepo,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// validateRoleScope enforces the role/church pairing rule: church-scoped
// roles require a church, national roles must not carry one.
func validateRoleScope(role domain.Role, churchID *string) error {
	if !role.IsValid() {
		return fmt.Errorf("%w: unknown role %s", apperrors.ErrValidation, role)
	}
	if role.IsChurchScoped() && churchID == nil {
		return fmt.Errorf("%w: role %s requires a church assignment", apperrors.ErrValidation, role)
	}
	if role.IsNational() && churchID != nil {
		return fmt.Errorf("%w: role %s must not carry a church assignment", apperrors.ErrValidation, role)
	}
	return nil
}

func (s *userService) CreateUser(ctx context.Context, principalID string, req dto.CreateUserRequest) (*domain.User, error) {
	scope, err := s.Authorizer.Authorize(ctx, principalID, domain.ResourceUser, domain.ActionCreate, domain.AuthzTarget{})
	if err != nil {
		return nil, err
	}
	if err := validateRoleScope(req.Role, req.ChurchID); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "failed to hash password")
		return nil, fmt.Errorf("%w: password hashing failed", apperrors.ErrInternal)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         req.Role,
		ChurchID:     req.ChurchID,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     scope.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: scope.UserID,
		},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "failed to save user", "email", req.Email)
		return nil, err
	}
	if user.Role == domain.RoleFundDirector && len(req.FundIDs) > 0 {
		if err := s.userRepo.UpdateUserRole(ctx, user.UserID, user.Role, user.ChurchID, req.FundIDs, scope.UserID, now); err != nil {
			s.LogError(ctx, err, "failed to assign funds to new user", "user_id", user.UserID)
			return nil, err
		}
	}
	s.LogInfo(ctx, "user created", "user_id", user.UserID, "role", string(user.Role))
	return &user, nil
}

func (s *userService) GetUser(ctx context.Context, principalID string, userID string) (*domain.User, error) {
	if _, err := s.Authorizer.Authorize(ctx, principalID, domain.ResourceUser, domain.ActionRead, domain.AuthzTarget{}); err != nil {
		return nil, err
	}
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) ListUsers(ctx context.Context, principalID string) ([]domain.User, error) {
	if _, err := s.Authorizer.Authorize(ctx, principalID, domain.ResourceUser, domain.ActionRead, domain.AuthzTarget{}); err != nil {
		return nil, err
	}
	return s.userRepo.ListUsers(ctx)
}

// UpdateUserRole is the admin role/scope mutation. It rewrites the role,
// church and fund assignments but never touches historical attribution on
// reports or transactions.
func (s *userService) UpdateUserRole(ctx context.Context, principalID string, userID string, req dto.UpdateUserRoleRequest) (*domain.User, error) {
	scope, err := s.Authorizer.Authorize(ctx, principalID, domain.ResourceUser, domain.ActionUpdate, domain.AuthzTarget{})
	if err != nil {
		return nil, err
	}
	if err := validateRoleScope(req.Role, req.ChurchID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateUserRole(ctx, userID, req.Role, req.ChurchID, req.FundIDs, scope.UserID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "failed to update user role", "user_id", userID)
		return nil, err
	}
	s.LogInfo(ctx, "user role updated", "user_id", userID, "role", string(req.Role))
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) DeactivateUser(ctx context.Context, principalID string, userID string) error {
	scope, err := s.Authorizer.Authorize(ctx, principalID, domain.ResourceUser, domain.ActionDelete, domain.AuthzTarget{})
	if err != nil {
		return err
	}
	if err := s.userRepo.DeactivateUser(ctx, userID, scope.UserID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "failed to deactivate user", "user_id", userID)
		return err
	}
	s.LogInfo(ctx, "user deactivated", "user_id", userID)
	return nil
}

// Authenticate verifies password credentials. Unknown emails and wrong
// passwords collapse into the same ErrUnauthenticated.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthenticated)
		}
		return nil, err
	}
	if !user.IsActive || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthenticated)
	}
	return user, nil
}

// FindOrProvisionOAuthUser returns the principal for an externally verified
// email, creating a secretary-level record on first login. The provisioned
// user has no usable password; only the OAuth path can sign them in until an
// admin upgrades the record.
func (s *userService) FindOrProvisionOAuthUser(ctx context.Context, email, name string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		if !user.IsActive {
			return nil, fmt.Errorf("%w: principal is deactivated", apperrors.ErrUnauthenticated)
		}
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	userID := uuid.NewString()
	newUser := domain.User{
		UserID:   userID,
		Email:    email,
		Name:     name,
		Role:     domain.RoleSecretary,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		s.LogError(ctx, err, "failed to provision oauth user", "email", email)
		return nil, err
	}
	s.LogInfo(ctx, "oauth user provisioned", "user_id", newUser.UserID)
	return &newUser, nil
}
