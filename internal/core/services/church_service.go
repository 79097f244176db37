package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ipupy/tesoreria_backend/internal/core/domain"
	portsrepo "github.com/ipupy/tesoreria_backend/internal/core/ports/repositories"
	portssvc "github.com/ipupy/tesoreria_backend/internal/core/ports/services"
	"github.com/ipupy/tesoreria_backend/internal/dto"
)

// churchService manages congregation records.
type churchService struct {
	BaseService
	churchRepo portsrepo.ChurchRepositoryFacade
}

// NewChurchService creates a new ChurchSvcFacade.
func NewChurchService(churchRepo portsrepo.ChurchRepositoryFacade, authorizer portssvc.AuthorizerSvc) portssvc.ChurchSvcFacade {
	return &churchService{
		BaseService: BaseService{Authorizer: authorizer},
		churchRepo:  churchRepo,
	}
}

var _ portssvc.ChurchSvcFacade = (*churchService)(nil)

func (s *churchService) CreateChurch(ctx context.Context, principalID string, req dto.CreateChurchRequest) (*domain.Church, error) {
	scope, err := s.Authorizer.Authorize(ctx, principalID, domain.ResourceChurch, domain.ActionCreate, domain.AuthzTarget{})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	church := domain.Church{
		ChurchID: uuid.NewString(),
		Name:     req.Name,
		City:     req.City,
		Pastor:   req.Pastor,
		Phone:    req.Phone,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     scope.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: scope.UserID,
		},
	}
	if err := s.churchRepo.SaveChurch(ctx, church); err != nil {
		s.LogError(ctx, err, "failed to save church", "church_name", req.Name)
		return nil, err
	}
	s.LogInfo(ctx, "church created", "church_id", church.ChurchID)
	return &church, nil
}

func (s *churchService) GetChurch(ctx context.Context, principalID string, churchID string) (*domain.Church, error) {
	if _, err := s.Authorizer.Authorize(ctx, principalID, domain.ResourceChurch, domain.ActionRead, domain.AuthzTarget{ChurchID: &churchID}); err != nil {
		return nil, err
	}
	return s.churchRepo.FindChurchByID(ctx, churchID)
}

func (s *churchService) ListChurches(ctx context.Context, principalID string) ([]domain.Church, error) {
	scope, err := s.Authorizer.ResolveScope(ctx, principalID)
	if err != nil {
		return nil, err
	}
	permScope, ok := domain.Permission(scope.Role, domain.ResourceChurch, domain.ActionRead)
	if !ok {
		return nil, forbidden(domain.ResourceChurch, domain.ActionRead, scope.Role)
	}

	// Church-scoped principals only ever see their own congregation.
	if permScope == domain.ScopeOwnChurch {
		if scope.ChurchID == nil {
			return []domain.Church{}, nil
		}
		church, err := s.churchRepo.FindChurchByID(ctx, *scope.ChurchID)
		if err != nil {
			return nil, err
		}
		return []domain.Church{*church}, nil
	}
	return s.churchRepo.ListChurches(ctx, scope.Role == domain.RoleNationalAdmin)
}

func (s *churchService) UpdateChurch(ctx context.Context, principalID string, churchID string, req dto.UpdateChurchRequest) (*domain.Church, error) {
	scope, err := s.Authorizer.Authorize(ctx, principalID, domain.ResourceChurch, domain.ActionUpdate, domain.AuthzTarget{ChurchID: &churchID})
	if err != nil {
		return nil, err
	}
	church, err := s.churchRepo.FindChurchByID(ctx, churchID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		church.Name = *req.Name
	}
	if req.City != nil {
		church.City = *req.City
	}
	if req.Pastor != nil {
		church.Pastor = *req.Pastor
	}
	if req.Phone != nil {
		church.Phone = *req.Phone
	}
	church.LastUpdatedAt = time.Now().UTC()
	church.LastUpdatedBy = scope.UserID

	if err := s.churchRepo.UpdateChurch(ctx, *church); err != nil {
		s.LogError(ctx, err, "failed to update church", "church_id", churchID)
		return nil, err
	}
	return church, nil
}

func (s *churchService) DeactivateChurch(ctx context.Context, principalID string, churchID string) error {
	scope, err := s.Authorizer.Authorize(ctx, principalID, domain.ResourceChurch, domain.ActionDelete, domain.AuthzTarget{ChurchID: &churchID})
	if err != nil {
		return err
	}
	if err := s.churchRepo.DeactivateChurch(ctx, churchID, scope.UserID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "failed to deactivate church", "church_id", churchID)
		return err
	}
	s.LogInfo(ctx, "church deactivated", "church_id", churchID)
	return nil
}
