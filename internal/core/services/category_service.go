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

// categoryService manages the transaction taxonomy.
type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new CategorySvcFacade.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade, authorizer portssvc.AuthorizerSvc) portssvc.CategorySvcFacade {
	return &categoryService{
		BaseService:  BaseService{Authorizer: authorizer},
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, principalID string, req dto.CreateCategoryRequest) (*domain.TransactionCategory, error) {
	scope, err := s.Authorizer.Authorize(ctx, principalID, domain.ResourceCategory, domain.ActionCreate, domain.AuthzTarget{})
	if err != nil {
		return nil, err
	}
	if req.ParentID != nil {
		if _, err := s.categoryRepo.FindCategoryByID(ctx, *req.ParentID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	category := domain.TransactionCategory{
		CategoryID: uuid.NewString(),
		Name:       req.Name,
		Kind:       req.Kind,
		ParentID:   req.ParentID,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     scope.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: scope.UserID,
		},
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "failed to save category", "category_name", req.Name)
		return nil, err
	}
	return &category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, principalID string) ([]domain.TransactionCategory, error) {
	scope, err := s.Authorizer.Authorize(ctx, principalID, domain.ResourceCategory, domain.ActionRead, domain.AuthzTarget{})
	if err != nil {
		return nil, err
	}
	return s.categoryRepo.ListCategories(ctx, scope.Role == domain.RoleNationalAdmin)
}

func (s *categoryService) DeactivateCategory(ctx context.Context, principalID string, categoryID string) error {
	scope, err := s.Authorizer.Authorize(ctx, principalID, domain.ResourceCategory, domain.ActionDelete, domain.AuthzTarget{})
	if err != nil {
		return err
	}
	if _, err := s.categoryRepo.FindCategoryByID(ctx, categoryID); err != nil {
		return err
	}
	if err := s.categoryRepo.DeactivateCategory(ctx, categoryID, scope.UserID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "failed to deactivate category", "category_id", categoryID)
		return err
	}
	return nil
}
