package dto

import (
	"github.com/ipupy/tesoreria_backend/internal/core/domain"
)

// CreateCategoryRequest adds a taxonomy entry.
type CreateCategoryRequest struct {
	Name     string              `json:"name" binding:"required"`
	Kind     domain.CategoryKind `json:"kind" binding:"required,oneof=INCOME EXPENSE"`
	ParentID *string             `json:"parentID"`
}

// CategoryResponse is the API shape of a transaction category.
type CategoryResponse struct {
	CategoryID string              `json:"categoryID"`
	Name       string              `json:"name"`
	Kind       domain.CategoryKind `json:"kind"`
	ParentID   *string             `json:"parentID,omitempty"`
	IsActive   bool                `json:"isActive"`
}

// ToCategoryResponse maps a domain category to its API shape.
func ToCategoryResponse(c *domain.TransactionCategory) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
		Kind:       c.Kind,
		ParentID:   c.ParentID,
		IsActive:   c.IsActive,
	}
}
