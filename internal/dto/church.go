package dto

import (
	"time"

	"github.com/ipupy/tesoreria_backend/internal/core/domain"
)

// CreateChurchRequest registers a new congregation.
type CreateChurchRequest struct {
	Name   string `json:"name" binding:"required"`
	City   string `json:"city" binding:"required"`
	Pastor string `json:"pastor" binding:"required"`
	Phone  string `json:"phone"`
}

// UpdateChurchRequest edits church display metadata.
type UpdateChurchRequest struct {
	Name   *string `json:"name"`
	City   *string `json:"city"`
	Pastor *string `json:"pastor"`
	Phone  *string `json:"phone"`
}

// ChurchResponse is the API shape of a church.
type ChurchResponse struct {
	ChurchID  string    `json:"churchID"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Pastor    string    `json:"pastor"`
	Phone     string    `json:"phone"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToChurchResponse maps a domain church to its API shape.
func ToChurchResponse(c *domain.Church) ChurchResponse {
	return ChurchResponse{
		ChurchID:  c.ChurchID,
		Name:      c.Name,
		City:      c.City,
		Pastor:    c.Pastor,
		Phone:     c.Phone,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
	}
}
