package dto

import (
	"time"

	"github.com/ipupy/tesoreria_backend/internal/core/domain"
)

// CreateUserRequest provisions a principal. ChurchID is mandatory for
// church-scoped roles and must be absent for national ones.
type CreateUserRequest struct {
	Email    string      `json:"email" binding:"required,email"`
	Name     string      `json:"name" binding:"required"`
	Password string      `json:"password" binding:"required,min=8"`
	Role     domain.Role `json:"role" binding:"required"`
	ChurchID *string     `json:"churchID"`
	FundIDs  []string    `json:"fundIDs"`
}

// UpdateUserRoleRequest is the admin-level role/scope mutation. It never
// rewrites historical attribution.
type UpdateUserRoleRequest struct {
	Role     domain.Role `json:"role" binding:"required"`
	ChurchID *string     `json:"churchID"`
	FundIDs  []string    `json:"fundIDs"`
}

// UserResponse is the API shape of a principal.
type UserResponse struct {
	UserID    string      `json:"userID"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	ChurchID  *string     `json:"churchID,omitempty"`
	IsActive  bool        `json:"isActive"`
	CreatedAt time.Time   `json:"createdAt"`
}

// ToUserResponse maps a domain user to its API shape.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		ChurchID:  u.ChurchID,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
