package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ipupy/tesoreria_backend/internal/core/domain"
)

// PrincipalClaims carries the principal tuple in the JWT. The role and
// church claims are transport hints only; the engines re-validate against
// the stored user record on every call.
type PrincipalClaims struct {
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	ChurchID *string `json:"churchID,omitempty"`
	jwt.RegisteredClaims
}

// GenerateJWT issues a signed token for the given user.
func GenerateJWT(user *domain.User, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := PrincipalClaims{
		Email:    user.Email,
		Role:     string(user.Role),
		ChurchID: user.ChurchID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
