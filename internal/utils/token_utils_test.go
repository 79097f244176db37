package utils_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipupy/tesoreria_backend/internal/core/domain"
	"github.com/ipupy/tesoreria_backend/internal/utils"
)

func TestGenerateJWT(t *testing.T) {
	churchID := uuid.NewString()
	user := &domain.User{
		UserID:   uuid.NewString(),
		Email:    "tesorero@ipupy.org.py",
		Role:     domain.RoleTreasurer,
		ChurchID: &churchID,
	}
	secret := "test-secret"

	tokenString, err := utils.GenerateJWT(user, secret, time.Hour, "tesoreria-backend")
	require.NoError(t, err)

	claims := &utils.PrincipalClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	assert.Equal(t, user.UserID, claims.Subject)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, string(domain.RoleTreasurer), claims.Role)
	require.NotNil(t, claims.ChurchID)
	assert.Equal(t, churchID, *claims.ChurchID)
	assert.Equal(t, "tesoreria-backend", claims.Issuer)
}

func TestGenerateJWTRejectsWrongSecret(t *testing.T) {
	user := &domain.User{UserID: uuid.NewString(), Email: "a@ipupy.org.py", Role: domain.RoleSecretary}

	tokenString, err := utils.GenerateJWT(user, "right-secret", time.Hour, "tesoreria-backend")
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(tokenString, &utils.PrincipalClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte("wrong-secret"), nil
	})
	assert.Error(t, err)
}
