package service

import (
	"testing"
	"time"

	apperrors "aircon-admin/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, 24*time.Hour, zap.NewNop())

	access, refresh, err := svc.GenerateTokens(7, "Budi", "customer")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.UserID)
	assert.Equal(t, "Budi", claims.Name)
	assert.Equal(t, "customer", claims.Role)
	assert.False(t, claims.IsRefreshToken)

	refreshClaims, err := svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.True(t, refreshClaims.IsRefreshToken)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := NewJWTService("secret", -time.Minute, time.Hour, zap.NewNop())

	access, _, err := svc.GenerateTokens(1, "Admin", "staff")
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour, time.Hour, zap.NewNop())
	verifier := NewJWTService("secret-b", time.Hour, time.Hour, zap.NewNop())

	access, _, err := issuer.GenerateTokens(1, "Admin", "staff")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(access)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
