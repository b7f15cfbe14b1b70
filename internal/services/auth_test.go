package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"aircon-admin/internal/dto"
	"aircon-admin/internal/entities"
	apperrors "aircon-admin/pkg/errors"
	"aircon-admin/pkg/utils"
)

type failingUserRepo struct{ fakeUserRepo }

func (r *failingUserRepo) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return nil, errors.New("pool exhausted")
}

func newAuthFixture(t *testing.T) AuthServiceInterface {
	t.Helper()
	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	repo := &fakeUserRepo{users: map[string]*entities.User{
		"admin@example.com":  {ID: 1, Name: "Admin", Email: "admin@example.com", Password: hash, RoleName: "staff"},
		"legacy@example.com": {ID: 2, Name: "Legacy", Email: "legacy@example.com", Password: hash, RoleName: "auditor"},
	}}
	return NewAuthService(repo, zap.NewNop())
}

func TestLogin(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.Login(ctx, dto.LoginDTO{Email: "admin@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), user.ID)

	_, err = svc.Login(ctx, dto.LoginDTO{Email: "admin@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, dto.LoginDTO{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, dto.LoginDTO{Email: "legacy@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials, "unknown roles cannot sign in")
}

func TestLogin_LookupFailureIsGeneric(t *testing.T) {
	svc := NewAuthService(&failingUserRepo{}, zap.NewNop())
	_, err := svc.Login(context.Background(), dto.LoginDTO{Email: "admin@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrOperationFailed)
}

func TestGetUserByID(t *testing.T) {
	svc := newAuthFixture(t)

	user, err := svc.GetUserByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Admin", user.Name)

	_, err = svc.GetUserByID(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
