package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"aircon-admin/internal/authz"
	"aircon-admin/internal/dto"
	"aircon-admin/internal/entities"
	"aircon-admin/internal/repositories"
	apperrors "aircon-admin/pkg/errors"
	"aircon-admin/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*entities.User, error)
	GetUserByID(ctx context.Context, userID uint64) (*entities.User, error)
}

type AuthService struct {
	userRepo repositories.UserRepositoryInterface
	logger   *zap.Logger
}

func NewAuthService(userRepo repositories.UserRepositoryInterface, logger *zap.Logger) AuthServiceInterface {
	return &AuthService{userRepo: userRepo, logger: logger}
}

// Login checks the credentials. Unknown emails, wrong passwords and users without
// a known role all report ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*entities.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Error("login: user lookup failed", zap.Error(err))
			return nil, apperrors.ErrOperationFailed
		}
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(user.Password, payload.Password); err != nil {
		s.logger.Info("login: wrong password", zap.Uint64("userID", user.ID))
		return nil, apperrors.ErrInvalidCredentials
	}
	if _, ok := authz.ParseRole(user.RoleName); !ok {
		s.logger.Warn("login: user has no usable role", zap.Uint64("userID", user.ID), zap.String("role", user.RoleName))
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID uint64) (*entities.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		s.logger.Error("user lookup failed", zap.Uint64("userID", userID), zap.Error(err))
		return nil, apperrors.ErrOperationFailed
	}
	return user, nil
}
