package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"aircon-admin/internal/authz"
	"aircon-admin/internal/repositories"
	"aircon-admin/pkg/constants"
	apperrors "aircon-admin/pkg/errors"
)

// AuthPermissionServiceInterface is the capability-grant oracle.
type AuthPermissionServiceInterface interface {
	Can(ctx context.Context, actor authz.Actor, permission string) (bool, error)
	GetRolePermissionsNames(ctx context.Context, role authz.Role) ([]string, error)
	InvalidateRolePermissionsCache(ctx context.Context, role authz.Role) error
}

type AuthPermissionService struct {
	permissionRepo repositories.PermissionRepositoryInterface
	cacheRepo      repositories.CacheRepositoryInterface
	gatekeeper     *authz.Gatekeeper
	logger         *zap.Logger
	cacheTTL       time.Duration
}

func NewAuthPermissionService(
	permissionRepo repositories.PermissionRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cacheTTL time.Duration,
) AuthPermissionServiceInterface {
	return &AuthPermissionService{
		permissionRepo: permissionRepo,
		cacheRepo:      cacheRepo,
		gatekeeper:     authz.NewGatekeeper(),
		logger:         logger,
		cacheTTL:       cacheTTL,
	}
}

func (s *AuthPermissionService) Can(ctx context.Context, actor authz.Actor, permission string) (bool, error) {
	if _, ok := authz.ParseRole(actor.Role.String()); !ok {
		return false, nil
	}
	names, err := s.GetRolePermissionsNames(ctx, actor.Role)
	if err != nil {
		return false, err
	}
	return s.gatekeeper.Can(authz.PermissionSet(names), permission), nil
}

func (s *AuthPermissionService) GetRolePermissionsNames(ctx context.Context, role authz.Role) ([]string, error) {
	cacheKey := fmt.Sprintf(constants.CacheKeyRolePermissions, role)
	logger := s.logger.With(zap.String("role", role.String()))
	var permissions []string

	cached, errGet := s.cacheRepo.Get(ctx, cacheKey)
	if errGet == nil {
		if err := json.Unmarshal([]byte(cached), &permissions); err == nil {
			logger.Debug("role permissions served from cache")
			return permissions, nil
		} else {
			logger.Warn("cached role permissions are corrupt", zap.String("key", cacheKey), zap.Error(err))
		}
	} else {
		logger.Debug("role permissions not cached, loading from database", zap.Error(errGet))
	}

	permissions, errDB := s.permissionRepo.GetPermissionsNamesByRoleName(ctx, role.String())
	if errDB != nil {
		logger.Error("failed to load role permissions", zap.Error(errDB))
		return nil, apperrors.ErrOperationFailed
	}

	if len(permissions) > 0 {
		payload, errMarshal := json.Marshal(permissions)
		if errMarshal != nil {
			logger.Error("failed to encode role permissions for cache", zap.Error(errMarshal))
		} else if errSet := s.cacheRepo.Set(ctx, cacheKey, string(payload), s.cacheTTL); errSet != nil {
			logger.Error("failed to cache role permissions", zap.Error(errSet))
		}
	}
	return permissions, nil
}

func (s *AuthPermissionService) InvalidateRolePermissionsCache(ctx context.Context, role authz.Role) error {
	cacheKey := fmt.Sprintf(constants.CacheKeyRolePermissions, role)
	if err := s.cacheRepo.Del(ctx, cacheKey); err != nil {
		s.logger.Error("failed to invalidate role permissions cache", zap.String("role", role.String()), zap.Error(err))
		return err
	}
	s.logger.Info("role permissions cache invalidated", zap.String("role", role.String()))
	return nil
}
