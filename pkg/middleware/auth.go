package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"aircon-admin/internal/authz"
	apperrors "aircon-admin/pkg/errors"
	"aircon-admin/pkg/service"
	"aircon-admin/pkg/utils"
)

// PermissionChecker resolves whether an actor holds a capability grant.
type PermissionChecker interface {
	Can(ctx context.Context, actor authz.Actor, permission string) (bool, error)
}

type AuthMiddleware struct {
	jwtService  service.JWTService
	permissions PermissionChecker
	logger      *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, permissions PermissionChecker, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtSvc,
		permissions: permissions,
		logger:      logger,
	}
}

// Auth validates the bearer access token and stores the actor in the request context.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := utils.Logger(c, m.logger)

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			logger.Warn("auth: empty Authorization header")
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			logger.Warn("auth: malformed Authorization header")
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, logger)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			logger.Warn("auth: token rejected", zap.Error(err))
			return utils.ErrorResponse(c, err, logger)
		}

		if claims.IsRefreshToken {
			logger.Warn("auth: refresh token used for access")
			return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess, logger)
		}

		role, ok := authz.ParseRole(claims.Role)
		if !ok {
			logger.Warn("auth: token carries unknown role", zap.String("role", claims.Role))
			return utils.ErrorResponse(c, apperrors.ErrForbidden, logger)
		}

		actor := authz.Actor{ID: claims.UserID, Name: claims.Name, Role: role}
		c.SetRequest(c.Request().WithContext(utils.WithActor(c.Request().Context(), actor)))

		logger.Debug("auth: actor authenticated", zap.Uint64("userID", actor.ID), zap.String("role", role.String()))
		return next(c)
	}
}

// RequirePermission rejects the request with 403 unless the actor's role grants permission.
// It must run after Auth.
func (m *AuthMiddleware) RequirePermission(permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			logger := utils.Logger(c, m.logger)

			actor, err := utils.GetActorFromCtx(c.Request().Context())
			if err != nil {
				return utils.ErrorResponse(c, apperrors.ErrUnauthorized, logger)
			}

			allowed, err := m.permissions.Can(c.Request().Context(), actor, permission)
			if err != nil {
				return utils.ErrorResponse(c, err, logger)
			}
			if !allowed {
				logger.Info("auth: permission denied",
					zap.Uint64("userID", actor.ID),
					zap.String("role", actor.Role.String()),
					zap.String("permission", permission),
				)
				return utils.ErrorResponse(c, apperrors.ErrForbidden, logger)
			}
			return next(c)
		}
	}
}
