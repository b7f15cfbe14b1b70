package controllers

import (
	"net/http"
	"time"

	"aircon-admin/internal/authz"
	"aircon-admin/internal/dto"
	"aircon-admin/internal/entities"
	"aircon-admin/internal/services"
	apperrors "aircon-admin/pkg/errors"
	"aircon-admin/pkg/service"
	"aircon-admin/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const refreshTokenCookie = "refreshToken"

type AuthController struct {
	authService           services.AuthServiceInterface
	authPermissionService services.AuthPermissionServiceInterface
	jwtSvc                service.JWTService
	logger                *zap.Logger
}

func NewAuthController(
	authService services.AuthServiceInterface,
	authPermissionService services.AuthPermissionServiceInterface,
	jwtSvc service.JWTService,
	logger *zap.Logger,
) *AuthController {
	return &AuthController{
		authService:           authService,
		authPermissionService: authPermissionService,
		jwtSvc:                jwtSvc,
		logger:                logger,
	}
}

func (ctrl *AuthController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, utils.Logger(c, ctrl.logger))
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	user, err := ctrl.authService.Login(c.Request().Context(), payload)
	if err != nil {
		utils.Logger(c, ctrl.logger).Info("Login: rejected", zap.String("email", payload.Email), zap.Error(err))
		return ctrl.errorResponse(c, err)
	}

	return ctrl.generateTokensAndRespond(c, user, "Signed in successfully")
}

func (ctrl *AuthController) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     refreshTokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	return utils.SuccessResponse(c, nil, "Signed out", http.StatusOK)
}

// RefreshToken issues a new token pair from the refreshToken cookie.
func (ctrl *AuthController) RefreshToken(c echo.Context) error {
	cookie, err := c.Cookie(refreshTokenCookie)
	if err != nil || cookie.Value == "" {
		return ctrl.errorResponse(c, apperrors.ErrUnauthorized)
	}

	claims, err := ctrl.jwtSvc.ValidateToken(cookie.Value)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	if !claims.IsRefreshToken {
		return ctrl.errorResponse(c, apperrors.ErrTokenIsNotRefresh)
	}

	user, err := ctrl.authService.GetUserByID(c.Request().Context(), claims.UserID)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return ctrl.generateTokensAndRespond(c, user, "Tokens refreshed")
}

func (ctrl *AuthController) Me(c echo.Context) error {
	actor, err := utils.GetActorFromCtx(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, apperrors.ErrUnauthorized)
	}

	user, err := ctrl.authService.GetUserByID(c.Request().Context(), actor.ID)
	if err != nil {
		utils.Logger(c, ctrl.logger).Error("Me: user lookup failed", zap.Uint64("userID", actor.ID), zap.Error(err))
		return ctrl.errorResponse(c, err)
	}

	permissions, err := ctrl.authPermissionService.GetRolePermissionsNames(c.Request().Context(), actor.Role)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, publicUser(user, actor.Role, permissions), "Profile loaded", http.StatusOK)
}

func (ctrl *AuthController) generateTokensAndRespond(c echo.Context, user *entities.User, message string) error {
	role, _ := authz.ParseRole(user.RoleName)

	permissions, err := ctrl.authPermissionService.GetRolePermissionsNames(c.Request().Context(), role)
	if err != nil {
		utils.Logger(c, ctrl.logger).Error("could not load permissions for token response", zap.Uint64("userID", user.ID), zap.Error(err))
		permissions = []string{}
	}

	accessToken, refreshToken, err := ctrl.jwtSvc.GenerateTokens(user.ID, user.Name, role.String())
	if err != nil {
		utils.Logger(c, ctrl.logger).Error("could not sign tokens", zap.Uint64("userID", user.ID), zap.Error(err))
		return ctrl.errorResponse(c, apperrors.ErrOperationFailed)
	}

	c.SetCookie(&http.Cookie{
		Name:     refreshTokenCookie,
		Value:    refreshToken,
		Path:     "/",
		Expires:  time.Now().Add(ctrl.jwtSvc.GetRefreshTokenTTL()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	response := dto.AuthResponseDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         publicUser(user, role, permissions),
	}
	return utils.SuccessResponse(c, response, message, http.StatusOK)
}

func publicUser(user *entities.User, role authz.Role, permissions []string) dto.UserPublicDTO {
	if permissions == nil {
		permissions = []string{}
	}
	fields := authz.EditableFields(role)
	editable := make([]string, len(fields))
	for i, f := range fields {
		editable[i] = string(f)
	}
	return dto.UserPublicDTO{
		ID:                  user.ID,
		Name:                user.Name,
		Email:               user.Email,
		Role:                role.String(),
		Permissions:         permissions,
		EditableOrderFields: editable,
	}
}
