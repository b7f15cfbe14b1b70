package routes

import (
	"aircon-admin/internal/controllers"
	"aircon-admin/internal/services"
	"aircon-admin/pkg/middleware"
	"aircon-admin/pkg/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runAuthRouter(
	api *echo.Group,
	authService services.AuthServiceInterface,
	authPermissionService services.AuthPermissionServiceInterface,
	jwtSvc service.JWTService,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	authCtrl := controllers.NewAuthController(authService, authPermissionService, jwtSvc, logger)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/refresh_token", authCtrl.RefreshToken)
		authGroup.POST("/logout", authCtrl.Logout)
		authGroup.GET("/me", authCtrl.Me, authMW.Auth)
	}
}
