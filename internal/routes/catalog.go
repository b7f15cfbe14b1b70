package routes

import (
	"aircon-admin/internal/authz"
	"aircon-admin/internal/controllers"
	"aircon-admin/internal/services"
	"aircon-admin/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runCategoryRouter(secureGroup *echo.Group, catalogService services.CatalogServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	ctrl := controllers.NewCatalogController(catalogService, logger)

	categories := secureGroup.Group("/categories")
	{
		categories.GET("", ctrl.GetCategories, authMW.RequirePermission(authz.CategoriesViewAny))
		categories.POST("", ctrl.CreateCategory, authMW.RequirePermission(authz.CategoriesCreate))
		categories.GET("/:id", ctrl.FindCategory, authMW.RequirePermission(authz.CategoriesView))
		categories.PUT("/:id", ctrl.UpdateCategory, authMW.RequirePermission(authz.CategoriesUpdate))
		categories.DELETE("/:id", ctrl.DeleteCategory, authMW.RequirePermission(authz.CategoriesDelete))
	}
}

func runServiceRouter(secureGroup *echo.Group, catalogService services.CatalogServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	ctrl := controllers.NewCatalogController(catalogService, logger)

	svc := secureGroup.Group("/services")
	{
		svc.GET("", ctrl.GetServices, authMW.RequirePermission(authz.ServicesViewAny))
		svc.POST("", ctrl.CreateService, authMW.RequirePermission(authz.ServicesCreate))
		svc.GET("/:id", ctrl.FindService, authMW.RequirePermission(authz.ServicesView))
		svc.PUT("/:id", ctrl.UpdateService, authMW.RequirePermission(authz.ServicesUpdate))
		svc.DELETE("/:id", ctrl.DeleteService, authMW.RequirePermission(authz.ServicesDelete))
	}
}
