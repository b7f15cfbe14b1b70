package routes

import (
	"aircon-admin/internal/authz"
	"aircon-admin/internal/controllers"
	"aircon-admin/internal/services"
	"aircon-admin/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runTechnicianRouter(secureGroup *echo.Group, technicianService services.TechnicianServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	ctrl := controllers.NewTechnicianController(technicianService, logger)

	technicians := secureGroup.Group("/technicians")
	{
		technicians.GET("", ctrl.GetTechnicians, authMW.RequirePermission(authz.TechniciansViewAny))
		technicians.POST("", ctrl.CreateTechnician, authMW.RequirePermission(authz.TechniciansCreate))
		technicians.GET("/:id", ctrl.FindTechnician, authMW.RequirePermission(authz.TechniciansView))
		technicians.PUT("/:id", ctrl.UpdateTechnician, authMW.RequirePermission(authz.TechniciansUpdate))
		technicians.DELETE("/:id", ctrl.DeleteTechnician, authMW.RequirePermission(authz.TechniciansDelete))
	}
}
