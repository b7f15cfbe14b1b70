package routes

import (
	"aircon-admin/internal/authz"
	"aircon-admin/internal/controllers"
	"aircon-admin/internal/services"
	"aircon-admin/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runOrderRouter(secureGroup *echo.Group, orderService services.OrderServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	orderCtrl := controllers.NewOrderController(orderService, logger)

	orders := secureGroup.Group("/orders")
	{
		orders.GET("", orderCtrl.GetOrders, authMW.RequirePermission(authz.OrdersViewAny))
		orders.GET("/export", orderCtrl.ExportOrders, authMW.RequirePermission(authz.OrdersViewAny))
		orders.POST("/quote", orderCtrl.QuoteOrder, authMW.RequirePermission(authz.OrdersCreate))
		orders.POST("/bulk-delete", orderCtrl.DeleteOrders, authMW.RequirePermission(authz.OrdersDeleteAny))
		orders.POST("", orderCtrl.CreateOrder, authMW.RequirePermission(authz.OrdersCreate))
		orders.GET("/:id", orderCtrl.FindOrder, authMW.RequirePermission(authz.OrdersView))
		orders.PUT("/:id", orderCtrl.UpdateOrder, authMW.RequirePermission(authz.OrdersUpdate))
		orders.DELETE("/:id", orderCtrl.DeleteOrder, authMW.RequirePermission(authz.OrdersDelete))

		orders.POST("/:id/items", orderCtrl.AddItem, authMW.RequirePermission(authz.OrdersUpdate))
		orders.PUT("/:id/items/:itemId", orderCtrl.UpdateItem, authMW.RequirePermission(authz.OrdersUpdate))
		orders.DELETE("/:id/items/:itemId", orderCtrl.RemoveItem, authMW.RequirePermission(authz.OrdersUpdate))
	}
}
