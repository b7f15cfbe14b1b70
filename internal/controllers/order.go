package controllers

import (
	"net/http"

	"aircon-admin/internal/dto"
	"aircon-admin/internal/services"
	"aircon-admin/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type OrderController struct {
	orderService services.OrderServiceInterface
	logger       *zap.Logger
}

func NewOrderController(orderService services.OrderServiceInterface, logger *zap.Logger) *OrderController {
	return &OrderController{
		orderService: orderService,
		logger:       logger,
	}
}

func (c *OrderController) errorResponse(ctx echo.Context, err error) error {
	return utils.ErrorResponse(ctx, err, utils.Logger(ctx, c.logger))
}

func (c *OrderController) GetOrders(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	actor, err := utils.GetActorFromCtx(reqCtx)
	if err != nil {
		return c.errorResponse(ctx, err)
	}

	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	res, total, err := c.orderService.GetOrders(reqCtx, actor, filter)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Orders loaded", http.StatusOK, total)
}

func (c *OrderController) FindOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	actor, err := utils.GetActorFromCtx(reqCtx)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	id, err := pathID(ctx, "id", "order")
	if err != nil {
		return c.errorResponse(ctx, err)
	}

	res, err := c.orderService.FindOrder(reqCtx, actor, id)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Order loaded", http.StatusOK)
}

func (c *OrderController) CreateOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	actor, err := utils.GetActorFromCtx(reqCtx)
	if err != nil {
		return c.errorResponse(ctx, err)
	}

	var payload dto.CreateOrderDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return c.errorResponse(ctx, err)
	}

	res, err := c.orderService.CreateOrder(reqCtx, actor, payload)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Order created", http.StatusCreated)
}

func (c *OrderController) UpdateOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	actor, err := utils.GetActorFromCtx(reqCtx)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	id, err := pathID(ctx, "id", "order")
	if err != nil {
		return c.errorResponse(ctx, err)
	}

	var payload dto.UpdateOrderDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return c.errorResponse(ctx, err)
	}

	res, err := c.orderService.UpdateOrder(reqCtx, actor, id, payload)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Order updated", http.StatusOK)
}

func (c *OrderController) DeleteOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	actor, err := utils.GetActorFromCtx(reqCtx)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	id, err := pathID(ctx, "id", "order")
	if err != nil {
		return c.errorResponse(ctx, err)
	}

	if err := c.orderService.DeleteOrder(reqCtx, actor, id); err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, nil, "Order deleted", http.StatusOK)
}

func (c *OrderController) DeleteOrders(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	actor, err := utils.GetActorFromCtx(reqCtx)
	if err != nil {
		return c.errorResponse(ctx, err)
	}

	var payload dto.BulkDeleteOrdersDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return c.errorResponse(ctx, err)
	}

	deleted, err := c.orderService.DeleteOrders(reqCtx, actor, payload.IDs)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, dto.BulkDeleteResultDTO{Deleted: deleted}, "Orders deleted", http.StatusOK)
}

func (c *OrderController) QuoteOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	actor, err := utils.GetActorFromCtx(reqCtx)
	if err != nil {
		return c.errorResponse(ctx, err)
	}

	var payload dto.QuoteOrderDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return c.errorResponse(ctx, err)
	}

	res, err := c.orderService.QuoteOrder(reqCtx, actor, payload)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Quote calculated", http.StatusOK)
}

func (c *OrderController) AddItem(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	actor, err := utils.GetActorFromCtx(reqCtx)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	orderID, err := pathID(ctx, "id", "order")
	if err != nil {
		return c.errorResponse(ctx, err)
	}

	var payload dto.AddOrderItemDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return c.errorResponse(ctx, err)
	}

	res, err := c.orderService.AddItem(reqCtx, actor, orderID, payload)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Item added", http.StatusCreated)
}

func (c *OrderController) UpdateItem(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	actor, err := utils.GetActorFromCtx(reqCtx)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	orderID, err := pathID(ctx, "id", "order")
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	itemID, err := pathID(ctx, "itemId", "item")
	if err != nil {
		return c.errorResponse(ctx, err)
	}

	var payload dto.UpdateOrderItemDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return c.errorResponse(ctx, err)
	}

	res, err := c.orderService.UpdateItem(reqCtx, actor, orderID, itemID, payload)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Item updated", http.StatusOK)
}

func (c *OrderController) RemoveItem(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	actor, err := utils.GetActorFromCtx(reqCtx)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	orderID, err := pathID(ctx, "id", "order")
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	itemID, err := pathID(ctx, "itemId", "item")
	if err != nil {
		return c.errorResponse(ctx, err)
	}

	res, err := c.orderService.RemoveItem(reqCtx, actor, orderID, itemID)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Item removed", http.StatusOK)
}

// ExportOrders streams every visible order matching the list filters as an xlsx workbook.
func (c *OrderController) ExportOrders(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	actor, err := utils.GetActorFromCtx(reqCtx)
	if err != nil {
		return c.errorResponse(ctx, err)
	}

	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	orders, err := c.orderService.ExportOrders(reqCtx, actor, filter)
	if err != nil {
		return c.errorResponse(ctx, err)
	}

	return c.respondWithXLSX(ctx, orders, actor.Role)
}
