package controllers

import (
	"net/http"

	"aircon-admin/internal/dto"
	"aircon-admin/internal/services"
	"aircon-admin/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CatalogController serves categories and the services listed under them.
type CatalogController struct {
	catalogService services.CatalogServiceInterface
	logger         *zap.Logger
}

func NewCatalogController(catalogService services.CatalogServiceInterface, logger *zap.Logger) *CatalogController {
	return &CatalogController{catalogService: catalogService, logger: logger}
}

func (c *CatalogController) errorResponse(ctx echo.Context, err error) error {
	return utils.ErrorResponse(ctx, err, utils.Logger(ctx, c.logger))
}

func (c *CatalogController) GetCategories(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	res, total, err := c.catalogService.GetCategories(ctx.Request().Context(), filter)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Categories loaded", http.StatusOK, total)
}

func (c *CatalogController) FindCategory(ctx echo.Context) error {
	id, err := pathID(ctx, "id", "category")
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	res, err := c.catalogService.FindCategory(ctx.Request().Context(), id)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Category loaded", http.StatusOK)
}

func (c *CatalogController) CreateCategory(ctx echo.Context) error {
	var payload dto.CreateCategoryDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return c.errorResponse(ctx, err)
	}
	res, err := c.catalogService.CreateCategory(ctx.Request().Context(), payload)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Category created", http.StatusCreated)
}

func (c *CatalogController) UpdateCategory(ctx echo.Context) error {
	id, err := pathID(ctx, "id", "category")
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	var payload dto.UpdateCategoryDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return c.errorResponse(ctx, err)
	}
	res, err := c.catalogService.UpdateCategory(ctx.Request().Context(), id, payload)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Category updated", http.StatusOK)
}

func (c *CatalogController) DeleteCategory(ctx echo.Context) error {
	id, err := pathID(ctx, "id", "category")
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	if err := c.catalogService.DeleteCategory(ctx.Request().Context(), id); err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, nil, "Category deleted", http.StatusOK)
}

func (c *CatalogController) GetServices(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	res, total, err := c.catalogService.GetServices(ctx.Request().Context(), filter)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Services loaded", http.StatusOK, total)
}

func (c *CatalogController) FindService(ctx echo.Context) error {
	id, err := pathID(ctx, "id", "service")
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	res, err := c.catalogService.FindService(ctx.Request().Context(), id)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Service loaded", http.StatusOK)
}

func (c *CatalogController) CreateService(ctx echo.Context) error {
	var payload dto.CreateServiceDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return c.errorResponse(ctx, err)
	}
	res, err := c.catalogService.CreateService(ctx.Request().Context(), payload)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Service created", http.StatusCreated)
}

func (c *CatalogController) UpdateService(ctx echo.Context) error {
	id, err := pathID(ctx, "id", "service")
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	var payload dto.UpdateServiceDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return c.errorResponse(ctx, err)
	}
	res, err := c.catalogService.UpdateService(ctx.Request().Context(), id, payload)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Service updated", http.StatusOK)
}

func (c *CatalogController) DeleteService(ctx echo.Context) error {
	id, err := pathID(ctx, "id", "service")
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	if err := c.catalogService.DeleteService(ctx.Request().Context(), id); err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, nil, "Service deleted", http.StatusOK)
}
