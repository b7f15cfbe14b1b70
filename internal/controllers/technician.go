package controllers

import (
	"net/http"

	"aircon-admin/internal/dto"
	"aircon-admin/internal/services"
	"aircon-admin/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type TechnicianController struct {
	technicianService services.TechnicianServiceInterface
	logger            *zap.Logger
}

func NewTechnicianController(technicianService services.TechnicianServiceInterface, logger *zap.Logger) *TechnicianController {
	return &TechnicianController{technicianService: technicianService, logger: logger}
}

func (c *TechnicianController) errorResponse(ctx echo.Context, err error) error {
	return utils.ErrorResponse(ctx, err, utils.Logger(ctx, c.logger))
}

func (c *TechnicianController) GetTechnicians(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	res, total, err := c.technicianService.GetTechnicians(ctx.Request().Context(), filter)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Technicians loaded", http.StatusOK, total)
}

func (c *TechnicianController) FindTechnician(ctx echo.Context) error {
	id, err := pathID(ctx, "id", "technician")
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	res, err := c.technicianService.FindTechnician(ctx.Request().Context(), id)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Technician loaded", http.StatusOK)
}

func (c *TechnicianController) CreateTechnician(ctx echo.Context) error {
	var payload dto.CreateTechnicianDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return c.errorResponse(ctx, err)
	}
	res, err := c.technicianService.CreateTechnician(ctx.Request().Context(), payload)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Technician created", http.StatusCreated)
}

func (c *TechnicianController) UpdateTechnician(ctx echo.Context) error {
	id, err := pathID(ctx, "id", "technician")
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	var payload dto.UpdateTechnicianDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return c.errorResponse(ctx, err)
	}
	res, err := c.technicianService.UpdateTechnician(ctx.Request().Context(), id, payload)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Technician updated", http.StatusOK)
}

func (c *TechnicianController) DeleteTechnician(ctx echo.Context) error {
	id, err := pathID(ctx, "id", "technician")
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	if err := c.technicianService.DeleteTechnician(ctx.Request().Context(), id); err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, nil, "Technician deleted", http.StatusOK)
}
