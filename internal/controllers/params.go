package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "aircon-admin/pkg/errors"
)

// pathID reads a positive numeric path parameter. label names it in the 400 message.
func pathID(ctx echo.Context, param, label string) (uint64, error) {
	raw := ctx.Param(param)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err == nil && id == 0 {
		err = strconv.ErrRange
	}
	if err != nil {
		return 0, apperrors.NewHttpError(
			http.StatusBadRequest,
			"Invalid "+label+" ID format",
			err,
			map[string]interface{}{"param": raw},
		)
	}
	return id, nil
}

// bindAndValidate decodes the JSON body into payload and runs the echo validator on it.
func bindAndValidate(ctx echo.Context, payload interface{}) error {
	if err := ctx.Bind(payload); err != nil {
		return apperrors.NewHttpError(http.StatusBadRequest, "Invalid request body", err, nil)
	}
	return ctx.Validate(payload)
}
