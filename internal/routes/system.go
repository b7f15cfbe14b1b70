package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apperrors "aircon-admin/pkg/errors"
	"aircon-admin/pkg/utils"
)

const healthTimeout = 2 * time.Second

func runSystemRouter(e *echo.Echo, ping func(ctx context.Context) error, logger *zap.Logger) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", func(c echo.Context) error {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
			defer cancel()
			if err := ping(ctx); err != nil {
				return utils.ErrorResponse(c,
					apperrors.NewHttpError(http.StatusServiceUnavailable, "Dependencies are unavailable", err, nil),
					utils.Logger(c, logger),
				)
			}
		}
		return utils.SuccessResponse(c, map[string]string{"status": "ok"}, "Service is healthy", http.StatusOK)
	})
}
