package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"aircon-admin/pkg/metrics"
)

// Prometheus records request count and latency per route template.
func Prometheus() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			metrics.ObserveHTTPRequest(
				c.Request().Method,
				path,
				strconv.Itoa(c.Response().Status),
				time.Since(start).Seconds(),
			)
			return nil
		}
	}
}
