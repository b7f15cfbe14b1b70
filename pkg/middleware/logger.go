package middleware

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"aircon-admin/pkg/contextkeys"
)

const HeaderRequestID = "X-Request-ID"

// InjectLogger gives every request an id and a logger tagged with it, then logs the outcome.
func InjectLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			requestID := c.Request().Header.Get(HeaderRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			c.Response().Header().Set(HeaderRequestID, requestID)

			reqLogger := logger.With(zap.String("requestID", requestID))
			c.Set(contextkeys.LoggerKey, reqLogger)
			c.SetRequest(c.Request().WithContext(context.WithValue(c.Request().Context(), contextkeys.RequestIDKey, requestID)))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			reqLogger.Info("request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
			)
			return nil
		}
	}
}
