package utils

import (
	"context"

	"aircon-admin/internal/authz"
	"aircon-admin/pkg/contextkeys"
	apperrors "aircon-admin/pkg/errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func WithActor(ctx context.Context, actor authz.Actor) context.Context {
	return context.WithValue(ctx, contextkeys.ActorKey, actor)
}

func GetActorFromCtx(ctx context.Context) (authz.Actor, error) {
	actor, ok := ctx.Value(contextkeys.ActorKey).(authz.Actor)
	if !ok {
		return authz.Actor{}, apperrors.ErrActorNotFoundInContext
	}
	return actor, nil
}

// Logger returns the request-scoped logger set by the request logger middleware, or fallback.
func Logger(c echo.Context, fallback *zap.Logger) *zap.Logger {
	if l, ok := c.Get(contextkeys.LoggerKey).(*zap.Logger); ok && l != nil {
		return l
	}
	return fallback
}
