package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aircon-admin/internal/routes"
	"aircon-admin/pkg/config"
	"aircon-admin/pkg/database/postgresql"
	apperrors "aircon-admin/pkg/errors"
	applogger "aircon-admin/pkg/logger"
	"aircon-admin/pkg/service"
	"aircon-admin/pkg/utils"
	"aircon-admin/pkg/validation"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Internal server error", err, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{echo.HeaderContentDisposition},
	}))
	e.Use(middleware.ContextTimeout(cfg.Server.RequestTimeout))

	dbConn, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		logger.Fatal("could not connect to PostgreSQL", zap.Error(err))
	}
	defer dbConn.Close()

	if cfg.Postgres.AutoMigrate {
		if err := postgresql.Migrate(ctx, dbConn, logger); err != nil {
			logger.Fatal("could not migrate the database", zap.Error(err))
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("could not connect to Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL, logger.Named("jwt"))

	loggers := &routes.Loggers{
		Main:    logger,
		Auth:    logger.Named("auth"),
		Order:   logger.Named("order"),
		Catalog: logger.Named("catalog"),
	}
	svcs := routes.NewServices(dbConn, redisClient, cfg, loggers)
	routes.InitRouter(e, svcs, jwtSvc, loggers)

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped unexpectedly", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
