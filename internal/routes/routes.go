package routes

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"aircon-admin/internal/repositories"
	"aircon-admin/internal/services"
	"aircon-admin/pkg/config"
	"aircon-admin/pkg/middleware"
	"aircon-admin/pkg/service"
)

type Loggers struct {
	Main    *zap.Logger
	Auth    *zap.Logger
	Order   *zap.Logger
	Catalog *zap.Logger
}

// Services is everything the HTTP layer calls into. Ping backs the health check.
type Services struct {
	Auth           services.AuthServiceInterface
	AuthPermission services.AuthPermissionServiceInterface
	Order          services.OrderServiceInterface
	Catalog        services.CatalogServiceInterface
	Technician     services.TechnicianServiceInterface
	Ping           func(ctx context.Context) error
}

// NewServices wires repositories and services over the Postgres pool and the Redis cache.
func NewServices(dbConn *pgxpool.Pool, redisClient *redis.Client, cfg *config.Config, loggers *Loggers) *Services {
	txManager := repositories.NewTxManager(dbConn)

	// --- repositories ---
	userRepo := repositories.NewUserRepository(dbConn, loggers.Auth)
	permissionRepo := repositories.NewPermissionRepository(dbConn, loggers.Auth)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	orderRepo := repositories.NewOrderRepository(dbConn, loggers.Order)
	categoryRepo := repositories.NewCategoryRepository(dbConn, loggers.Catalog)
	serviceRepo := repositories.NewServiceRepository(dbConn, loggers.Catalog)
	technicianRepo := repositories.NewTechnicianRepository(dbConn, loggers.Catalog)

	// --- services ---
	return &Services{
		Auth:           services.NewAuthService(userRepo, loggers.Auth),
		AuthPermission: services.NewAuthPermissionService(permissionRepo, cacheRepo, loggers.Auth, cfg.Auth.PermissionsCacheTTL),
		Order:          services.NewOrderService(txManager, orderRepo, serviceRepo, loggers.Order),
		Catalog:        services.NewCatalogService(txManager, categoryRepo, serviceRepo, orderRepo, loggers.Catalog),
		Technician:     services.NewTechnicianService(txManager, technicianRepo, orderRepo, loggers.Catalog),
		Ping: func(ctx context.Context) error {
			if err := dbConn.Ping(ctx); err != nil {
				return fmt.Errorf("postgres: %w", err)
			}
			if err := redisClient.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis: %w", err)
			}
			return nil
		},
	}
}

func InitRouter(e *echo.Echo, svcs *Services, jwtSvc service.JWTService, loggers *Loggers) {
	loggers.Main.Info("InitRouter: registering routes")

	e.Use(middleware.InjectLogger(loggers.Main))
	e.Use(middleware.Prometheus())

	runSystemRouter(e, svcs.Ping, loggers.Main)

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, svcs.AuthPermission, loggers.Auth)

	runAuthRouter(api, svcs.Auth, svcs.AuthPermission, jwtSvc, loggers.Auth, authMW)

	secureGroup := api.Group("", authMW.Auth)
	runOrderRouter(secureGroup, svcs.Order, loggers.Order, authMW)
	runCategoryRouter(secureGroup, svcs.Catalog, loggers.Catalog, authMW)
	runServiceRouter(secureGroup, svcs.Catalog, loggers.Catalog, authMW)
	runTechnicianRouter(secureGroup, svcs.Technician, loggers.Catalog, authMW)

	loggers.Main.Info("InitRouter: routes registered", zap.Int("count", len(e.Routes())))
}
