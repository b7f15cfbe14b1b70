package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"aircon-admin/internal/repositories"
	"aircon-admin/internal/services"
	"aircon-admin/pkg/config"
	"aircon-admin/pkg/database/postgresql"
	applogger "aircon-admin/pkg/logger"
	"aircon-admin/seeders"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	runAccess := flag.Bool("access", false, "Seed roles, permissions and default grants")
	runUsers := flag.Bool("users", false, "Seed demo accounts (needs -access on an empty database)")
	runCatalog := flag.Bool("catalog", false, "Seed demo categories and services")
	runAll := flag.Bool("all", false, "Run every seeder (same as -access -users -catalog)")
	password := flag.String("password", "password", "Password for the demo accounts")
	flag.Parse()

	if !*runAccess && !*runUsers && !*runCatalog && !*runAll {
		fmt.Fprintln(os.Stderr, "No seeder selected. Available flags:")
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr, "\nExample:\n  go run ./seeders/cmd/seed -all")
		os.Exit(2)
	}

	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log).Named("seed")
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		logger.Fatal("could not connect to PostgreSQL", zap.Error(err))
	}
	defer dbPool.Close()

	if err := postgresql.Migrate(ctx, dbPool, logger); err != nil {
		logger.Fatal("could not migrate the database", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	permissions := services.NewAuthPermissionService(
		repositories.NewPermissionRepository(dbPool, logger),
		repositories.NewRedisCacheRepository(redisClient),
		logger,
		cfg.Auth.PermissionsCacheTTL,
	)
	seeder := seeders.NewSeeder(dbPool, permissions, logger)

	if *runAll || *runAccess {
		if err := seeder.SeedAccessControl(ctx); err != nil {
			logger.Fatal("access control seeding failed", zap.Error(err))
		}
	}
	if *runAll || *runUsers {
		if err := seeder.SeedUsers(ctx, *password); err != nil {
			logger.Fatal("user seeding failed", zap.Error(err))
		}
	}
	if *runAll || *runCatalog {
		if err := seeder.SeedCatalog(ctx); err != nil {
			logger.Fatal("catalog seeding failed", zap.Error(err))
		}
	}

	logger.Info("seeding finished")
}
