package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/tradegate/trading_erp/internal/core/services"
	"github.com/tradegate/trading_erp/internal/handlers"
	"github.com/tradegate/trading_erp/internal/middleware"
	"github.com/tradegate/trading_erp/internal/platform/config"
	"github.com/tradegate/trading_erp/internal/platform/validation"
	"github.com/tradegate/trading_erp/internal/repositories/database/pgsql"
	"github.com/tradegate/trading_erp/pkg/database"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	if err := database.RunMigrations("file://migrations", cfg.DatabaseURL); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Database migrations applied.")

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := validation.RegisterCustomValidators(); err != nil {
		logger.Error("Failed to register custom validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryContainer(dbPool)
	serviceContainer := services.NewServiceContainer(services.ContainerDeps{
		AccountRepo:      repos.Account,
		JournalRepo:      repos.Journal,
		PeriodRepo:       repos.Period,
		ReportingRepo:    repos.Reporting,
		SettingsRepo:     repos.Settings,
		MemberRepo:       repos.Member,
		SettingsCacheTTL: cfg.SettingsCacheTTL,
	})

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.MetricsMiddleware(),
		cors.Default(),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit format", slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

	var dbCheck func(context.Context) error
	if cfg.EnableDBCheck {
		dbCheck = dbPool.Ping
	}
	handlers.RegisterRoutes(r, cfg, serviceContainer, dbCheck)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
