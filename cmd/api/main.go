package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	analyticsHttp "blog-analytics-service/internal/analytics/adapters/http/fiber"
	analyticsRepoPg "blog-analytics-service/internal/analytics/adapters/postgres"
	"blog-analytics-service/internal/analytics/adapters/resilient"
	analyticsUsecase "blog-analytics-service/internal/analytics/core/usecase"
	"blog-analytics-service/internal/config"
	"blog-analytics-service/internal/logger"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	_ "blog-analytics-service/docs"
)

// @title Blog Analytics API
// @version 1.0
// @description Read-only analytics over blog views: grouped views, top-10 rankings and period-over-period performance.
// @BasePath /
func main() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	// DB connection
	db, err := sql.Open("postgres", cfg.Database.ConnString())
	if err != nil {
		log.Fatal("failed to open postgres", zap.Error(err))
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		log.Fatal("failed to ping postgres", zap.Error(err))
	}

	// Repository, wrapped in the circuit breaker
	repository := analyticsRepoPg.NewAnalyticsRepository(analyticsRepoPg.NewSQLDB(db))
	reader := resilient.NewReader(repository, resilient.Config{
		Name:             cfg.Breaker.Name,
		MaxRequests:      cfg.Breaker.MaxRequests,
		Interval:         cfg.Breaker.Interval,
		Timeout:          cfg.Breaker.Timeout,
		FailureThreshold: cfg.Breaker.FailureThreshold,
	}, log)

	// Usecases
	service := analyticsUsecase.NewAnalyticsService(reader, log)

	// HTTP (Fiber) app + handlers
	app := fiber.New(fiber.Config{
		AppName:               cfg.Service.Name,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(analyticsHttp.RequestLogger(log))

	analyticsHandler := analyticsHttp.NewAnalyticsHandler(service, analyticsHttp.HandlerConfig{
		Pagination: analyticsHttp.PaginationConfig{
			DefaultLimit: cfg.Pagination.DefaultLimit,
			MaxLimit:     cfg.Pagination.MaxLimit,
		},
		Debug:        cfg.Service.Debug,
		QueryTimeout: cfg.Database.QueryTimeout,
		Logger:       log,
	})
	analyticsHandler.RegisterRoutes(app)

	healthHandler := analyticsHttp.NewHealthHandler(repository, reader)
	app.Get("/health", healthHandler.Health)

	// Prometheus
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	addr := cfg.Service.Addr()
	go func() {
		if err := app.Listen(addr); err != nil {
			log.Error("fiber stopped", zap.Error(err))
		}
	}()

	log.Info("server started", zap.String("addr", addr), zap.Bool("debug", cfg.Service.Debug))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Service.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error("fiber shutdown error", zap.Error(err))
	}

	log.Info("server exiting")
}
