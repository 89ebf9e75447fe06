package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"blog-analytics-service/internal/config"
	"blog-analytics-service/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const (
	exitSuccess = 0
	exitFailure = 1
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 || (args[0] != "up" && args[0] != "down") {
		fmt.Fprintln(os.Stderr, "Usage: migrate <up|down>")
		return exitFailure
	}
	direction := args[0]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return exitFailure
	}

	log, err := logger.New(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		return exitFailure
	}
	defer func() { _ = log.Sync() }()

	if err := migrateDB(cfg.Database.ConnString(), migrationsPath(), direction, log); err != nil {
		log.Error("migration failed", zap.String("direction", direction), zap.Error(err))
		return exitFailure
	}
	return exitSuccess
}

// migrationsPath honours MIGRATIONS_PATH and falls back to ./migrations.
func migrationsPath() string {
	path := os.Getenv("MIGRATIONS_PATH")
	if path == "" {
		path = "migrations"
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path
}

func migrateDB(dsn, path, direction string, log *zap.Logger) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open database connection: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+path, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	if direction == "up" {
		err = m.Up()
	} else {
		err = m.Down()
	}
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("no migrations to apply", zap.String("migrations_path", path))
		return nil
	}
	if err != nil {
		return err
	}

	version, dirty, _ := m.Version()
	log.Info("migrations applied",
		zap.String("direction", direction),
		zap.String("migrations_path", path),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}
