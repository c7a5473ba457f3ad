package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"userdict/internal/config"
	"userdict/internal/dictionary"
	"userdict/internal/engine"
	"userdict/internal/metrics"
	"userdict/internal/repository/postgres"
	"userdict/internal/server"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting userdict")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully",
		zap.String("locale", cfg.Locale),
		zap.Int("max_word_length", cfg.MaxWordLength),
	)

	// Connect to database with retries
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Database migrations completed")

	// Change notifications need their own LISTEN session
	listener, err := postgres.NewListener(cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("Failed to start change listener", zap.Error(err))
	}

	metrics.Init()

	// Wire the dictionary
	wordRepo := postgres.NewWordRepo(db)
	dict := dictionary.New(engine.NewTrie(), wordRepo, listener, dictionary.Options{
		Locale:        cfg.Locale,
		MaxWordLength: cfg.MaxWordLength,
		QueueSize:     cfg.PersistQueueSize,
	}, logger)

	logger.Info("Dictionary loaded")

	srv := server.New(dict, logger)

	// Start periodic refresh job in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runRefreshJob(ctx, dict, cfg.ReloadInterval, logger)

	// Start server in background
	go func() {
		if err := srv.Start(cfg.HTTPAddr); err != nil {
			logger.Error("Server stopped", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("addr", cfg.HTTPAddr))

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping...")

	// Graceful shutdown
	if err := srv.Shutdown(); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	cancel()
	dict.Close()
	if err := listener.Close(); err != nil {
		logger.Error("Listener shutdown failed", zap.Error(err))
	}

	logger.Info("Stopped gracefully")
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		// Connection successful
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	// Run migrations
	if err := m.Up(); err != nil {
		if err == migrate.ErrNoChange {
			logger.Info("No new migrations to apply")
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Migrations applied successfully")
	return nil
}

// runRefreshJob periodically reloads the cache as a safety net for missed
// change notifications
func runRefreshJob(ctx context.Context, dict *dictionary.Dictionary, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		logger.Info("Periodic refresh disabled")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Refresh job stopped")
			return
		case <-ticker.C:
			if err := dict.Reload(); err != nil {
				logger.Error("Scheduled reload failed", zap.Error(err))
			}
		}
	}
}
