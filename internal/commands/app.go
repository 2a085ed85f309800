package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	portsrepo "github.com/SscSPs/expense_bot/internal/core/ports/repositories"
	"github.com/SscSPs/expense_bot/internal/events"
	"github.com/SscSPs/expense_bot/internal/platform/config"
	"github.com/SscSPs/expense_bot/internal/repositories/database/pgsql"
	"github.com/SscSPs/expense_bot/internal/repositories/database/sqlite"
	"github.com/SscSPs/expense_bot/internal/repositories/memory"
	"github.com/SscSPs/expense_bot/pkg/database"
)

// newLogger builds the JSON logger and makes it the process default.
func newLogger(cfg *config.Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	return logger
}

// openRepositories connects the configured backend. The returned func releases it.
func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.DataBackend {
	case config.BackendPostgres:
		applied, err := database.RunPostgresMigrations(cfg.DatabaseURL, cfg.MigrationsPath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		if applied {
			logger.Info("Database migrations applied successfully.")
		} else {
			logger.Info("No new migrations to apply.")
		}

		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		return pgsql.NewRepositoryProvider(pool), func() { database.ClosePgxPool(pool) }, nil

	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("SQLite database opened", slog.String("path", cfg.SQLitePath))
		return sqlite.NewRepositoryProvider(db), func() {
			if err := db.Close(); err != nil {
				logger.Error("Error closing SQLite database", slog.String("error", err.Error()))
			}
		}, nil

	case config.BackendMemory:
		return memory.NewRepositoryProvider(), func() {}, nil

	default:
		return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
	}
}

// newPublisher connects to AMQP when configured and falls back to dropping events.
func newPublisher(cfg *config.Config, logger *slog.Logger) events.Publisher {
	if cfg.AMQPURL == "" {
		return events.NoopPublisher{}
	}
	publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey)
	if err != nil {
		logger.Error("Failed to connect event publisher, ledger events disabled", slog.String("error", err.Error()))
		return events.NoopPublisher{}
	}
	logger.Info("Ledger events enabled", slog.String("exchange", cfg.AMQPExchange))
	return publisher
}
