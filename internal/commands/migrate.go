package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/SscSPs/expense_bot/internal/platform/config"
	"github.com/SscSPs/expense_bot/internal/repositories/database/sqlite"
	"github.com/SscSPs/expense_bot/pkg/database"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations to the configured database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			logger := newLogger(cfg)

			switch cfg.DataBackend {
			case config.BackendPostgres:
				applied, err := database.RunPostgresMigrations(cfg.DatabaseURL, cfg.MigrationsPath)
				if err != nil {
					return err
				}
				logger.Info("Postgres migrations finished", slog.Bool("applied", applied))
			case config.BackendSQLite:
				db, err := sqlite.Open(cfg.SQLitePath)
				if err != nil {
					return err
				}
				if err := db.Close(); err != nil {
					return err
				}
				logger.Info("SQLite migrations finished", slog.String("path", cfg.SQLitePath))
			default:
				logger.Info("Nothing to migrate", slog.String("backend", cfg.DataBackend))
			}
			return nil
		},
	}
}
