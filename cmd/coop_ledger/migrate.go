package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/coop_ledger/pkg/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or revert database migrations",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(database.MigrateUp), string(database.MigrateDown)},
	RunE: func(cmd *cobra.Command, args []string) error {
		direction := database.MigrateUp
		if len(args) == 1 {
			direction = database.MigrationDirection(args[0])
		}
		return migrateDatabase(cmd.Context(), direction)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

// migrateDatabase opens a short-lived database/sql handle for golang-migrate.
func migrateDatabase(ctx context.Context, direction database.MigrationDirection) error {
	logger.Info("Running database migrations...", slog.String("direction", string(direction)))

	migrationDB, err := database.OpenSQLDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	return database.RunMigrations(migrationDB, cfg.MigrationsPath, direction, logger)
}
