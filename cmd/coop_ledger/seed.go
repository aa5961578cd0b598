package main

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/coop_ledger/internal/repositories/database/seed"
	"github.com/SscSPs/coop_ledger/pkg/database"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default chart of accounts and cash accounts",
	Long:  "Inserts the reference chart of accounts and the five default cash accounts. Existing codes are left untouched, so the command can be re-run.",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.OpenSQLDB(cmd.Context(), cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()

		res, err := seed.Defaults(cmd.Context(), db, logger)
		if err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
		logger.Info("Seed complete",
			slog.Int64("chart_of_accounts", res.ChartOfAccounts),
			slog.Int64("cash_accounts", res.CashAccounts))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
