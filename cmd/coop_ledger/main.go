package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/coop_ledger/internal/platform/config"
	"github.com/spf13/cobra"
)

// @title Coop Ledger API
// @version 1.0
// @description Double-entry ledger, automatic postings and financial reports for a savings and loan cooperative.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "coop_ledger",
	Short: "Cooperative ledger backend",
	Long:  "Journal ledger, automatic postings, cash balances and financial reports for a savings and loan cooperative.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize structured logger
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
		slog.SetDefault(logger)

		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
