package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portsrepo "github.com/SscSPs/coop_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/coop_ledger/internal/core/services"
	"github.com/SscSPs/coop_ledger/internal/handlers"
	"github.com/SscSPs/coop_ledger/internal/middleware"
	"github.com/SscSPs/coop_ledger/internal/platform/config"
	"github.com/SscSPs/coop_ledger/internal/platform/metrics"
	"github.com/SscSPs/coop_ledger/internal/repositories/database/memory"
	"github.com/SscSPs/coop_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/coop_ledger/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var flagMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		repos, closeStore, err := openRepositories(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		router, err := newRouter(repos)
		if err != nil {
			return err
		}

		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.StoreDriver))
		if err := router.Run(":" + cfg.Port); err != nil {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&flagMigrate, "migrate", true, "Apply pending migrations before serving (postgres only)")
	rootCmd.AddCommand(serveCmd)
}

// openRepositories builds the repository provider for the configured store driver.
func openRepositories(ctx context.Context) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StoreDriver == config.StoreMemory {
		logger.Warn("Using in-memory store; data is lost on exit")
		return memory.NewSeededStore().Provider(), func() {}, nil
	}

	if flagMigrate {
		if err := migrateDatabase(ctx, database.MigrateUp); err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	logger.Info("Database connection pool established.")
	return pgsql.NewRepositoryProvider(dbPool), dbPool.Close, nil
}

func newRouter(repos portsrepo.RepositoryProvider) (*gin.Engine, error) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	limiterInstance, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT %q: %w", cfg.RateLimit, err)
	}
	r.Use(middleware.RateLimit(limiterInstance))

	if cfg.MetricsEnabled {
		r.Use(metrics.Middleware())
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	serviceContainer := services.NewServiceContainer(cfg, repos)
	handlers.RegisterRoutes(r, cfg, serviceContainer)
	return r, nil
}
