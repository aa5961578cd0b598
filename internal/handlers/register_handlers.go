package handlers

import (
	"reflect"
	"sync"

	"github.com/SscSPs/coop_ledger/cmd/docs"
	portssvc "github.com/SscSPs/coop_ledger/internal/core/ports/services"
	"github.com/SscSPs/coop_ledger/internal/middleware"
	"github.com/SscSPs/coop_ledger/internal/platform/config"
	"github.com/SscSPs/coop_ledger/internal/platform/metrics"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var registerValidatorsOnce sync.Once

// registerValidators lets binding tags compare decimal fields numerically.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
				if d, ok := field.Interface().(decimal.Decimal); ok {
					return d.InexactFloat64()
				}
				return nil
			}, decimal.Decimal{})
		}
	})
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	if cfg.MetricsEnabled {
		r.GET("/metrics", metrics.Handler())
	}

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	RegisterAPIV1Routes(v1, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// RegisterAPIV1Routes delegates route registration to the entity handlers. The
// group is expected to carry authentication already.
func RegisterAPIV1Routes(v1 *gin.RouterGroup, service *portssvc.ServiceContainer) {
	registerValidators()

	registerCoaRoutes(v1, service.ChartOfAccounts)
	registerCashAccountRoutes(v1, service.CashBalance)
	registerJournalRoutes(v1, service.Journal)
	registerPostingRoutes(v1, service.AutoJournal)
	registerReportingRoutes(v1, service.Reporting)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
