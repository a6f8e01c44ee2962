// Package v1 provides HTTP API version 1.
package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"stockbook/internal/domain/auth"
	"stockbook/internal/domain/debts"
	"stockbook/internal/domain/items"
	"stockbook/internal/domain/reports"
	"stockbook/internal/domain/sales"
	"stockbook/internal/infrastructure/http/v1/handlers"
	"stockbook/internal/infrastructure/http/v1/middleware"
	"stockbook/internal/infrastructure/storage/postgres"
	"stockbook/pkg/logger"
)

// RouterConfig holds everything the router wires together.
type RouterConfig struct {
	Pool   *postgres.Pool
	Logger *logger.Logger

	JWTValidator middleware.JWTValidator

	AuthService   *auth.Service
	ItemService   *items.Service
	SaleService   *sales.Service
	DebtService   *debts.Service
	ReportService *reports.Service

	// ReportingLocation renders exported timestamps.
	ReportingLocation *time.Location
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	baseHandler := handlers.NewBaseHandler()

	// API v1
	apiV1 := router.Group("/api/v1")
	{
		// Public auth endpoints; /auth/me requires a token
		publicAuth := apiV1.Group("/auth")
		protectedAuth := apiV1.Group("/auth")
		protectedAuth.Use(middleware.Auth(cfg.JWTValidator))
		handlers.NewAuthHandler(baseHandler, cfg.AuthService).
			RegisterRoutes(publicAuth, protectedAuth)

		// Everything else is owner-scoped
		protected := apiV1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		handlers.NewItemHandler(baseHandler, cfg.ItemService).
			RegisterRoutes(protected.Group("/items"))
		handlers.NewSaleHandler(baseHandler, cfg.SaleService).
			RegisterRoutes(protected.Group("/sales"))
		handlers.NewDebtHandler(baseHandler, cfg.DebtService).
			RegisterRoutes(protected.Group("/debts"))
		handlers.NewReportHandler(baseHandler, cfg.ReportService, cfg.ReportingLocation).
			RegisterRoutes(protected.Group("/reports"))
	}

	return router
}
