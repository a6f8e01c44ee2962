// Package main is the entry point for the stockbook API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockbook/internal/config"
	"stockbook/internal/domain/auth"
	"stockbook/internal/domain/debts"
	"stockbook/internal/domain/items"
	"stockbook/internal/domain/reports"
	"stockbook/internal/domain/sales"
	"stockbook/internal/infrastructure/cache"
	v1 "stockbook/internal/infrastructure/http/v1"
	"stockbook/internal/infrastructure/mailrelay"
	"stockbook/internal/infrastructure/storage/postgres"
	"stockbook/pkg/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("ENV_FILE"))
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting stockbook server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.Database.DSN)
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Audit trail ---
	auditStore, err := postgres.NewAuditStore(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit store", "error", err)
	}

	// --- Optional Redis name cache ---
	var nameCache items.NameCache
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisNameCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warnw("redis unavailable, name cache disabled", "error", err)
		} else {
			nameCache = redisCache
			defer redisCache.Close()
			log.Info("redis name cache enabled")
		}
	}

	// --- Optional mail relay ---
	var mailer auth.Mailer
	if cfg.MailRelay.URL != "" {
		mailer = mailrelay.NewClient(cfg.MailRelay.URL, cfg.MailRelay.Key)
		log.Info("mail relay configured")
	}

	// --- JWT ---
	jwtConfig := auth.DefaultJWTConfig(cfg.Auth.JWTSecret)
	jwtConfig.AccessTokenTTL = cfg.Auth.TokenTTL
	jwtService := auth.NewJWTService(jwtConfig)

	// --- Services ---
	authConfig := auth.DefaultServiceConfig(cfg.Server.BaseURL)
	authConfig.BcryptCost = cfg.Auth.BcryptCost
	authConfig.PasswordMinLength = cfg.Auth.MinPasswordLen
	authConfig.ResetTokenTTL = cfg.Auth.ResetTokenTTL

	authService := auth.NewService(postgres.NewUserRepo(txManager), jwtService, mailer, authConfig)
	itemService := items.NewService(postgres.NewItemRepo(txManager), nameCache, auditStore)
	saleService := sales.NewService(postgres.NewSaleRepo(txManager), txManager, auditStore)
	debtService := debts.NewService(postgres.NewDebtRepo(txManager))

	reportingLoc := cfg.ReportingLocation()
	reportService := reports.NewService(postgres.NewReportRepo(txManager, cfg.Reporting.Timezone), txManager, reportingLoc)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:              pool,
		Logger:            log,
		JWTValidator:      jwtService,
		AuthService:       authService,
		ItemService:       itemService,
		SaleService:       saleService,
		DebtService:       debtService,
		ReportService:     reportService,
		ReportingLocation: reportingLoc,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
