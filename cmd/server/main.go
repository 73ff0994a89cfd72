package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/thara/minibank/internal/adapter/http"
	"github.com/thara/minibank/internal/adapter/http/handler"
	"github.com/thara/minibank/internal/adapter/http/middleware"
	fileRepo "github.com/thara/minibank/internal/adapter/repository/file"
	"github.com/thara/minibank/internal/adapter/repository/memory"
	"github.com/thara/minibank/internal/domain"
	"github.com/thara/minibank/internal/infrastructure/auth"
	"github.com/thara/minibank/internal/infrastructure/config"
	"github.com/thara/minibank/internal/infrastructure/ids"
	"github.com/thara/minibank/internal/infrastructure/logger"
	"github.com/thara/minibank/internal/infrastructure/metrics"
	"github.com/thara/minibank/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	zlog := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = zlog

	// Open the ledger store
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)

	adminHash, err := hasher.Hash(cfg.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash default admin password")
	}

	store, err := fileRepo.Open(fileRepo.Options{
		Path:   cfg.DataFile,
		Hasher: hasher,
		DefaultAdmin: domain.AdminCredential{
			Username:     cfg.AdminUsername,
			PasswordHash: adminHash,
		},
		StrictLoad: cfg.StrictLoad,
		Logger:     zlog,
	})
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DataFile).Msg("failed to open ledger store")
	}
	log.Info().Str("path", cfg.DataFile).Msg("ledger store opened")

	// Initialize use cases
	idGen := ids.NewULIDGenerator()
	ledgerMetrics := metrics.New(prometheus.DefaultRegisterer)

	accountUC := usecase.NewAccountUseCase(store, hasher, idGen, ledgerMetrics)
	fundsUC := usecase.NewFundsUseCase(store, hasher, idGen, ledgerMetrics)
	adminUC := usecase.NewAdminUseCase(store, hasher)

	// Initialize handlers
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	accountHandler := handler.NewAccountHandler(accountUC)
	fundsHandler := handler.NewFundsHandler(fundsUC)
	adminHandler := handler.NewAdminHandler(adminUC, jwtManager)
	healthHandler := handler.NewHealthHandler()

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   accountHandler,
		FundsHandler:     fundsHandler,
		AdminHandler:     adminHandler,
		HealthHandler:    healthHandler,
		MetricsHandler:   promhttp.Handler(),
		JWTManager:       jwtManager,
		IdempotencyStore: memory.NewIdempotencyStore(),
		RateLimiter:      middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Logger:           zlog,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
