package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/thara/minibank/internal/adapter/http/handler"
	"github.com/thara/minibank/internal/adapter/http/middleware"
	"github.com/thara/minibank/internal/infrastructure/auth"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler   *handler.AccountHandler
	FundsHandler     *handler.FundsHandler
	AdminHandler     *handler.AdminHandler
	HealthHandler    *handler.HealthHandler
	MetricsHandler   http.Handler
	JWTManager       *auth.JWTManager
	IdempotencyStore middleware.IdempotencyStore
	RateLimiter      *middleware.RateLimiter
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	r.Get("/health", cfg.HealthHandler.Liveness)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Account-holder operations
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/{number}/balance", cfg.AccountHandler.Balance)
			r.Get("/{number}/transactions", cfg.AccountHandler.History)
			r.Post("/{number}/deposits", cfg.FundsHandler.Deposit)
			r.Post("/{number}/withdrawals", cfg.FundsHandler.Withdraw)
			r.Post("/{number}/interest", cfg.FundsHandler.AccrueInterest)
		})

		r.Post("/transfers", cfg.FundsHandler.Transfer)

		// Administrative operations
		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", cfg.AdminHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminAuth(cfg.JWTManager))
				r.Get("/accounts", cfg.AdminHandler.ListAccounts)
				r.Get("/accounts/{number}/transactions", cfg.AdminHandler.AccountHistory)
				r.Put("/password", cfg.AdminHandler.ChangePassword)
			})
		})
	})

	return r
}
