package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/gotransfers/internal/adapter/http/handler"
	"github.com/iho/gotransfers/internal/adapter/http/middleware"
	"github.com/iho/gotransfers/internal/infrastructure/auth"
	"github.com/iho/gotransfers/internal/infrastructure/metrics"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TransferHandler  *handler.TransferHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore middleware.IdempotencyStore
	IdempotencyTTL   time.Duration
	Metrics          *metrics.Metrics
	JWTManager       *auth.JWTManager
	RateLimit        *middleware.RateLimiter
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
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.RateLimit != nil {
		r.Use(cfg.RateLimit.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTManager != nil {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		r.Route("/transfers", func(r chi.Router) {
			r.Post("/", cfg.TransferHandler.Make)
			r.Get("/{id}", cfg.TransferHandler.Get)
		})
	})

	return r
}
