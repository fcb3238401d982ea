package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/finarc/fintxn/internal/adapter/http/handler"
	"github.com/finarc/fintxn/internal/adapter/http/middleware"
	"github.com/finarc/fintxn/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	PostingHandler      *handler.PostingHandler
	DistributionHandler *handler.DistributionHandler
	PaymentHandler      *handler.PaymentHandler
	HealthHandler       *handler.HealthHandler
	IdempotencyStore    usecase.IdempotencyStore
	RateLimiter         *middleware.RateLimiter
	Logger              zerolog.Logger
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

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Journal entries
		r.Route("/journal-entries", func(r chi.Router) {
			r.Post("/", cfg.PostingHandler.Create)
			r.Get("/{id}", cfg.PostingHandler.Get)
		})

		// Distributions
		r.Route("/distributions", func(r chi.Router) {
			r.Post("/", cfg.DistributionHandler.Create)
			r.Post("/distribute-and-pay", cfg.DistributionHandler.DistributeAndPay)
			r.Get("/{id}", cfg.DistributionHandler.Get)
			r.Route("/lines/{id}/payments", func(r chi.Router) {
				r.Post("/", cfg.PaymentHandler.Create)
				r.Get("/", cfg.PaymentHandler.List)
			})
		})
	})

	return r
}
