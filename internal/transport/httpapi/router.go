// Package httpapi wires the job-trigger HTTP surface: health probes and the
// on-demand classification endpoints.
package httpapi

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/midwestsb/autobooks/internal/transport/httpapi/handler"
	"github.com/midwestsb/autobooks/internal/transport/httpapi/middleware"
	"github.com/midwestsb/autobooks/pkg/logger"
)

// Config holds router configuration
type Config struct {
	Logger        *logger.Logger
	JobsHandler   *handler.JobsHandler
	HealthHandler *handler.HealthHandler
}

// NewRouter creates a new HTTP router
func NewRouter(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.RateLimit())

	r.Get("/health", handler.GetHealth)
	if cfg.HealthHandler != nil {
		r.Get("/health/ready", cfg.HealthHandler.GetReadiness)
	}

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.JobsHandler != nil {
			r.Post("/jobs/classify", cfg.JobsHandler.TriggerClassify)
			r.Post("/jobs/retry", cfg.JobsHandler.TriggerRetry)
		}
	})

	r.NotFound(handler.NotFound)

	return r
}
