package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"rowlens/internal/config"
	apierrors "rowlens/internal/errors"
)

// NewRouter assembles the service router: health and metrics endpoints plus
// the analysis API, wrapped in logging, recovery and rate limiting.
func NewRouter(cfg config.ServerConfig, analyze *AnalyzeHandler, metrics *Metrics) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	if cfg.RateLimit.Enabled {
		r.Use(rateLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst))
	}

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		render.JSON(w, req, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics",
		promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", analyze.Handle)
	})

	return r
}

// rateLimiter applies one shared token bucket to the whole API. The service
// fronts a CPU-bound batch job, so a global limit is the right shape.
func rateLimiter(limit rate.Limit, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(limit, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				render.Render(w, r, apierrors.ErrRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
