package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"designstudio/internal/http/handlers"
	"designstudio/internal/infra"
	"designstudio/internal/middleware"
)

// NewRouter assembles the HTTP surface of the service.
func NewRouter(app *handlers.App, cfg *infra.Config, logger infra.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(logger),
	)
	if len(cfg.CORSOrigins) > 0 {
		r.Use(middleware.CORS(cfg.CORSOrigins))
	}

	r.Get("/v1/healthz", app.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1/designs", func(r chi.Router) {
		r.With(middleware.RateLimit(cfg.GenerateRateLimit, time.Minute)).
			Post("/", app.DesignGenerate)
		r.Get("/{id}", app.DesignStatus)
		r.Get("/{id}/sketch.png", app.DesignSketch)
		r.Get("/{id}/render.png", app.DesignRender)
	})

	return r
}
