package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"ledgerlens/internal/config"
	"ledgerlens/internal/metrics"
	mw "ledgerlens/internal/middleware"
	"ledgerlens/internal/services"
)

// NewRouter assembles the HTTP surface: the JSON API, the health probe and
// the metrics scrape endpoint.
func NewRouter(cfg *config.Config, service *services.DatasetService, m *metrics.Metrics, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(mw.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	if cfg.Security.RateLimit.Enabled {
		r.Use(mw.RateLimit(cfg.Security.RateLimit.RPS, cfg.Security.RateLimit.Burst))
	}
	r.Use(chimiddleware.Timeout(cfg.Server.WriteTimeout))

	handler := NewDatasetHandler(service, logger, cfg.Server.MaxImportBytes)

	r.Get("/healthz", healthz)
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/import", handler.Import)
		r.Get("/rows", handler.Rows)
		r.Get("/companies", handler.Companies)
		r.Get("/verification", handler.Verification)
		r.Get("/verification/issues.csv", handler.IssuesCSV)
	})

	return r
}

func healthz(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
