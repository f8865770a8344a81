package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/econbrief/econbrief/internal/metrics"
	"github.com/econbrief/econbrief/internal/server"
)

// NewRouter mounts every endpoint behind the request id, access log and
// metrics middleware. collector may be nil.
func NewRouter(countries *CountryHandler, ops *OpsHandler, collector *metrics.Collector, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(server.RequestID)
	r.Use(server.AccessLog(logger))
	if collector != nil {
		r.Use(collector.InstrumentHandler)
		r.Method(http.MethodGet, "/metrics", collector.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, logger, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, logger, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/healthz", ops.Healthz)
	r.Get("/api/info", ops.Info)
	r.Get("/api/inference-logs", ops.InferenceLogs)

	r.Get("/country/{name}", countries.GetCountry)
	r.Get("/fetch-and-store/{name}", countries.FetchAndStore)
	r.Get("/country-summary/{name}", countries.CountrySummary)
	r.Get("/country-parameter-summary/{name}", countries.ParameterSummary)
	r.Get("/fetch-and-store-economy/{name}", countries.FetchAndStoreEconomy)
	r.Post("/fetch-and-store-economy/{name}", countries.FetchAndStoreEconomy)
	r.Get("/economy/{name}", countries.GetEconomy)

	return r
}
