package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/econbrief/econbrief/internal/countrydata"
	"github.com/econbrief/econbrief/internal/database"
	"github.com/econbrief/econbrief/internal/models"
	"github.com/econbrief/econbrief/internal/prompt"
)

// Summarizer produces LLM narratives for stored records.
type Summarizer interface {
	CountrySummary(ctx context.Context, record models.CountryRecord) (string, error)
	ParameterSummary(ctx context.Context, record models.CountryRecord, parameter string) (prompt.Kind, string, error)
}

// CountryHandler serves the country data and summary endpoints.
type CountryHandler struct {
	countries  database.CountryRepository
	provider   countrydata.Fetcher
	summarizer Summarizer
	logger     *slog.Logger
	now        func() time.Time
}

// NewCountryHandler creates a handler over the store, the provider and the summarizer.
func NewCountryHandler(countries database.CountryRepository, provider countrydata.Fetcher, summarizer Summarizer, logger *slog.Logger) *CountryHandler {
	return &CountryHandler{
		countries:  countries,
		provider:   provider,
		summarizer: summarizer,
		logger:     logger,
		now:        time.Now,
	}
}

type storeResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// GetCountry handles GET /country/{name}. Records missing from the store are
// fetched from the provider and stored before being returned.
func (h *CountryHandler) GetCountry(w http.ResponseWriter, r *http.Request) {
	name, ok := h.name(w, r)
	if !ok {
		return
	}

	record, err := h.loadOrFetch(r.Context(), name)
	if err != nil {
		h.fail(w, name, err, "Country not found")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, record)
}

// FetchAndStore handles GET /fetch-and-store/{name}.
func (h *CountryHandler) FetchAndStore(w http.ResponseWriter, r *http.Request) {
	name, ok := h.name(w, r)
	if !ok {
		return
	}

	record, err := h.fetchAndStore(r.Context(), name)
	if err != nil {
		h.fail(w, name, err, "Failed to fetch country data")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, storeResponse{
		Message: fmt.Sprintf("Data for %s fetched and stored successfully", name),
		Data:    record,
	})
}

// FetchAndStoreEconomy handles GET|POST /fetch-and-store-economy/{name}. Only
// the economic columns are written.
func (h *CountryHandler) FetchAndStoreEconomy(w http.ResponseWriter, r *http.Request) {
	name, ok := h.name(w, r)
	if !ok {
		return
	}

	record, err := h.provider.Fetch(r.Context(), name)
	if err != nil {
		h.fail(w, name, err, fmt.Sprintf("Failed to fetch economy data for %s", name))
		return
	}

	economy := record.Economy()
	if err := h.countries.UpsertEconomy(r.Context(), economy); err != nil {
		h.fail(w, name, err, "")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, storeResponse{
		Message: fmt.Sprintf("Economy data for %s fetched and stored successfully", name),
		Data:    economy,
	})
}

// GetEconomy handles GET /economy/{name}.
func (h *CountryHandler) GetEconomy(w http.ResponseWriter, r *http.Request) {
	name, ok := h.name(w, r)
	if !ok {
		return
	}

	record, err := h.countries.Get(r.Context(), name)
	if err != nil {
		h.fail(w, name, err, "Economy data not found")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, record.Economy())
}

// CountrySummary handles GET /country-summary/{name}. Only stored records are
// summarized.
func (h *CountryHandler) CountrySummary(w http.ResponseWriter, r *http.Request) {
	name, ok := h.name(w, r)
	if !ok {
		return
	}

	record, err := h.countries.Get(r.Context(), name)
	if err != nil {
		h.fail(w, name, err, "Country not found")
		return
	}

	summary, err := h.summarizer.CountrySummary(r.Context(), record)
	if err != nil {
		h.logger.Error("failed to generate country summary", "country", name, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to generate summary")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, models.CountrySummary{
		Country:     name,
		Summary:     summary,
		GeneratedAt: h.now().UTC(),
	})
}

// ParameterSummary handles GET /country-parameter-summary/{name}?parameter=.
// Unknown or missing parameters use the comprehensive template.
func (h *CountryHandler) ParameterSummary(w http.ResponseWriter, r *http.Request) {
	name, ok := h.name(w, r)
	if !ok {
		return
	}

	record, err := h.loadOrFetch(r.Context(), name)
	if err != nil {
		h.fail(w, name, err, "Country data not found")
		return
	}

	kind, summary, err := h.summarizer.ParameterSummary(r.Context(), record, r.URL.Query().Get("parameter"))
	if err != nil {
		h.logger.Error("failed to generate parameter summary", "country", name, "template", kind, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to generate summary")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, models.ParameterSummary{
		Country:     name,
		Parameter:   string(kind),
		Summary:     summary,
		GeneratedAt: h.now().UTC(),
	})
}

func (h *CountryHandler) name(w http.ResponseWriter, r *http.Request) (string, bool) {
	name, err := countryName(r)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return "", false
	}
	return name, true
}

func (h *CountryHandler) loadOrFetch(ctx context.Context, name string) (models.CountryRecord, error) {
	record, err := h.countries.Get(ctx, name)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, database.ErrCountryNotFound) {
		return models.CountryRecord{}, err
	}

	h.logger.Info("country not stored, fetching from provider", "country", name)
	return h.fetchAndStore(ctx, name)
}

func (h *CountryHandler) fetchAndStore(ctx context.Context, name string) (models.CountryRecord, error) {
	record, err := h.provider.Fetch(ctx, name)
	if err != nil {
		return models.CountryRecord{}, err
	}
	if err := h.countries.Upsert(ctx, record); err != nil {
		return models.CountryRecord{}, err
	}
	return record, nil
}

// fail maps err to a response. Store misses and every provider failure are
// 404 with notFound as the message; anything else is a 500.
func (h *CountryHandler) fail(w http.ResponseWriter, name string, err error, notFound string) {
	switch {
	case errors.Is(err, database.ErrCountryNotFound), errors.Is(err, countrydata.ErrNotFound):
		h.logger.Info("country not found", "country", name)
		writeError(w, h.logger, http.StatusNotFound, notFound)
	case isProviderError(err):
		h.logger.Error("country provider request failed", "country", name, "error", err)
		writeError(w, h.logger, http.StatusNotFound, notFound)
	default:
		h.logger.Error("request failed", "country", name, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Internal server error")
	}
}

func isProviderError(err error) bool {
	var perr *countrydata.Error
	return errors.As(err, &perr)
}
