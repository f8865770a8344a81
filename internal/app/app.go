// Package app assembles the service components from configuration. Both the
// HTTP server and the CLI build on it.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/econbrief/econbrief/internal/config"
	"github.com/econbrief/econbrief/internal/countrydata"
	"github.com/econbrief/econbrief/internal/database"
	"github.com/econbrief/econbrief/internal/inference"
	"github.com/econbrief/econbrief/internal/metrics"
	"github.com/econbrief/econbrief/internal/prompt"
	"github.com/econbrief/econbrief/internal/summarizer"
)

// Version is reported by /api/info and the CLI.
var Version = "0.1.0"

// App holds the wired components.
type App struct {
	DB              *sql.DB
	Driver          string
	Countries       database.CountryRepository
	InferenceLogs   *database.InferenceLogRepository
	InferenceLogger *inference.Logger
	Provider        *countrydata.Client
	Catalog         *prompt.Catalog
	Summarizer      *summarizer.Service
	Metrics         *metrics.Collector
}

// OpenDatabase connects to the configured store.
func OpenDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	dbCfg := database.DefaultConfig()
	dbCfg.Driver = cfg.Driver

	switch cfg.Driver {
	case database.DriverSQLite:
		dbCfg.URL = cfg.SQLitePath
		logger.Info("database configuration", "driver", cfg.Driver, "path", cfg.SQLitePath)
	default:
		url, err := database.BuildURL()
		if err != nil {
			return nil, fmt.Errorf("failed to build database URL: %w", err)
		}
		dbCfg.URL = url
		logger.Info("database configuration", "driver", cfg.Driver, "config", database.ConnectionSummary())
	}

	db, err := database.Connect(ctx, dbCfg)
	if err != nil {
		return nil, err
	}
	logger.Info("database connected")
	return db, nil
}

// NewProvider builds the country data client with the configured retry budget.
func NewProvider(cfg config.ProviderConfig) *countrydata.Client {
	policy := countrydata.DefaultRetryPolicy()
	policy.MaxRetries = cfg.MaxRetries
	return countrydata.NewClient(cfg.APIKey, cfg.BaseURL, cfg.Timeout).WithRetry(policy)
}

// Build connects to the database, applies migrations and wires every
// component. Close releases what it opened.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	db, err := OpenDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	if err := database.RunMigrations(ctx, db, cfg.Database.Driver, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	countries, err := database.NewCountryRepository(db, cfg.Database.Driver)
	if err != nil {
		db.Close()
		return nil, err
	}

	collector, err := metrics.NewCollector()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init metrics: %w", err)
	}

	catalog, err := prompt.NewCatalog()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load prompt templates: %w", err)
	}

	if cfg.Provider.APIKey == "" {
		logger.Warn("COUNTRY_API_KEY not set, provider requests will be rejected")
	}
	provider := NewProvider(cfg.Provider).WithObserver(collector)

	inferenceLogs := database.NewInferenceLogRepository(db, cfg.Database.Driver)
	inferenceLogger := inference.NewLogger(inferenceLogs, providerName(cfg.LLM.BaseURL), logger)

	var completer summarizer.Completer
	if cfg.LLM.APIKey == "" {
		logger.Warn("LLM_API_KEY not set, using offline summaries")
		completer = &summarizer.StaticCompleter{}
	} else {
		logger.Info("using chat completion provider", "base_url", cfg.LLM.BaseURL, "model", cfg.LLM.Model)
		completer = summarizer.NewOpenAIClient(cfg.LLM, logger).
			WithInferenceLogger(inferenceLogger).
			WithObserver(collector)
	}

	service := summarizer.NewService(catalog, completer, summarizer.Options{
		Temperature:      cfg.LLM.Temperature,
		MaxTokens:        cfg.LLM.MaxTokens,
		SummaryMaxTokens: cfg.LLM.SummaryMaxTokens,
	})

	return &App{
		DB:              db,
		Driver:          cfg.Database.Driver,
		Countries:       countries,
		InferenceLogs:   inferenceLogs,
		InferenceLogger: inferenceLogger,
		Provider:        provider,
		Catalog:         catalog,
		Summarizer:      service,
		Metrics:         collector,
	}, nil
}

// Close flushes pending inference logs and closes the database.
func (a *App) Close() error {
	a.InferenceLogger.Wait()
	return a.DB.Close()
}

// providerName labels inference logs by completion host.
func providerName(baseURL string) string {
	switch {
	case strings.Contains(baseURL, "groq.com"):
		return "groq"
	case strings.Contains(baseURL, "openai.com"):
		return "openai"
	default:
		return "openai-compatible"
	}
}
