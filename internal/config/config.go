package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config represents runtime configuration derived from environment variables.
type Config struct {
	Server   ServerConfig
	Logging  LoggingConfig
	Database DatabaseConfig
	Provider ProviderConfig
	LLM      LLMConfig
}

// ServerConfig holds HTTP server runtime parameters.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LoggingConfig represents structured logging configuration.
type LoggingConfig struct {
	Level  slog.Level
	Format string
}

// DatabaseConfig selects the country store backend. The Postgres DSN itself
// is resolved by database.BuildURL.
type DatabaseConfig struct {
	Driver     string
	SQLitePath string
}

// ProviderConfig configures the country data API.
type ProviderConfig struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// LLMConfig configures the chat completion backend.
type LLMConfig struct {
	APIKey           string
	BaseURL          string
	Model            string
	Temperature      float32
	MaxTokens        int
	SummaryMaxTokens int
	Timeout          time.Duration
}

const (
	defaultPort            = "8080"
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 60 * time.Second
	defaultShutdownTimeout = 5 * time.Second

	defaultLogFormat = "json"

	defaultDatabaseDriver = "postgres"
	defaultSQLitePath     = "econbrief.db"

	defaultProviderURL     = "https://api.api-ninjas.com/v1/country"
	defaultProviderTimeout = 30 * time.Second
	defaultProviderRetries = 0

	defaultLLMBaseURL          = "https://api.groq.com/openai/v1"
	defaultLLMModel            = "mixtral-8x7b-32768"
	defaultLLMTemperature      = 0.7
	defaultLLMMaxTokens        = 500
	defaultLLMSummaryMaxTokens = 200
	defaultLLMTimeout          = 60 * time.Second
)

// Load reads configuration from environment variables, applying defaults when
// values are not provided or invalid.
func Load() (Config, error) {
	port := getEnv("PORT", "")
	if port == "" {
		port = getEnv("SERVER_PORT", defaultPort)
	}

	cfg := Config{
		Server: ServerConfig{
			Port:            port,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Logging: LoggingConfig{
			Level:  slog.LevelInfo,
			Format: defaultLogFormat,
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DATABASE_DRIVER", defaultDatabaseDriver),
			SQLitePath: getEnv("SQLITE_PATH", defaultSQLitePath),
		},
		Provider: ProviderConfig{
			APIKey:     getEnv("COUNTRY_API_KEY", os.Getenv("YOUR_API_KEY")),
			BaseURL:    getEnv("COUNTRY_API_URL", defaultProviderURL),
			Timeout:    defaultProviderTimeout,
			MaxRetries: defaultProviderRetries,
		},
		LLM: LLMConfig{
			APIKey:           getEnv("LLM_API_KEY", os.Getenv("GROQ_API_KEY")),
			BaseURL:          getEnv("LLM_BASE_URL", defaultLLMBaseURL),
			Model:            getEnv("LLM_MODEL", defaultLLMModel),
			Temperature:      defaultLLMTemperature,
			MaxTokens:        defaultLLMMaxTokens,
			SummaryMaxTokens: defaultLLMSummaryMaxTokens,
			Timeout:          defaultLLMTimeout,
		},
	}

	durations := []struct {
		key    string
		target *time.Duration
	}{
		{"SERVER_READ_TIMEOUT_SECONDS", &cfg.Server.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT_SECONDS", &cfg.Server.WriteTimeout},
		{"SERVER_SHUTDOWN_TIMEOUT_SECONDS", &cfg.Server.ShutdownTimeout},
		{"COUNTRY_API_TIMEOUT_SECONDS", &cfg.Provider.Timeout},
		{"LLM_TIMEOUT_SECONDS", &cfg.LLM.Timeout},
	}
	for _, d := range durations {
		v := os.Getenv(d.key)
		if v == "" {
			continue
		}
		parsed, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.target = parsed
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := parseLogLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		cfg.Logging.Level = level
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		switch v {
		case "json", "text":
			cfg.Logging.Format = v
		default:
			return Config{}, fmt.Errorf("invalid LOG_FORMAT: must be 'json' or 'text'")
		}
	}

	switch cfg.Database.Driver {
	case "postgres", "sqlite":
	default:
		return Config{}, fmt.Errorf("invalid DATABASE_DRIVER: must be 'postgres' or 'sqlite'")
	}

	if v := os.Getenv("COUNTRY_API_MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("invalid COUNTRY_API_MAX_RETRIES: must be a non-negative integer")
		}
		cfg.Provider.MaxRetries = n
	}

	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		temp, err := strconv.ParseFloat(v, 32)
		if err != nil || temp < 0 || temp > 2 {
			return Config{}, fmt.Errorf("invalid LLM_TEMPERATURE: must be a number between 0 and 2")
		}
		cfg.LLM.Temperature = float32(temp)
	}

	if v := os.Getenv("LLM_MAX_TOKENS"); v != "" {
		n, err := parsePositiveInt(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LLM_MAX_TOKENS: %w", err)
		}
		cfg.LLM.MaxTokens = n
	}

	if v := os.Getenv("LLM_SUMMARY_MAX_TOKENS"); v != "" {
		n, err := parsePositiveInt(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LLM_SUMMARY_MAX_TOKENS: %w", err)
		}
		cfg.LLM.SummaryMaxTokens = n
	}

	return cfg, nil
}

func parseSeconds(raw string) (time.Duration, error) {
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds < 0 {
		return 0, fmt.Errorf("must be a non-negative integer")
	}
	return time.Duration(seconds) * time.Second, nil
}

func parsePositiveInt(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("must be a positive integer")
	}
	return n, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch raw {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("must be one of debug, info, warn, error")
	}
}
