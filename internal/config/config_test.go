package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"log/slog"
)

func TestLoadDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Server.Port != defaultPort {
		t.Errorf("expected default port %q, got %q", defaultPort, cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != defaultReadTimeout {
		t.Errorf("expected default read timeout %v, got %v", defaultReadTimeout, cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != defaultWriteTimeout {
		t.Errorf("expected default write timeout %v, got %v", defaultWriteTimeout, cfg.Server.WriteTimeout)
	}
	if cfg.Logging.Level != slog.LevelInfo {
		t.Errorf("expected default log level %v, got %v", slog.LevelInfo, cfg.Logging.Level)
	}
	if cfg.Logging.Format != defaultLogFormat {
		t.Errorf("expected default log format %q, got %q", defaultLogFormat, cfg.Logging.Format)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("expected default database driver postgres, got %q", cfg.Database.Driver)
	}
	if cfg.Provider.BaseURL != defaultProviderURL {
		t.Errorf("expected default provider url %q, got %q", defaultProviderURL, cfg.Provider.BaseURL)
	}
	if cfg.Provider.Timeout != defaultProviderTimeout {
		t.Errorf("expected default provider timeout %v, got %v", defaultProviderTimeout, cfg.Provider.Timeout)
	}
	if cfg.Provider.MaxRetries != defaultProviderRetries {
		t.Errorf("expected default provider retries %d, got %d", defaultProviderRetries, cfg.Provider.MaxRetries)
	}
	if cfg.LLM.Model != defaultLLMModel {
		t.Errorf("expected default model %q, got %q", defaultLLMModel, cfg.LLM.Model)
	}
	if cfg.LLM.Temperature != defaultLLMTemperature {
		t.Errorf("expected default temperature %v, got %v", defaultLLMTemperature, cfg.LLM.Temperature)
	}
	if cfg.LLM.MaxTokens != 500 || cfg.LLM.SummaryMaxTokens != 200 {
		t.Errorf("expected token limits 500/200, got %d/%d", cfg.LLM.MaxTokens, cfg.LLM.SummaryMaxTokens)
	}
}

func TestLoadWithOverrides(t *testing.T) {
	clearConfigEnv(t)

	overrides := map[string]string{
		"SERVER_PORT":                  "9090",
		"SERVER_READ_TIMEOUT_SECONDS":  "30",
		"SERVER_WRITE_TIMEOUT_SECONDS": "45",
		"LOG_LEVEL":                    "debug",
		"LOG_FORMAT":                   "text",
		"DATABASE_DRIVER":              "sqlite",
		"SQLITE_PATH":                  "/tmp/countries.db",
		"COUNTRY_API_KEY":              "provider-key",
		"COUNTRY_API_URL":              "http://localhost:9999/country",
		"COUNTRY_API_TIMEOUT_SECONDS":  "3",
		"COUNTRY_API_MAX_RETRIES":      "3",
		"LLM_API_KEY":                  "llm-key",
		"LLM_BASE_URL":                 "https://api.openai.com/v1",
		"LLM_MODEL":                    "gpt-4o-mini",
		"LLM_TEMPERATURE":              "0.2",
		"LLM_MAX_TOKENS":               "800",
		"LLM_SUMMARY_MAX_TOKENS":       "150",
		"LLM_TIMEOUT_SECONDS":          "20",
	}
	for key, value := range overrides {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("expected overridden port 9090, got %q", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("expected read timeout %v, got %v", 30*time.Second, cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 45*time.Second {
		t.Errorf("expected write timeout %v, got %v", 45*time.Second, cfg.Server.WriteTimeout)
	}
	if cfg.Logging.Level != slog.LevelDebug {
		t.Errorf("expected log level %v, got %v", slog.LevelDebug, cfg.Logging.Level)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.SQLitePath != "/tmp/countries.db" {
		t.Errorf("unexpected database config %+v", cfg.Database)
	}
	if cfg.Provider.APIKey != "provider-key" || cfg.Provider.BaseURL != "http://localhost:9999/country" {
		t.Errorf("unexpected provider config %+v", cfg.Provider)
	}
	if cfg.Provider.Timeout != 3*time.Second {
		t.Errorf("expected provider timeout 3s, got %v", cfg.Provider.Timeout)
	}
	if cfg.Provider.MaxRetries != 3 {
		t.Errorf("expected provider retries 3, got %d", cfg.Provider.MaxRetries)
	}
	if cfg.LLM.APIKey != "llm-key" || cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("unexpected llm config %+v", cfg.LLM)
	}
	if cfg.LLM.Temperature != float32(0.2) {
		t.Errorf("expected temperature 0.2, got %v", cfg.LLM.Temperature)
	}
	if cfg.LLM.MaxTokens != 800 || cfg.LLM.SummaryMaxTokens != 150 {
		t.Errorf("expected token limits 800/150, got %d/%d", cfg.LLM.MaxTokens, cfg.LLM.SummaryMaxTokens)
	}
	if cfg.LLM.Timeout != 20*time.Second {
		t.Errorf("expected llm timeout 20s, got %v", cfg.LLM.Timeout)
	}
}

func TestLoadLegacyKeyNames(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("YOUR_API_KEY", "legacy-provider")
	t.Setenv("GROQ_API_KEY", "legacy-groq")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Provider.APIKey != "legacy-provider" {
		t.Errorf("expected provider key from YOUR_API_KEY, got %q", cfg.Provider.APIKey)
	}
	if cfg.LLM.APIKey != "legacy-groq" {
		t.Errorf("expected llm key from GROQ_API_KEY, got %q", cfg.LLM.APIKey)
	}
}

func TestLoadPortPrefersPORT(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "7000")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Server.Port != "7000" {
		t.Errorf("expected PORT to win, got %q", cfg.Server.Port)
	}
}

func TestLoadWithInvalidValues(t *testing.T) {
	tests := map[string]string{
		"SERVER_READ_TIMEOUT_SECONDS":     "-1",
		"SERVER_WRITE_TIMEOUT_SECONDS":    "abc",
		"SERVER_SHUTDOWN_TIMEOUT_SECONDS": "3.5",
		"COUNTRY_API_TIMEOUT_SECONDS":     "soon",
		"COUNTRY_API_MAX_RETRIES":         "-1",
		"LLM_TIMEOUT_SECONDS":             "-5",
		"LOG_LEVEL":                       "verbose",
		"LOG_FORMAT":                      "xml",
		"DATABASE_DRIVER":                 "mysql",
		"LLM_TEMPERATURE":                 "hot",
		"LLM_MAX_TOKENS":                  "0",
		"LLM_SUMMARY_MAX_TOKENS":          "many",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv(key, value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error when %s=%q", key, value)
			}
		})
	}
}

func TestParseLogLevelAliases(t *testing.T) {
	tests := map[string]slog.Level{
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
	}

	for input, expected := range tests {
		level, err := parseLogLevel(input)
		if err != nil {
			t.Fatalf("parseLogLevel(%q) returned error: %v", input, err)
		}

		if level != expected {
			t.Errorf("parseLogLevel(%q) = %v, want %v", input, level, expected)
		}
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearConfigEnv(t)
	// godotenv never overrides a variable that is set, even to "".
	os.Unsetenv("LLM_MODEL")

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "LLM_MODEL=llama3-70b-8192\nSERVER_PORT=9191\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Setenv("SERVER_PORT", "8181")
	t.Cleanup(func() { os.Unsetenv("LLM_MODEL") })

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv returned error: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.LLM.Model != "llama3-70b-8192" {
		t.Errorf("expected model from .env, got %q", cfg.LLM.Model)
	}
	if cfg.Server.Port != "8181" {
		t.Errorf("expected existing env to win over .env, got %q", cfg.Server.Port)
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"PORT",
		"SERVER_PORT",
		"SERVER_READ_TIMEOUT_SECONDS",
		"SERVER_WRITE_TIMEOUT_SECONDS",
		"SERVER_SHUTDOWN_TIMEOUT_SECONDS",
		"LOG_LEVEL",
		"LOG_FORMAT",
		"DATABASE_DRIVER",
		"SQLITE_PATH",
		"COUNTRY_API_KEY",
		"YOUR_API_KEY",
		"COUNTRY_API_URL",
		"COUNTRY_API_TIMEOUT_SECONDS",
		"COUNTRY_API_MAX_RETRIES",
		"LLM_API_KEY",
		"GROQ_API_KEY",
		"LLM_BASE_URL",
		"LLM_MODEL",
		"LLM_TEMPERATURE",
		"LLM_MAX_TOKENS",
		"LLM_SUMMARY_MAX_TOKENS",
		"LLM_TIMEOUT_SECONDS",
	}

	for _, key := range keys {
		t.Setenv(key, "")
	}
}
