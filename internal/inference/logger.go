package inference

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/econbrief/econbrief/internal/models"
)

// Store persists inference logs.
type Store interface {
	Create(ctx context.Context, log models.InferenceLog) error
}

// Logger logs inference calls to the database
type Logger struct {
	store    Store
	provider string
	logger   *slog.Logger
	wg       sync.WaitGroup
}

// NewLogger creates a new inference logger. provider labels every row
// ("groq", "openai", ...).
func NewLogger(store Store, provider string, logger *slog.Logger) *Logger {
	return &Logger{
		store:    store,
		provider: provider,
		logger:   logger,
	}
}

// Call describes one completion call.
type Call struct {
	Model            string
	Operation        string // "country_summary" or "parameter_summary"
	Country          string
	PromptTokens     int
	CompletionTokens int
	Latency          time.Duration
	Err              error
	Metadata         map[string]interface{}
}

// LogCall records c without blocking the caller. Failures to persist are
// logged and otherwise ignored.
func (l *Logger) LogCall(c Call) {
	var metadataJSON string
	if c.Metadata != nil {
		if jsonBytes, err := json.Marshal(c.Metadata); err == nil {
			metadataJSON = string(jsonBytes)
		}
	}

	promptTokens := c.PromptTokens
	completionTokens := c.CompletionTokens
	latencyMs := int(c.Latency.Milliseconds())

	entry := models.InferenceLog{
		Provider:     l.provider,
		Model:        c.Model,
		Operation:    c.Operation,
		Country:      c.Country,
		TokensUsed:   promptTokens + completionTokens,
		InputTokens:  &promptTokens,
		OutputTokens: &completionTokens,
		LatencyMs:    &latencyMs,
		Status:       "success",
		Metadata:     metadataJSON,
	}
	if c.Err != nil {
		entry.Status = "error"
		errMsg := c.Err.Error()
		entry.ErrorMessage = &errMsg
	}

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := l.store.Create(ctx, entry); err != nil {
			l.logger.Error("failed to log inference call", "operation", entry.Operation, "error", err)
		}
	}()
}

// Wait blocks until every pending write has finished. Call it before closing
// the database.
func (l *Logger) Wait() {
	l.wg.Wait()
}
