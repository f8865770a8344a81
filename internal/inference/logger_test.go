package inference

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/econbrief/econbrief/internal/models"
)

type fakeStore struct {
	mu   sync.Mutex
	logs []models.InferenceLog
	err  error
}

func (s *fakeStore) Create(_ context.Context, log models.InferenceLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.logs = append(s.logs, log)
	return nil
}

func TestLogCallSuccess(t *testing.T) {
	store := &fakeStore{}
	logger := NewLogger(store, "groq", slog.Default())

	logger.LogCall(Call{
		Model:            "mixtral-8x7b-32768",
		Operation:        "parameter_summary",
		Country:          "Canada",
		PromptTokens:     100,
		CompletionTokens: 40,
		Latency:          1500 * time.Millisecond,
		Metadata:         map[string]interface{}{"template": "trade"},
	})
	logger.Wait()

	if len(store.logs) != 1 {
		t.Fatalf("expected 1 log, got %d", len(store.logs))
	}
	got := store.logs[0]
	if got.Provider != "groq" || got.Status != "success" || got.Country != "Canada" {
		t.Errorf("unexpected log: %+v", got)
	}
	if got.TokensUsed != 140 || *got.InputTokens != 100 || *got.OutputTokens != 40 {
		t.Errorf("unexpected token counts: %+v", got)
	}
	if *got.LatencyMs != 1500 {
		t.Errorf("latency = %d, want 1500", *got.LatencyMs)
	}
	if got.Metadata != `{"template":"trade"}` {
		t.Errorf("metadata = %q", got.Metadata)
	}
	if got.ErrorMessage != nil {
		t.Errorf("unexpected error message %q", *got.ErrorMessage)
	}
}

func TestLogCallError(t *testing.T) {
	store := &fakeStore{}
	logger := NewLogger(store, "openai", slog.Default())

	logger.LogCall(Call{Model: "gpt-4o-mini", Operation: "country_summary", Err: errors.New("rate limited")})
	logger.Wait()

	got := store.logs[0]
	if got.Status != "error" {
		t.Errorf("status = %q, want error", got.Status)
	}
	if got.ErrorMessage == nil || *got.ErrorMessage != "rate limited" {
		t.Errorf("error message = %v", got.ErrorMessage)
	}
	if got.Metadata != "" {
		t.Errorf("expected empty metadata, got %q", got.Metadata)
	}
}

func TestLogCallStoreFailureIsOnlyLogged(t *testing.T) {
	var buf bytes.Buffer
	store := &fakeStore{err: errors.New("disk full")}
	logger := NewLogger(store, "groq", slog.New(slog.NewTextHandler(&buf, nil)))

	logger.LogCall(Call{Model: "m", Operation: "country_summary"})
	logger.Wait()

	if !strings.Contains(buf.String(), "failed to log inference call") {
		t.Errorf("expected store failure to be logged, got %q", buf.String())
	}
}

func TestLogCallConcurrentWritesAreAllFlushed(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := &fakeStore{}
	logger := NewLogger(store, "groq", slog.Default())

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.LogCall(Call{Model: "m", Operation: "parameter_summary", PromptTokens: 1})
		}()
	}
	wg.Wait()
	logger.Wait()

	if len(store.logs) != 25 {
		t.Errorf("expected 25 logs, got %d", len(store.logs))
	}
}
