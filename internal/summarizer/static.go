package summarizer

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// StaticCompleter answers without calling any API. The server falls back to
// it when no LLM key is configured, and tests use it to capture requests.
type StaticCompleter struct {
	// Err, when set, is returned from every call.
	Err error

	mu       sync.Mutex
	requests []Request
}

// Complete returns a fixed, prompt-derived reply.
func (s *StaticCompleter) Complete(ctx context.Context, req Request) (string, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if s.Err != nil {
		return "", s.Err
	}

	firstLine, _, _ := strings.Cut(strings.TrimSpace(req.Prompt), "\n")
	return fmt.Sprintf("[offline summary for %s] %s", req.Country, firstLine), nil
}

// Requests returns every request received so far.
func (s *StaticCompleter) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}
