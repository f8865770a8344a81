// Package logging builds the slog loggers shared by the server and the CLI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/econbrief/econbrief/internal/config"
)

// New logs to stdout.
func New(cfg config.LoggingConfig) (*slog.Logger, error) {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter builds a logger tagged with service=econbrief. At debug level
// every record carries its source location. Durations are written as
// fractional milliseconds so upstream latencies aggregate as numbers.
func NewWithWriter(cfg config.LoggingConfig, w io.Writer) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{
		Level:       cfg.Level,
		AddSource:   cfg.Level <= slog.LevelDebug,
		ReplaceAttr: replaceAttr,
	}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("unsupported log format: %s", cfg.Format)
	}

	return slog.New(handler).With("service", "econbrief"), nil
}

func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindDuration {
		return slog.Float64(a.Key, float64(a.Value.Duration())/float64(time.Millisecond))
	}
	return a
}
