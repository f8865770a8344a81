package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/econbrief/econbrief/internal/config"
)

// Server hosts the econbrief router and owns its listener lifecycle.
type Server struct {
	http            *http.Server
	logger          *slog.Logger
	shutdownTimeout time.Duration

	mu    sync.Mutex
	bound net.Addr
	ready chan struct{}
}

// New wraps handler in an http.Server configured from cfg. Port "0" picks a
// free port, reported by Addr once the server is listening.
func New(cfg config.ServerConfig, logger *slog.Logger, handler http.Handler) *Server {
	return &Server{
		http: &http.Server{
			Addr:              net.JoinHostPort("", cfg.Port),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
		logger:          logger,
		shutdownTimeout: cfg.ShutdownTimeout,
		ready:           make(chan struct{}),
	}
}

// Ready is closed once the listener is bound.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr is the bound address after Ready, the configured one before.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bound != nil {
		return s.bound.String()
	}
	return s.http.Addr
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most the configured shutdown timeout. A clean shutdown returns nil.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("http listen: %w", err)
	}

	s.mu.Lock()
	s.bound = ln.Addr()
	s.mu.Unlock()
	close(s.ready)
	s.logger.Info("server listening", "addr", ln.Addr().String())

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.http.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server", "timeout", s.shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	<-serveErr
	return nil
}
