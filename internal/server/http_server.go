// Package server wraps the HTTP listener with the unified middleware chain:
// panic recovery, request IDs, request logging and optional CORS.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"beerdex/internal/config"
)

// Server is the HTTP front of the service.
type Server struct {
	cfg    config.ServerConfig
	logger *slog.Logger
	http   *http.Server
}

// New creates a Server exposing handler at cfg.Addr.
func New(cfg config.ServerConfig, handler http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{cfg: cfg, logger: logger}
	s.http = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.wrapMiddleware(handler),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Start runs the listener until it fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", "addr", s.cfg.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")
	return s.http.Shutdown(ctx)
}
