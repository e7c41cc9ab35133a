// Package server implements the HTTP layer: routing, middleware, and the
// handlers that turn path resolutions into responses.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"svgserve/internal/config"
	"svgserve/internal/logging"
)

// Server represents the HTTP server over the configured SVG directory
type Server struct {
	router *http.ServeMux
	server *http.Server
	cfg    *config.ServerConfig
	logger *logging.Logger

	// readFile is swappable so tests can exercise the resolve/read race
	readFile func(string) ([]byte, error)
}

// New creates a new HTTP server instance. cfg must be validated and its
// root canonicalized before this point.
func New(cfg *config.ServerConfig, logger *logging.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		router:   http.NewServeMux(),
		readFile: os.ReadFile,
	}

	s.registerRoutes()

	handler := s.applyMiddleware(s.router)
	s.server = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", map[string]interface{}{
		"addr": s.cfg.Addr(),
		"root": s.cfg.RootDir,
	})

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server", nil)

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	s.logger.Info("Server shut down successfully", nil)
	return nil
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}

// applyMiddleware wraps the handler with middleware in the correct order
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	// Apply middleware in reverse order (last one wraps first)
	handler = RecoveryMiddleware(s.logger)(handler)
	handler = LoggingMiddleware(s.logger)(handler)
	handler = RequestIDMiddleware()(handler)
	handler = CORSMiddleware()(handler)
	return handler
}
