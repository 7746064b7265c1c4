// Package server defines the core Server struct that composes the app's main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - the service logger
//   - the destination index (loaded once, read-only afterwards)
//   - http.Server
//
// It provides constructors and start/shutdown logic to run the application cleanly.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/deppfellow/tripweaver/internal/config"
	"github.com/deppfellow/tripweaver/internal/index"
)

// Server is the application container that holds shared resources.
//
// It is not the HTTP server itself. Everything it holds is built once at
// startup and injected into middleware, handlers and services; nothing in
// it changes while requests are served.
type Server struct {
	// Config holds all environment/config values for the app.
	Config *config.Config

	// Logger is the application's main structured logger.
	Logger *zerolog.Logger

	// Index is the destination snapshot every plan request reads from.
	Index *index.Index

	// httpServer is configured in SetupHTTPServer and started in Start().
	httpServer *http.Server
}

// New constructs a Server and loads the destination index.
//
// Index loading never fails startup: a missing or malformed file is logged
// and the server continues with an empty destination set.
func New(cfg *config.Config, logger *zerolog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	idx := index.LoadOrEmpty(cfg.Index.Path, logger)

	return NewWithIndex(cfg, logger, idx), nil
}

// NewWithIndex constructs a Server around an index that is already loaded.
func NewWithIndex(cfg *config.Config, logger *zerolog.Logger, idx *index.Index) *Server {
	return &Server{
		Config: cfg,
		Logger: logger,
		Index:  idx,
	}
}

// SetupHTTPServer configures the internal net/http server.
//
// The router (Echo instance) is passed in as handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:    ":" + s.Config.Server.Port,
		Handler: handler,

		// Config stores int values, interpreted here as seconds.
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server.
//
// It requires SetupHTTPServer to be called first and blocks until the server
// stops. A graceful Shutdown makes it return nil.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Int("destinations", s.Index.Len()).
		Bool("index_degraded", s.Index.Degraded()).
		Msg("starting server")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server, finishing in-flight
// requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	s.Logger.Info().Msg("shutting down server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	return nil
}
