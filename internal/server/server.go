// Package server exposes the todo GraphQL schema over HTTP, either on a
// standalone listener or embedded in a gin engine with static assets.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/hmans/todoql/internal/config"
	"github.com/hmans/todoql/internal/graph"
	"github.com/hmans/todoql/internal/todo"
	"github.com/hmans/todoql/internal/web"
)

// Server is an HTTP server for the todo API.
type Server struct {
	cfg        config.ServerConfig
	log        zerolog.Logger
	httpServer *http.Server
}

// New builds the GraphQL engine for store and the transport selected by
// cfg.Mode. The engine is fully initialised before New returns, so a server
// never listens with a broken schema.
func New(cfg config.ServerConfig, store todo.Store, log zerolog.Logger) (*Server, error) {
	schema, err := graph.NewSchema(store, log)
	if err != nil {
		return nil, err
	}

	var handler http.Handler
	switch cfg.Mode {
	case config.ModeStandalone:
		handler = newStandaloneHandler(schema, log)
	case config.ModeEmbedded:
		assets, err := web.Assets(cfg.StaticDir)
		if err != nil {
			return nil, fmt.Errorf("static assets: %w", err)
		}
		handler = newEmbeddedHandler(cfg, schema, assets, log)
	default:
		return nil, fmt.Errorf("unknown server mode %q", cfg.Mode)
	}

	return &Server{
		cfg: cfg,
		log: log,
		httpServer: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}, nil
}

// Handler returns the HTTP handler of the configured transport.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// endpointPath returns the path GraphQL is served on.
func (s *Server) endpointPath() string {
	if s.cfg.Mode == config.ModeStandalone {
		return "/"
	}
	return s.cfg.GraphQLPath
}

// Run listens on the configured port and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	port := s.cfg.Port
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		port = addr.Port
	}

	// Channel to listen for server errors
	serverErr := make(chan error, 1)

	go func() {
		serverErr <- s.httpServer.Serve(ln)
	}()

	s.log.Info().
		Str("mode", s.cfg.Mode).
		Msgf("Server ready at http://localhost:%d", port)
	s.log.Info().Msgf("GraphQL endpoint: http://localhost:%d%s", port, s.endpointPath())

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		s.log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout.Std())
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.log.Info().Msg("server stopped")
	}

	return nil
}
