// Package api exposes the contact submission pipeline over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/smesner/contactsweb/internal/config"
	"github.com/smesner/contactsweb/internal/pkg/logger"
)

// Submit endpoint budget per client IP. Generous for humans, tight for
// scripts; the per-address cooldown does the fine-grained gating.
const (
	submitPerSecond = 1.0
	submitBurst     = 5
)

// Server wraps the HTTP server with lifecycle management.
type Server struct {
	httpServer *http.Server
}

// NewServer builds the router and wires it into an http.Server with
// conservative timeouts. The form payloads are tiny, so anything slow
// is a client problem, not ours.
func NewServer(cfg config.ServerConfig, h *Handlers) *Server {
	router := SetupRoutes(h, NewIPRateLimiter(submitPerSecond, submitBurst))

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start begins listening. Blocks until the server stops.
func (s *Server) Start() error {
	logger.Info("http server starting", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}
