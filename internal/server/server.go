// Package server provides the HTTP transport for the job advisor: JSON
// endpoints for the classification and generation use cases, SSE streaming
// for the two generative flows, and shared-secret authentication.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/job-advisor/internal/types"
)

// Advisor is the use-case surface the transport exposes. The concrete
// implementation lives in internal/advisor; handlers never reach past it.
type Advisor interface {
	IsBadInput(ctx context.Context, in types.JobPostingInput) (bool, error)
	CheckTitleAccuracy(ctx context.Context, in types.JobPostingInput) (int, error)
	AlternativeTitles(ctx context.Context, in types.JobPostingInput) ([]string, error)
	PositiveContentScan(ctx context.Context, jobDescription string) (*types.PositiveContentCheck, error)
	NegativeContentScan(ctx context.Context, jobDescription string) (*types.NegativeContentCheck, error)
	DesignSuggestions(ctx context.Context, in types.JobPostingInput, fast bool) (<-chan string, <-chan error, error)
	Rewrite(ctx context.Context, in types.JobPostingInput, fast bool) (<-chan string, <-chan error)
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	advisor    Advisor
	apiKey     string
	logger     zerolog.Logger
}

// Config holds server configuration
type Config struct {
	Port   int
	APIKey string
	// Metrics, when non-nil, is mounted unauthenticated at GET /metrics.
	Metrics http.Handler
	Logger  zerolog.Logger
}

// New creates a new server instance
func New(cfg Config, adv Advisor) *Server {
	s := &Server{
		advisor: adv,
		apiKey:  cfg.APIKey,
		logger:  cfg.Logger,
	}

	mux := http.NewServeMux()

	// Unauthenticated ping endpoints.
	mux.HandleFunc("GET /{$}", s.handlePing)
	mux.HandleFunc("GET /healthcheck", s.handlePing)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}

	// Everything below requires the shared secret.
	mux.Handle("POST /title_check", s.withAuth(http.HandlerFunc(s.handleTitleCheck)))
	mux.Handle("POST /alt_titles", s.withAuth(http.HandlerFunc(s.handleAltTitles)))
	mux.Handle("POST /positive_content_check", s.withAuth(http.HandlerFunc(s.handlePositiveContentCheck)))
	mux.Handle("POST /negative_content_check", s.withAuth(http.HandlerFunc(s.handleNegativeContentCheck)))
	mux.Handle("POST /job_design_suggestions", s.withAuth(http.HandlerFunc(s.handleJobDesignSuggestions)))
	mux.Handle("POST /rewrite_jd", s.withAuth(http.HandlerFunc(s.handleRewriteJD)))

	s.httpServer = &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     s.withLogging(mux),
		ReadTimeout: 30 * time.Second,
		// No WriteTimeout: the streaming endpoints hold the response open
		// for as long as generation runs.
		IdleTimeout: 60 * time.Second,
	}

	return s
}

// Handler returns the server's root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until SIGINT/SIGTERM,
// then drains in-flight requests before returning.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info().Msg("server stopped")
	return nil
}

// handlePing returns server health status
func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, detail string) {
	s.jsonResponse(w, status, map[string]string{"detail": detail})
}
