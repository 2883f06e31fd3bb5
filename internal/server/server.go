// Package server provides the HTTP API for the document pipeline.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/stipsportal/docintel/internal/common"
	"github.com/stipsportal/docintel/internal/pipeline"
)

// Server is the HTTP front end over the batch pipeline.
type Server struct {
	batch  *pipeline.Batch
	config common.ServerConfig
	logger *slog.Logger
	server *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(batch *pipeline.Batch, cfg common.ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		batch:  batch,
		config: cfg,
		logger: logger,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/documents", s.handleProcessBatch)
	r.Post("/api/v1/documents/summary.xlsx", s.handleSummaryXLSX)
	r.Get("/health", s.handleHealth)

	s.server = &http.Server{
		Addr:    s.config.HTTPAddr,
		Handler: r,
	}
	s.logger.Info("server.start", "addr", s.config.HTTPAddr)
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
