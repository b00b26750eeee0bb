package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/JoMedeiros/ray-tracing/internal/config"
	"github.com/JoMedeiros/ray-tracing/pkg/loaders"
	"github.com/JoMedeiros/ray-tracing/pkg/renderer"
)

// Server handles web requests for the render service
type Server struct {
	cfg     *config.Config
	logger  *slog.Logger
	jobs    *JobStore
	router  *mux.Router
	baseCtx context.Context
	stop    context.CancelFunc
}

// NewServer creates a new web server
func NewServer(cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	baseCtx, stop := context.WithCancel(context.Background())
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		jobs:    NewJobStore(renderer.Config{TileSize: cfg.TileSize, NumWorkers: cfg.Workers}, logger),
		baseCtx: baseCtx,
		stop:    stop,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()

	// Global middleware
	r.Use(recovery(s.logger))
	r.Use(requestLogger(s.logger))

	r.HandleFunc("/api/health", s.handleHealth).Methods("GET")

	// Render jobs
	r.HandleFunc("/api/renders", s.handleCreateRender).Methods("POST")
	r.HandleFunc("/api/renders/{id}", s.handleGetRender).Methods("GET")
	r.HandleFunc("/api/renders/{id}", s.handleDeleteRender).Methods("DELETE")
	r.HandleFunc("/api/renders/{id}/image", s.handleRenderImage).Methods("GET")
	r.HandleFunc("/api/renders/{id}/inspect", s.handleInspect).Methods("GET")

	// WebSocket endpoint
	r.HandleFunc("/ws/renders/{id}", s.handleProgress)

	return r
}

// Handler returns the HTTP handler serving every route
func (s *Server) Handler() http.Handler {
	return s.router
}

// Jobs returns the render job registry
func (s *Server) Jobs() *JobStore {
	return s.jobs
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
		s.Close()
	}()

	s.logger.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close cancels every render job and waits for them to stop
func (s *Server) Close() {
	s.stop()
	s.jobs.Shutdown()
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "jobs": s.jobs.Len()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	s.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

// writeConfigError reports every problem of an invalid scene document
func (s *Server) writeConfigError(w http.ResponseWriter, r *http.Request, configErr *loaders.ConfigError) {
	response := ErrorResponse{Error: "invalid scene"}
	for _, p := range configErr.Problems {
		response.Problems = append(response.Problems, Problem{Path: p.Path, Message: p.Err.Error()})
	}
	s.writeJSON(w, http.StatusUnprocessableEntity, response)
}
