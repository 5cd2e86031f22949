package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/dto"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machines"
	"github.com/go-chi/chi/v5"
)

// maxBodyBytes bounds POST bodies. A full default tape is 256 symbols.
const maxBodyBytes = 64 << 10

// Engine defines the part of the turing engine the server exposes.
type Engine interface {
	Machines() []machines.Definition
	Run(ctx context.Context, req turing.RunRequest) (*domain.Snapshot, error)
	Snapshot(ctx context.Context, runID string) (*domain.Snapshot, error)
	Runs(ctx context.Context) ([]*domain.Snapshot, error)
	DeleteRun(ctx context.Context, runID string) error
}

// Server serves the JSON API.
type Server struct {
	Engine  Engine
	Streams *StreamManager
	logger  *slog.Logger
	metrics http.Handler
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the logger for request errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics mounts a Prometheus handler on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithStreams enables GET /events. The same StreamManager's Hooks must be registered
// on the engine for events to flow.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// runBody is the POST /machines/{name}/runs payload. Every field is optional.
type runBody struct {
	Tape   string  `json:"tape"`
	Cursor *int    `json:"cursor,omitempty"`
	Fill   *string `json:"fill,omitempty"`
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{Engine: engine}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/machines", s.ListMachines)
	r.Post("/machines/{name}/runs", s.CreateRun)
	r.Route("/runs", func(r chi.Router) {
		r.Get("/", s.ListRuns)
		r.Get("/{id}", s.GetRun)
		r.Delete("/{id}", s.DeleteRun)
	})
	if s.Streams != nil {
		r.Get("/events", s.SubscribeEvents)
	}
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"app":     "turing-http",
		"version": strings.TrimSpace(turing.Version),
	})
}

// ListMachines handles GET /machines.
func (s *Server) ListMachines(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, dto.FromDefinitions(s.Engine.Machines()))
}

// CreateRun handles POST /machines/{name}/runs.
//
// A run that ends in an error is still a run: the snapshot is returned with status 422
// and its error field set. Request problems are 400 or 404 without a snapshot.
func (s *Server) CreateRun(w http.ResponseWriter, r *http.Request) {
	var body runBody
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		s.logger.Warn("CreateRun: invalid request body", "error", err)
		respondError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	req := turing.RunRequest{
		Machine: chi.URLParam(r, "name"),
		Tape:    body.Tape,
		Cursor:  body.Cursor,
		Fill:    body.Fill,
	}
	snap, err := s.Engine.Run(r.Context(), req)
	switch {
	case snap == nil && err != nil:
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			s.logger.Error("CreateRun failed", "machine", req.Machine, "error", err)
		}
		respondError(w, status, err)
	case err != nil:
		s.logger.Debug("CreateRun: run did not halt", "machine", req.Machine, "run_id", snap.RunID, "error", err)
		respondJSON(w, http.StatusUnprocessableEntity, snap)
	default:
		respondJSON(w, http.StatusCreated, snap)
	}
}

// ListRuns handles GET /runs.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.Engine.Runs(r.Context())
	if err != nil {
		s.logger.Error("ListRuns failed", "error", err)
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, runs)
}

// GetRun handles GET /runs/{id}.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Engine.Snapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// DeleteRun handles DELETE /runs/{id}.
func (s *Server) DeleteRun(w http.ResponseWriter, r *http.Request) {
	if err := s.Engine.DeleteRun(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.logger.Error("DeleteRun failed", "error", err)
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMachineNotFound), errors.Is(err, domain.ErrRunNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, struct {
		Error  string `json:"error"`
		Status int    `json:"status"`
	}{Error: err.Error(), Status: status})
}
