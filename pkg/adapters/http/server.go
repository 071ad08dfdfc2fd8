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

	"github.com/aretw0/animclone"
	"github.com/aretw0/animclone/internal/presentation/graph"
	"github.com/aretw0/animclone/pkg/adapters/yamlasset"
	"github.com/aretw0/animclone/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MaxBodyBytes caps the size of an uploaded asset.
const MaxBodyBytes = 8 << 20

// Engine is the clone capability the server exposes.
type Engine interface {
	Clone(ctx context.Context, root *domain.StateMachine) (*animclone.Result, error)
}

// Server serves clone requests over HTTP.
type Server struct {
	Engine   Engine
	Codec    *yamlasset.Codec
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// CloneResponse is the body of a successful POST /v1/clone.
type CloneResponse struct {
	Asset      string           `json:"asset"`
	Summary    domain.Summary   `json:"summary"`
	Warnings   []domain.Warning `json:"warnings"`
	Registered int              `json:"registered"`
	Conflicts  int              `json:"conflicts"`
	Failures   int              `json:"failures"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewHandler creates the HTTP handler for s.
// A nil Gatherer disables /metrics.
func NewHandler(s *Server) http.Handler {
	if s.Codec == nil {
		s.Codec = yamlasset.NewCodec(nil)
	}
	if s.Logger == nil {
		s.Logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/clone", s.Clone)
		r.Post("/graph", s.Graph)
	})
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Clone handles POST /v1/clone. The body is an asset document in YAML or JSON.
func (s *Server) Clone(w http.ResponseWriter, r *http.Request) {
	root, ok := s.decode(w, r)
	if !ok {
		return
	}

	res, err := s.Engine.Clone(r.Context(), root)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrBehaviourAttach) {
			status = http.StatusUnprocessableEntity
		}
		s.Logger.Error("Clone failed", "error", err, "request_id", middleware.GetReqID(r.Context()))
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	asset, err := s.Codec.Encode(res.Root)
	if err != nil {
		s.Logger.Error("Clone encode failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	warnings := res.Warnings
	if warnings == nil {
		warnings = []domain.Warning{}
	}
	s.Logger.Info("Clone served", "machines", res.Summary.Machines, "states", res.Summary.States, "warnings", len(warnings))
	writeJSON(w, http.StatusOK, CloneResponse{
		Asset:      string(asset),
		Summary:    res.Summary,
		Warnings:   warnings,
		Registered: res.Registered,
		Conflicts:  res.Conflicts,
		Failures:   res.Failures,
	})
}

// Graph handles POST /v1/graph and answers with a Mermaid diagram of the uploaded asset.
func (s *Server) Graph(w http.ResponseWriter, r *http.Request) {
	root, ok := s.decode(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, graph.GenerateMermaid(root, nil))
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "animclone-http",
		"version": strings.TrimSpace(animclone.Version),
	})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (*domain.StateMachine, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "asset too large"})
			return nil, false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read request body"})
		return nil, false
	}
	if len(data) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "empty request body"})
		return nil, false
	}

	// JSON is a subset of YAML, so one decoder serves both content types.
	root, err := s.Codec.Decode(data)
	if err != nil {
		s.Logger.Warn("Invalid asset", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid asset: %v", err)})
		return nil, false
	}
	return root, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}
