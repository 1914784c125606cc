// Package http exposes the built-in samples over a JSON API.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/planner"
	"github.com/aretw0/planner/internal/config"
	"github.com/aretw0/planner/internal/samples"
	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxBodyBytes = 1 << 20

// Server solves sample problems on request.
type Server struct {
	Samples *samples.Registry

	// Config holds the search defaults; requests may override the search fields
	// but never exceed Config.Server.MaxNodes or Config.Server.MaxTimeout.
	Config config.Config

	// Stores creates one node store per request. Nil means in-memory.
	Stores planner.StoreFactory

	Metrics  *observability.Metrics
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// SolveResponse is the JSON body returned by the solve endpoint.
type SolveResponse struct {
	Problem string              `json:"problem"`
	Status  domain.SearchStatus `json:"status"`
	Reason  domain.AbortReason  `json:"reason,omitempty"`
	Error   string              `json:"error,omitempty"`
	Plan    []string            `json:"plan,omitempty"`
	Cost    float64             `json:"cost"`
	Stats   domain.Stats        `json:"stats"`
}

// NewHandler creates a new HTTP handler for the server.
func NewHandler(s *Server) http.Handler {
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, s.Logger, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/samples", s.listSamples)
	r.Get("/samples/{name}", s.getSample)
	r.Post("/samples/{name}/solve", s.solve)
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listSamples(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, http.StatusOK, s.Samples.List())
}

func (s *Server) getSample(w http.ResponseWriter, r *http.Request) {
	sample, err := s.Samples.Get(chi.URLParam(r, "name"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, s.Logger, http.StatusOK, sample)
}

// solve handles POST /samples/{name}/solve.
// The optional body holds search overrides plus a "params" object for the sample.
func (s *Server) solve(w http.ResponseWriter, r *http.Request) {
	logger := s.Logger.With("request_id", middleware.GetReqID(r.Context()))

	sample, err := s.Samples.Get(chi.URLParam(r, "name"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	cfg, params, err := s.decodeRequest(w, r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		logger.Warn("solve: invalid request body", "error", err)
		return
	}
	if cfg.Heuristic == "" {
		cfg.Heuristic = sample.DefaultHeuristic
	}

	problem, err := sample.Build(params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	opts, err := cfg.EngineOptions(sample.Heuristic)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	opts = append(opts, planner.WithLogger(logger))
	if s.Stores != nil {
		opts = append(opts, planner.WithStoreFactory(s.Stores))
	}
	if s.Metrics != nil {
		opts = append(opts, planner.WithLifecycleHooks(s.Metrics.Hooks()))
	}

	eng := planner.New(opts...)
	res, err := eng.Solve(r.Context(), problem)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidProblem) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, fmt.Sprintf("Solve error: %v", err), status)
		logger.Error("solve failed", "sample", sample.Name, "error", err)
		return
	}
	if s.Metrics != nil {
		s.Metrics.ObservePlan(eng.Strategy(), res.Plan)
	}

	resp := SolveResponse{
		Problem: problem.Name,
		Status:  res.Status,
		Reason:  res.Reason,
		Plan:    res.Plan.Names(),
		Stats:   res.Stats,
	}
	if res.Plan != nil {
		resp.Cost = res.Plan.Cost
	}
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}
	writeJSON(w, logger, http.StatusOK, resp)
}

func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (config.Config, map[string]any, error) {
	cfg := s.Config
	body := map[string]any{}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return cfg, nil, err
	}

	var params map[string]any
	if raw, ok := body["params"]; ok {
		params, ok = raw.(map[string]any)
		if !ok {
			return cfg, nil, errors.New("params must be an object")
		}
		delete(body, "params")
	}
	for _, key := range []string{"store", "server", "log_level"} {
		if _, ok := body[key]; ok {
			return cfg, nil, fmt.Errorf("%s cannot be set per request", key)
		}
	}

	if err := config.Decode(body, &cfg); err != nil {
		return cfg, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}
	return s.Config.Server.Limit(cfg), params, nil
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}
