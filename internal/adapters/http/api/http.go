// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/okian/mound/internal/adapters/statcast"
	app "github.com/okian/mound/internal/app"
	"github.com/okian/mound/internal/domain/model"
	"github.com/okian/mound/internal/domain/similarity"
)

// dateLayout is the query-parameter date format.
const dateLayout = "2006-01-02"

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	FindSimilar(ctx context.Context, q app.SimilarityQuery) ([]model.RankedMatch, error)
	PitchAverages(ctx context.Context, q app.AveragesQuery) ([]model.FeatureVector, error)
	Candidates(ctx context.Context, q app.CandidatesQuery) ([]int64, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	similarHandler    *SimilarHandler
	averagesHandler   *AveragesHandler
	candidatesHandler *CandidatesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		similarHandler:    NewSimilarHandler(deps),
		averagesHandler:   NewAveragesHandler(deps),
		candidatesHandler: NewCandidatesHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/similar", MetricsMiddleware(s.similarHandler.HandleGetSimilar, "similar"))
	mux.HandleFunc("/averages/", MetricsMiddleware(s.averagesHandler.HandleGetAverages, "averages"))
	mux.HandleFunc("/candidates", MetricsMiddleware(s.candidatesHandler.HandleGetCandidates, "candidates"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates service errors to HTTP status codes. A
// missing target and an empty candidate set are 404s with distinct codes,
// upstream provider failures are 502s, and malformed queries are 400s.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidQuery):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, similarity.ErrTargetNotFound):
		writeError(w, http.StatusNotFound, "target_not_found", err)
	case errors.Is(err, similarity.ErrNoCandidates):
		writeError(w, http.StatusNotFound, "no_candidates", err)
	case errors.Is(err, statcast.ErrUpstream):
		writeError(w, http.StatusBadGateway, "upstream_error", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// parseWindow reads start/end query params in YYYY-MM-DD form.
func parseWindow(r *http.Request) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, r.URL.Query().Get("start"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid start; must be YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, r.URL.Query().Get("end"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid end; must be YYYY-MM-DD")
	}
	return start, end, nil
}
