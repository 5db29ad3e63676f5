// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"strconv"

	app "github.com/okian/mound/internal/app"
)

// SimilarHandler handles find-similar requests.
type SimilarHandler struct {
	deps Dependencies
}

// NewSimilarHandler creates a new similar handler.
func NewSimilarHandler(deps Dependencies) *SimilarHandler {
	return &SimilarHandler{deps: deps}
}

// HandleGetSimilar handles
// GET /similar?target=ID&pitch_type=FF&start=YYYY-MM-DD&end=YYYY-MM-DD&top_n=N.
//
// top_n is optional; the service default applies when omitted. A window in
// which nobody threw the pitch type returns 200 with an empty list, while
// a target who did not throw it returns 404 target_not_found.
func (h *SimilarHandler) HandleGetSimilar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	target, err := strconv.ParseInt(r.URL.Query().Get("target"), 10, 64)
	if err != nil || target < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("invalid target: %w", ErrBadRequest))
		return
	}
	start, end, err := parseWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	q := app.SimilarityQuery{
		Start:     start,
		End:       end,
		TargetID:  target,
		PitchType: r.URL.Query().Get("pitch_type"),
	}
	if raw := r.URL.Query().Get("top_n"); raw != "" {
		topN, err := strconv.Atoi(raw)
		if err != nil || topN < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("invalid top_n: %w", ErrBadRequest))
			return
		}
		q.TopN = topN
	}

	matches, err := h.deps.FindSimilar(r.Context(), q)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}
