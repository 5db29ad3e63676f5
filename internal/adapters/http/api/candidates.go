// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	app "github.com/okian/mound/internal/app"
)

// CandidatesHandler handles candidate-listing requests.
type CandidatesHandler struct {
	deps Dependencies
}

// NewCandidatesHandler creates a new candidates handler.
func NewCandidatesHandler(deps Dependencies) *CandidatesHandler {
	return &CandidatesHandler{deps: deps}
}

// HandleGetCandidates handles
// GET /candidates?pitch_type=FF&start=YYYY-MM-DD&end=YYYY-MM-DD.
func (h *CandidatesHandler) HandleGetCandidates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	start, end, err := parseWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	ids, err := h.deps.Candidates(r.Context(), app.CandidatesQuery{
		Start:     start,
		End:       end,
		PitchType: r.URL.Query().Get("pitch_type"),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}
