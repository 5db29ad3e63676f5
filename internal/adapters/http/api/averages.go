// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"
	"strings"

	app "github.com/okian/mound/internal/app"
)

// AveragesHandler handles per-pitch-type averages requests.
type AveragesHandler struct {
	deps Dependencies
}

// NewAveragesHandler creates a new averages handler.
func NewAveragesHandler(deps Dependencies) *AveragesHandler {
	return &AveragesHandler{deps: deps}
}

// HandleGetAverages handles
// GET /averages/{pitcher_id}?start=YYYY-MM-DD&end=YYYY-MM-DD.
// Returns one mean vector per pitch type the pitcher threw in the window;
// an empty list means no pitches in the window.
func (h *AveragesHandler) HandleGetAverages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /averages/
	path := strings.TrimPrefix(r.URL.Path, "/averages/")
	if path == "" || strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	pitcherID, err := strconv.ParseInt(path, 10, 64)
	if err != nil || pitcherID < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	start, end, err := parseWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	vectors, err := h.deps.PitchAverages(r.Context(), app.AveragesQuery{
		Start:     start,
		End:       end,
		PitcherID: pitcherID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vectors)
}
