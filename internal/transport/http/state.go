package http

import (
	"net/http"
	"strings"

	"github.com/drishti-demo/venue-sim/internal/domain"
	"github.com/drishti-demo/venue-sim/internal/state"
)

// StateReader is the minimal interface needed to serve snapshots.
type StateReader interface {
	Snapshot() state.Snapshot
	ZoneSummary(zoneID string) (state.ZoneSummary, error)
}

// HandleState returns an HTTP handler serving the full venue snapshot.
func HandleState(svc StateReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeJSON(w, svc.Snapshot())
	}
}

// HandleZoneSummary returns an HTTP handler serving one zone with its gates
// and in-zone personnel, for the agent's narrower tool calls.
func HandleZoneSummary(svc StateReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		zoneID, ok := parseZoneSummaryPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, "not found")
			return
		}

		summary, err := svc.ZoneSummary(zoneID)
		if err != nil {
			switch err {
			case domain.ErrZoneNotFound:
				writeError(w, http.StatusBadRequest, msgInvalidZone)
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}
		writeJSON(w, summary)
	}
}

func parseZoneSummaryPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 {
		return "", false
	}
	if parts[0] != "state" || parts[1] != "zones" || parts[2] == "" {
		return "", false
	}
	return parts[2], true
}
