package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/drishti-demo/venue-sim/internal/domain"
)

// FireBrigadeDispatcher is the minimal interface needed to dispatch the
// external fire brigade.
type FireBrigadeDispatcher interface {
	DispatchFireBrigade(ctx context.Context, zoneID string) error
}

// HandleDispatchFireBrigade returns an HTTP handler for
// POST /actions/dispatch-fire-brigade.
func HandleDispatchFireBrigade(svc FireBrigadeDispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var req fireBrigadeRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		if err := svc.DispatchFireBrigade(r.Context(), req.ZoneID); err != nil {
			switch err {
			case domain.ErrZoneNotFound:
				writeError(w, http.StatusBadRequest, msgInvalidZone)
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		writeSuccess(w, fmt.Sprintf("Fire brigade dispatched to zone_id: %s", req.ZoneID))
	}
}

type fireBrigadeRequest struct {
	ZoneID string `json:"zone_id"`
}
