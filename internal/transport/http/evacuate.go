package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/drishti-demo/venue-sim/internal/domain"
)

// Evacuator is the minimal interface needed to start evacuations.
type Evacuator interface {
	Evacuate(ctx context.Context, zoneID string) error
}

// HandleEvacuate returns an HTTP handler for POST /actions/evacuate. The
// zone_id "all" evacuates every zone.
func HandleEvacuate(svc Evacuator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var req evacuateRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		if err := svc.Evacuate(r.Context(), req.ZoneID); err != nil {
			switch err {
			case domain.ErrZoneNotFound:
				writeError(w, http.StatusBadRequest, msgInvalidZone)
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		writeSuccess(w, fmt.Sprintf("Evacuation protocol initiated for zone_id: %s", req.ZoneID))
	}
}

type evacuateRequest struct {
	ZoneID string `json:"zone_id"`
}
