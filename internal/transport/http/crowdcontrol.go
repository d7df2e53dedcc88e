package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/drishti-demo/venue-sim/internal/domain"
)

// CrowdController is the minimal interface needed to activate crowd control.
type CrowdController interface {
	ActivateCrowdControl(ctx context.Context, zoneID string) error
}

// HandleActivateCrowdControl returns an HTTP handler for
// POST /actions/activate-crowd-control-protocol.
func HandleActivateCrowdControl(svc CrowdController) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var req crowdControlRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		if err := svc.ActivateCrowdControl(r.Context(), req.ZoneID); err != nil {
			switch err {
			case domain.ErrZoneNotFound:
				writeError(w, http.StatusBadRequest, msgInvalidZone)
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		writeSuccess(w, fmt.Sprintf("Crowd control protocol activated for zone_id: %s", req.ZoneID))
	}
}

type crowdControlRequest struct {
	ZoneID string `json:"zone_id"`
}
