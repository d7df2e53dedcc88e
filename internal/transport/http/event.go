package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/drishti-demo/venue-sim/internal/app"
	"github.com/drishti-demo/venue-sim/internal/domain"
)

// EventTrigger is the minimal interface needed to trigger venue alerts.
type EventTrigger interface {
	TriggerEvent(ctx context.Context, in app.TriggerEventInput) (app.TriggerEventResult, error)
}

// HandleTriggerEvent returns an HTTP handler for POST /event.
func HandleTriggerEvent(svc EventTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var req triggerEventRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		_, err := svc.TriggerEvent(r.Context(), app.TriggerEventInput{
			Type: domain.AlertType(req.Type),
			Zone: req.Zone,
		})
		if err != nil {
			switch err {
			case domain.ErrZoneNotFound:
				writeError(w, http.StatusBadRequest, msgInvalidZone)
			case domain.ErrInvalidAlertType:
				writeError(w, http.StatusBadRequest, msgInvalidEventType)
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		writeSuccess(w, fmt.Sprintf("%s event triggered in %s", req.Type, req.Zone))
	}
}

type triggerEventRequest struct {
	Type string `json:"type"`
	Zone string `json:"zone"`
}
