package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/drishti-demo/venue-sim/internal/domain"
)

// GateToggler is the minimal interface needed to toggle gates.
type GateToggler interface {
	ToggleGate(ctx context.Context, gateID string, status domain.GateStatus) (domain.GateStatus, error)
}

// HandleToggleGate returns an HTTP handler for POST /actions/toggle-gate.
func HandleToggleGate(svc GateToggler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var req toggleGateRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		status, err := svc.ToggleGate(r.Context(), req.GateID, domain.GateStatus(req.Status))
		if err != nil {
			switch err {
			case domain.ErrGateNotFound:
				writeError(w, http.StatusBadRequest, msgInvalidGate)
			case domain.ErrInvalidGateStatus:
				writeError(w, http.StatusBadRequest, msgInvalidStatus)
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		writeSuccess(w, fmt.Sprintf("Gate %s has been set to %s", req.GateID, status))
	}
}

type toggleGateRequest struct {
	GateID string `json:"gate_id"`
	Status string `json:"status"`
}
