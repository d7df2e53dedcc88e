package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/drishti-demo/venue-sim/internal/domain"
)

// UnitDispatcher is the minimal interface needed to dispatch personnel.
type UnitDispatcher interface {
	DispatchUnit(ctx context.Context, personnelID, destination string) (domain.Personnel, error)
}

// HandleDispatchUnit returns an HTTP handler for POST /actions/dispatch-unit.
func HandleDispatchUnit(svc UnitDispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var req dispatchUnitRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		_, err := svc.DispatchUnit(r.Context(), req.PersonnelID, req.DestinationDetails)
		if err != nil {
			switch err {
			case domain.ErrPersonnelNotFound:
				writeError(w, http.StatusBadRequest, msgInvalidPersonnel)
			case domain.ErrAlreadyDispatched:
				writeError(w, http.StatusConflict,
					fmt.Sprintf("Unit %s is already dispatched", req.PersonnelID))
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		writeSuccess(w, fmt.Sprintf("Unit %s dispatched successfully", req.PersonnelID))
	}
}

type dispatchUnitRequest struct {
	PersonnelID        string `json:"personnel_id"`
	DestinationDetails string `json:"destination_details"`
}
