package http

import (
	"encoding/json"
	"net/http"
)

// Wire messages follow the venue simulator's original contract, which the
// agent's tool-calling layer string-matches on.
const (
	msgInvalidZone      = "Invalid zone_id provided."
	msgInvalidEventType = "Invalid event type provided."
	msgInvalidGate      = "Invalid gate_id provided."
	msgInvalidStatus    = "Invalid status provided."
	msgInvalidPersonnel = "Invalid personnel_id provided."
	msgInvalidBody      = "Invalid request body."
)

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func writeSuccess(w http.ResponseWriter, msg string) {
	writeStatus(w, http.StatusOK, statusResponse{Status: "success", Message: msg})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeStatus(w, status, statusResponse{Status: "error", Message: msg})
}

func writeStatus(w http.ResponseWriter, status int, resp statusResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(resp)
	if err != nil {
		_, _ = w.Write([]byte(`{"status":"error","message":"internal error"}`))
		return
	}
	_, _ = w.Write(payload)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
