package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/drishti-demo/venue-sim/internal/domain"
)

type fakeGateToggler struct {
	err error
}

func (f *fakeGateToggler) ToggleGate(_ context.Context, gateID string, status domain.GateStatus) (domain.GateStatus, error) {
	if f.err != nil {
		return "", f.err
	}
	return status, nil
}

func TestHandleToggleGate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			body:           `{"gate_id":"e1_fire_exit","status":"open"}`,
			expectedStatus: http.StatusOK,
			expectedSubstr: `"message":"Gate e1_fire_exit has been set to open"`,
		},
		{
			name:           "invalid json",
			body:           `{"gate_id":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown gate",
			body:           `{"gate_id":"side_door","status":"open"}`,
			serviceErr:     domain.ErrGateNotFound,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "Invalid gate_id provided.",
		},
		{
			name:           "invalid status",
			body:           `{"gate_id":"e1_fire_exit","status":"ajar"}`,
			serviceErr:     domain.ErrInvalidGateStatus,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "Invalid status provided.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeGateToggler{err: tt.serviceErr}
			req := httptest.NewRequest(http.MethodPost, "/actions/toggle-gate", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			HandleToggleGate(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d (body %s)", tt.expectedStatus, rec.Code, rec.Body.String())
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected body to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}
