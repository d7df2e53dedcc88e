package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/drishti-demo/venue-sim/internal/domain"
)

// Announcer is the minimal interface needed to record announcements.
type Announcer interface {
	MakeAnnouncement(ctx context.Context, zoneID, message string) (domain.Announcement, error)
}

// HandleMakeAnnouncement returns an HTTP handler for
// POST /actions/make-announcement.
func HandleMakeAnnouncement(svc Announcer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var req makeAnnouncementRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		if req.Message == "" {
			writeError(w, http.StatusBadRequest, domain.ErrMessageRequired.Error())
			return
		}

		_, err := svc.MakeAnnouncement(r.Context(), req.ZoneID, req.Message)
		if err != nil {
			switch err {
			case domain.ErrZoneNotFound:
				writeError(w, http.StatusBadRequest, msgInvalidZone)
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		writeSuccess(w, fmt.Sprintf("Announcement for %s acknowledged", req.ZoneID))
	}
}

type makeAnnouncementRequest struct {
	ZoneID  string `json:"zone_id"`
	Message string `json:"message"`
}

// AnnouncementLister is the minimal interface needed to list the audit log.
type AnnouncementLister interface {
	Announcements() []domain.Announcement
}

// HandleAnnouncements returns an HTTP handler for GET /announcements.
func HandleAnnouncements(svc AnnouncementLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		records := svc.Announcements()
		resp := make([]announcementResponse, 0, len(records))
		for _, a := range records {
			resp = append(resp, announcementResponse{
				ID:      a.ID,
				ZoneID:  a.ZoneID,
				Kind:    string(a.Kind),
				Message: a.Message,
				At:      a.At,
			})
		}
		writeJSON(w, resp)
	}
}

type announcementResponse struct {
	ID      string    `json:"id"`
	ZoneID  string    `json:"zone_id"`
	Kind    string    `json:"kind"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}
