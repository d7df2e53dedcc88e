package app

import (
	"github.com/drishti-demo/venue-sim/internal/domain"
	"github.com/drishti-demo/venue-sim/internal/state"
)

// QueryService is the pure read path for polling clients. It never mutates
// state; every read is a lock-consistent copy.
type QueryService struct {
	store *state.Store
}

func NewQueryService(store *state.Store) *QueryService {
	return &QueryService{store: store}
}

// Snapshot returns the full venue snapshot.
func (s *QueryService) Snapshot() state.Snapshot {
	return s.store.Snapshot()
}

// ZoneSummary returns one zone with its gates and in-zone personnel.
func (s *QueryService) ZoneSummary(zoneID string) (state.ZoneSummary, error) {
	return s.store.SnapshotZone(zoneID)
}

// Announcements returns the audit log of acknowledged announcements, oldest
// first.
func (s *QueryService) Announcements() []domain.Announcement {
	return s.store.Announcements()
}
