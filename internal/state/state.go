// Package state owns the authoritative in-memory venue records. Every
// mutation and every multi-field read goes through the single store lock, so
// the background protocol engine and concurrent HTTP handlers always observe
// and produce consistent state.
package state

import (
	"sort"
	"sync"
	"time"

	"github.com/drishti-demo/venue-sim/internal/config"
	"github.com/drishti-demo/venue-sim/internal/domain"
)

// maxAnnouncements bounds the audit ring; older entries are discarded.
const maxAnnouncements = 200

// Store is the single source of truth for zones, personnel, and gates.
// Callers never hold references to its records outside a With callback.
type Store struct {
	mu            sync.Mutex
	zones         map[string]*domain.Zone
	personnel     map[string]*domain.Personnel
	gates         map[string]*domain.Gate
	announcements []domain.Announcement
}

// New builds a store from the static venue topology.
func New(cfg *config.Venue) *Store {
	s := &Store{
		zones:     make(map[string]*domain.Zone, len(cfg.Zones)),
		personnel: make(map[string]*domain.Personnel, len(cfg.Personnel)),
		gates:     make(map[string]*domain.Gate, len(cfg.Gates)),
	}
	for id, z := range cfg.Zones {
		s.zones[id] = &domain.Zone{
			ID:           id,
			AreaSqm:      z.AreaSqm,
			NumPeople:    z.NumPeople,
			ActiveAlerts: make(map[domain.AlertType]time.Time),
		}
	}
	for id, p := range cfg.Personnel {
		s.personnel[id] = &domain.Personnel{
			ID:          id,
			Name:        p.Name,
			Type:        domain.PersonnelType(p.Type),
			Status:      domain.PersonnelStatus(p.Status),
			CurrentZone: p.CurrentZone,
		}
	}
	for id, g := range cfg.Gates {
		s.gates[id] = &domain.Gate{
			ID:     id,
			ZoneID: g.ZoneID,
			Type:   domain.GateType(g.Type),
			Status: domain.GateStatus(g.Status),
		}
	}
	return s
}

// With runs fn inside the store's critical section. The View is only valid
// for the duration of the callback; fn must not block on I/O or sleeps.
func (s *Store) With(fn func(v *View) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&View{store: s})
}

// View is the lock-scoped window onto the mutable records.
type View struct {
	store *Store
}

// Zone looks up a zone by id.
func (v *View) Zone(id string) (*domain.Zone, bool) {
	z, ok := v.store.zones[id]
	return z, ok
}

// Personnel looks up a roster unit by id.
func (v *View) Personnel(id string) (*domain.Personnel, bool) {
	p, ok := v.store.personnel[id]
	return p, ok
}

// Gate looks up a gate by id.
func (v *View) Gate(id string) (*domain.Gate, bool) {
	g, ok := v.store.gates[id]
	return g, ok
}

// EachZone visits every zone in id order.
func (v *View) EachZone(fn func(z *domain.Zone)) {
	ids := make([]string, 0, len(v.store.zones))
	for id := range v.store.zones {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fn(v.store.zones[id])
	}
}

// EachPersonnel visits every roster unit in id order.
func (v *View) EachPersonnel(fn func(p *domain.Personnel)) {
	ids := make([]string, 0, len(v.store.personnel))
	for id := range v.store.personnel {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fn(v.store.personnel[id])
	}
}

// GatesInZone returns the zone's gates in id order.
func (v *View) GatesInZone(zoneID string) []*domain.Gate {
	var gates []*domain.Gate
	for _, g := range v.store.gates {
		if g.ZoneID == zoneID {
			gates = append(gates, g)
		}
	}
	sort.Slice(gates, func(i, j int) bool { return gates[i].ID < gates[j].ID })
	return gates
}

// PersonnelInZone returns the units currently located in the zone, in id order.
func (v *View) PersonnelInZone(zoneID string) []*domain.Personnel {
	var units []*domain.Personnel
	for _, p := range v.store.personnel {
		if p.CurrentZone == zoneID {
			units = append(units, p)
		}
	}
	sort.Slice(units, func(i, j int) bool { return units[i].ID < units[j].ID })
	return units
}

// MatchZone resolves free-form destination text to a zone id. It checks for
// literal zone ids first, then a small set of colloquial names used by the
// agent's tool calls. Returns "" when nothing matches.
func (v *View) MatchZone(destination string) string {
	return matchZone(v.store.zones, destination)
}

// Announce appends an audit record, discarding the oldest past the cap.
func (v *View) Announce(a domain.Announcement) {
	s := v.store
	s.announcements = append(s.announcements, a)
	if len(s.announcements) > maxAnnouncements {
		s.announcements = s.announcements[len(s.announcements)-maxAnnouncements:]
	}
}

// Announcements returns a copy of the audit ring, oldest first.
func (s *Store) Announcements() []domain.Announcement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Announcement, len(s.announcements))
	copy(out, s.announcements)
	return out
}
