package state

import (
	"sort"

	"github.com/drishti-demo/venue-sim/internal/domain"
)

// Snapshot is a lock-consistent, point-in-time copy of the venue, shaped for
// the polling clients' wire format.
type Snapshot struct {
	Zones     map[string]ZoneSnapshot      `json:"zones"`
	Personnel map[string]PersonnelSnapshot `json:"personnel"`
	Gates     map[string]GateSnapshot      `json:"gates"`
}

type ZoneSnapshot struct {
	AreaSqm             float64            `json:"area_sqm"`
	NumPeople           int                `json:"num_people"`
	DensitySqmPerPerson float64            `json:"density_sqm_per_person"`
	BottleneckRisk      domain.RiskLevel   `json:"bottleneck_risk"`
	ActiveAlerts        []domain.AlertType `json:"active_alerts"`
	EvacuationActive    bool               `json:"evacuation_active"`
	CrowdControlActive  bool               `json:"crowd_control_active"`
}

type PersonnelSnapshot struct {
	Name        string                 `json:"name"`
	Type        domain.PersonnelType   `json:"type"`
	Status      domain.PersonnelStatus `json:"status"`
	CurrentZone string                 `json:"current_zone"`
}

type GateSnapshot struct {
	ZoneID string            `json:"zone_id"`
	Type   domain.GateType   `json:"type"`
	Status domain.GateStatus `json:"status"`
}

// Snapshot copies the full venue under the store lock, so a reader never sees
// a zone's occupancy from one tick and its alerts from another.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Zones:     make(map[string]ZoneSnapshot, len(s.zones)),
		Personnel: make(map[string]PersonnelSnapshot, len(s.personnel)),
		Gates:     make(map[string]GateSnapshot, len(s.gates)),
	}
	for id, z := range s.zones {
		snap.Zones[id] = snapshotZone(z)
	}
	for id, p := range s.personnel {
		snap.Personnel[id] = PersonnelSnapshot{
			Name:        p.Name,
			Type:        p.Type,
			Status:      p.Status,
			CurrentZone: p.CurrentZone,
		}
	}
	for id, g := range s.gates {
		snap.Gates[id] = GateSnapshot{
			ZoneID: g.ZoneID,
			Type:   g.Type,
			Status: g.Status,
		}
	}
	return snap
}

func snapshotZone(z *domain.Zone) ZoneSnapshot {
	alerts := make([]domain.AlertType, 0, len(z.ActiveAlerts))
	for t := range z.ActiveAlerts {
		alerts = append(alerts, t)
	}
	// Stable order for polling dashboards.
	sort.Slice(alerts, func(i, j int) bool { return alerts[i] < alerts[j] })

	return ZoneSnapshot{
		AreaSqm:             z.AreaSqm,
		NumPeople:           z.NumPeople,
		DensitySqmPerPerson: z.Density(),
		BottleneckRisk:      z.Risk(),
		ActiveAlerts:        alerts,
		EvacuationActive:    z.Evacuating,
		CrowdControlActive:  z.CrowdControl.Active,
	}
}

// ZoneSummary is the derived subset for a single zone: the zone plus its
// gates and the units currently located in it.
type ZoneSummary struct {
	ZoneID    string                       `json:"zone_id"`
	Zone      ZoneSnapshot                 `json:"zone"`
	Gates     map[string]GateSnapshot      `json:"gates"`
	Personnel map[string]PersonnelSnapshot `json:"personnel"`
}

// SnapshotZone copies one zone with its gates and in-zone personnel under the
// store lock.
func (s *Store) SnapshotZone(zoneID string) (ZoneSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	z, ok := s.zones[zoneID]
	if !ok {
		return ZoneSummary{}, domain.ErrZoneNotFound
	}

	summary := ZoneSummary{
		ZoneID:    zoneID,
		Zone:      snapshotZone(z),
		Gates:     make(map[string]GateSnapshot),
		Personnel: make(map[string]PersonnelSnapshot),
	}
	for id, g := range s.gates {
		if g.ZoneID != zoneID {
			continue
		}
		summary.Gates[id] = GateSnapshot{ZoneID: g.ZoneID, Type: g.Type, Status: g.Status}
	}
	for id, p := range s.personnel {
		if p.CurrentZone != zoneID {
			continue
		}
		summary.Personnel[id] = PersonnelSnapshot{
			Name:        p.Name,
			Type:        p.Type,
			Status:      p.Status,
			CurrentZone: p.CurrentZone,
		}
	}
	return summary, nil
}
