package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/drishti-demo/venue-sim/internal/clock"
	"github.com/drishti-demo/venue-sim/internal/domain"
	"github.com/drishti-demo/venue-sim/internal/state"
)

// EvacuateAllZones is the wildcard accepted by Evacuate.
const EvacuateAllZones = "all"

// ActionService applies discrete, immediate operator actions.
type ActionService struct {
	store *state.Store
	clock clock.Clock
}

func NewActionService(store *state.Store, clk clock.Clock) *ActionService {
	return &ActionService{store: store, clock: clk}
}

// ToggleGate sets the gate to the requested status. Toggling to the current
// status is a no-op and not an error; protocol-forced opens and manual
// toggles compose last-writer-wins under the store lock.
func (s *ActionService) ToggleGate(ctx context.Context, gateID string, status domain.GateStatus) (domain.GateStatus, error) {
	if !domain.ValidGateStatus(status) {
		return "", domain.ErrInvalidGateStatus
	}

	err := s.store.With(func(v *state.View) error {
		g, ok := v.Gate(gateID)
		if !ok {
			return domain.ErrGateNotFound
		}
		g.Status = status
		return nil
	})
	if err != nil {
		return "", err
	}
	return status, nil
}

// DispatchUnit marks the unit dispatched and records its destination. When
// the free-form destination resolves to a known zone, the unit moves there
// and its presence resolves the matching alert type (medical units clear
// MedicalEmergency, security units clear SecurityThreat).
func (s *ActionService) DispatchUnit(ctx context.Context, personnelID, destination string) (domain.Personnel, error) {
	now := s.clock.Now()
	var dispatched domain.Personnel

	err := s.store.With(func(v *state.View) error {
		p, ok := v.Personnel(personnelID)
		if !ok {
			return domain.ErrPersonnelNotFound
		}
		if p.Status == domain.PersonnelDispatched {
			return domain.ErrAlreadyDispatched
		}

		p.Status = domain.PersonnelDispatched
		p.DispatchedAt = now

		if zoneID := v.MatchZone(destination); zoneID != "" {
			p.CurrentZone = zoneID
			if z, ok := v.Zone(zoneID); ok {
				switch p.Type {
				case domain.PersonnelMedical:
					v.ClearAlert(z, domain.AlertMedicalEmergency)
				case domain.PersonnelSecurity:
					v.ClearAlert(z, domain.AlertSecurityThreat)
				}
			}
		}

		dispatched = *p
		return nil
	})
	if err != nil {
		return domain.Personnel{}, err
	}
	return dispatched, nil
}

// MakeAnnouncement records an acknowledged announcement for the zone. Zone
// metrics are never touched.
func (s *ActionService) MakeAnnouncement(ctx context.Context, zoneID, message string) (domain.Announcement, error) {
	a := domain.Announcement{
		ID:      uuid.NewString(),
		ZoneID:  zoneID,
		Kind:    domain.AnnouncementPublicAddress,
		Message: message,
		At:      s.clock.Now(),
	}

	err := s.store.With(func(v *state.View) error {
		if _, ok := v.Zone(zoneID); !ok {
			return domain.ErrZoneNotFound
		}
		v.Announce(a)
		return nil
	})
	if err != nil {
		return domain.Announcement{}, err
	}
	return a, nil
}

// Evacuate starts the evacuation protocol for one zone, or for every zone
// when zoneID is "all". Secondary gates open immediately; the protocol engine
// depletes occupancy gradually on subsequent ticks.
func (s *ActionService) Evacuate(ctx context.Context, zoneID string) error {
	return s.store.With(func(v *state.View) error {
		if zoneID == EvacuateAllZones {
			v.EachZone(func(z *domain.Zone) {
				openSecondaryGates(v, z.ID)
				startEvacuation(z)
			})
			return nil
		}

		z, ok := v.Zone(zoneID)
		if !ok {
			return domain.ErrZoneNotFound
		}
		openSecondaryGates(v, z.ID)
		startEvacuation(z)
		return nil
	})
}

// ActivateCrowdControl starts the crowd-control protocol for the zone: opens
// secondary gates and posts an Overcrowding alert. A zone under evacuation
// ignores the request.
func (s *ActionService) ActivateCrowdControl(ctx context.Context, zoneID string) error {
	now := s.clock.Now()
	return s.store.With(func(v *state.View) error {
		z, ok := v.Zone(zoneID)
		if !ok {
			return domain.ErrZoneNotFound
		}
		if z.Evacuating {
			return nil
		}
		openSecondaryGates(v, z.ID)
		if startCrowdControl(z) {
			v.TriggerAlert(z, domain.AlertOvercrowding, now)
		}
		return nil
	})
}

// DispatchFireBrigade opens the zone's fire and emergency exits and records
// an audit entry. The Fire alert is not resolved by the brigade's arrival; it
// clears once the zone empties.
func (s *ActionService) DispatchFireBrigade(ctx context.Context, zoneID string) error {
	now := s.clock.Now()
	return s.store.With(func(v *state.View) error {
		if _, ok := v.Zone(zoneID); !ok {
			return domain.ErrZoneNotFound
		}
		openExitGates(v, zoneID)
		v.Announce(domain.Announcement{
			ID:      uuid.NewString(),
			ZoneID:  zoneID,
			Kind:    domain.AnnouncementFireBrigade,
			Message: fmt.Sprintf("Fire brigade dispatched to %s", zoneID),
			At:      now,
		})
		return nil
	})
}
