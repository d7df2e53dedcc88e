package app

import (
	"github.com/drishti-demo/venue-sim/internal/domain"
	"github.com/drishti-demo/venue-sim/internal/state"
)

// openExitGates forces the zone's fire and emergency exits open. Idempotent;
// returns the ids of gates that actually changed.
func openExitGates(v *state.View, zoneID string) []string {
	var opened []string
	for _, g := range v.GatesInZone(zoneID) {
		if !g.IsExit() || g.Status == domain.GateOpen {
			continue
		}
		g.Status = domain.GateOpen
		opened = append(opened, g.ID)
	}
	return opened
}

// openSecondaryGates forces every non-main gate in the zone open. Idempotent;
// returns the ids of gates that actually changed.
func openSecondaryGates(v *state.View, zoneID string) []string {
	var opened []string
	for _, g := range v.GatesInZone(zoneID) {
		if g.Type == domain.GateMain || g.Status == domain.GateOpen {
			continue
		}
		g.Status = domain.GateOpen
		opened = append(opened, g.ID)
	}
	return opened
}

// startEvacuation moves the zone's evacuation machine from Idle to
// Evacuating. Evacuation takes precedence: an active crowd-control machine is
// stopped. Returns false when the zone was already evacuating.
func startEvacuation(z *domain.Zone) bool {
	if z.Evacuating {
		return false
	}
	z.Evacuating = true
	z.CrowdControl = domain.CrowdControlState{}
	return true
}

// startCrowdControl activates the zone's crowd-control machine. A zone that
// is evacuating ignores the request (evacuation takes precedence). Returns
// false when nothing changed.
func startCrowdControl(z *domain.Zone) bool {
	if z.Evacuating || z.CrowdControl.Active {
		return false
	}
	z.CrowdControl = domain.CrowdControlState{Active: true}
	return true
}

// overcrowdingCap is the effective capacity recorded when an Overcrowding
// alert is triggered: the occupancy at which density reaches the medium
// threshold. Occupancy above it classifies as critical.
func overcrowdingCap(z *domain.Zone) int {
	return int(z.AreaSqm / domain.DensityMediumThreshold)
}
