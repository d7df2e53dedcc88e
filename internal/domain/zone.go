package domain

import "time"

// Zone represents a bounded venue area with occupancy and derived risk.
type Zone struct {
	ID      string
	AreaSqm float64

	NumPeople int

	// ActiveAlerts maps each active alert type to the time it was last
	// triggered. At most one entry per type.
	ActiveAlerts map[AlertType]time.Time

	// CapacityCap is the effective capacity recorded when an Overcrowding
	// alert is triggered. Zero means uncapped. While occupancy exceeds the
	// cap, risk classification reports critical regardless of raw density.
	CapacityCap int

	Evacuating   bool
	CrowdControl CrowdControlState
}

// CrowdControlState tracks the per-zone crowd-control machine.
type CrowdControlState struct {
	Active bool
	// CalmTicks counts consecutive ticks with density at or above the low
	// threshold; the machine deactivates once it reaches the configured run.
	CalmTicks int
}

// Density returns square meters per person. An empty zone divides by one, so
// density equals the zone's full area.
func (z *Zone) Density() float64 {
	people := z.NumPeople
	if people < 1 {
		people = 1
	}
	return z.AreaSqm / float64(people)
}

// Risk classifies the zone's current bottleneck risk. It is derived on every
// call and never stored.
func (z *Zone) Risk() RiskLevel {
	if z.CapacityCap > 0 && z.NumPeople > z.CapacityCap {
		return RiskCritical
	}
	return ClassifyDensity(z.Density())
}

// HasAlert reports whether the given alert type is active in the zone.
func (z *Zone) HasAlert(t AlertType) bool {
	_, ok := z.ActiveAlerts[t]
	return ok
}
