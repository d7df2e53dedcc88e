package state

import (
	"strings"
	"time"

	"github.com/drishti-demo/venue-sim/internal/domain"
)

// TriggerAlert adds the alert type to the zone, refreshing its timestamp when
// already active. Returns false when the alert was already present.
func (v *View) TriggerAlert(z *domain.Zone, t domain.AlertType, now time.Time) bool {
	_, active := z.ActiveAlerts[t]
	z.ActiveAlerts[t] = now
	return !active
}

// ClearAlert removes the alert type from the zone. Clearing an absent alert
// is a no-op. Clearing Overcrowding also lifts the capacity cap it recorded.
func (v *View) ClearAlert(z *domain.Zone, t domain.AlertType) bool {
	if _, ok := z.ActiveAlerts[t]; !ok {
		return false
	}
	delete(z.ActiveAlerts, t)
	if t == domain.AlertOvercrowding {
		z.CapacityCap = 0
	}
	return true
}

// emptiedZoneAlerts are the alert types whose resolution condition is "zone
// emptied".
var emptiedZoneAlerts = []domain.AlertType{
	domain.AlertFire,
	domain.AlertStampede,
	domain.AlertOvercrowding,
}

// ResolveEmptiedZone clears every alert whose condition no longer holds once
// the zone has reached zero occupancy. Returns the cleared types.
func (v *View) ResolveEmptiedZone(z *domain.Zone) []domain.AlertType {
	if z.NumPeople > 0 {
		return nil
	}
	var cleared []domain.AlertType
	for _, t := range emptiedZoneAlerts {
		if v.ClearAlert(z, t) {
			cleared = append(cleared, t)
		}
	}
	return cleared
}

// zoneKeywords maps colloquial destination phrases to zone ids (dispatcher
// destinations arrive as free text from the agent).
var zoneKeywords = map[string]string{
	"hall 1":   "hall_1_lower",
	"hall 2":   "hall_2",
	"entrance": "entrance_lobby",
	"lobby":    "entrance_lobby",
	"food":     "food_court",
}

func matchZone(zones map[string]*domain.Zone, destination string) string {
	needle := strings.ToLower(destination)
	for id := range zones {
		if strings.Contains(needle, strings.ToLower(id)) {
			return id
		}
	}
	for keyword, id := range zoneKeywords {
		if _, ok := zones[id]; !ok {
			continue
		}
		if strings.Contains(needle, keyword) {
			return id
		}
	}
	return ""
}
