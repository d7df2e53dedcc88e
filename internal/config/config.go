// Package config loads the static venue topology and engine tuning from a
// YAML file. The topology is immutable after startup; the state store copies
// it into its own records.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/drishti-demo/venue-sim/internal/domain"
)

//go:embed venue.yaml
var defaultVenueYAML []byte

// Venue is the static topology plus engine tuning.
type Venue struct {
	Zones     map[string]ZoneConfig      `yaml:"zones"`
	Personnel map[string]PersonnelConfig `yaml:"personnel"`
	Gates     map[string]GateConfig      `yaml:"gates"`
	Engine    EngineConfig               `yaml:"engine"`
}

// ZoneConfig describes a zone's static area and initial occupancy.
type ZoneConfig struct {
	AreaSqm   float64 `yaml:"area_sqm"`
	NumPeople int     `yaml:"num_people"`
}

// PersonnelConfig describes one roster entry.
type PersonnelConfig struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Status      string `yaml:"status"`
	CurrentZone string `yaml:"current_zone"`
}

// GateConfig describes one gate and its initial status.
type GateConfig struct {
	ZoneID string `yaml:"zone_id"`
	Type   string `yaml:"type"`
	Status string `yaml:"status"`
}

// EngineConfig holds protocol engine tuning.
type EngineConfig struct {
	TickInterval          time.Duration `yaml:"-"`
	DispatchReturnAfter   time.Duration `yaml:"-"`
	EvacuationDecay       float64       `yaml:"evacuation_decay"`
	CrowdControlDecay     float64       `yaml:"crowd_control_decay"`
	CrowdControlCalmTicks int           `yaml:"crowd_control_calm_ticks"`
	CrowdDrift            CrowdDrift    `yaml:"crowd_drift"`

	// Raw string values for YAML unmarshaling.
	TickIntervalRaw        string `yaml:"tick_interval"`
	DispatchReturnAfterRaw string `yaml:"dispatch_return_after"`
}

// CrowdDrift configures the optional ambient occupancy drift.
type CrowdDrift struct {
	Enabled bool `yaml:"enabled"`
	MaxStep int  `yaml:"max_step"`
}

const (
	defaultTickInterval      = 500 * time.Millisecond
	defaultEvacuationDecay   = 0.10
	defaultCrowdControlDecay = 0.05
	defaultCalmTicks         = 3
)

// Load reads a venue configuration from the given path. An empty path loads
// the embedded default venue.
func Load(path string) (*Venue, error) {
	data := defaultVenueYAML
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading venue config: %w", err)
		}
	}
	return Parse(data)
}

// Parse decodes and validates a venue configuration.
func Parse(data []byte) (*Venue, error) {
	var v Venue
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parsing venue config: %w", err)
	}
	if err := v.parseDurations(); err != nil {
		return nil, err
	}
	v.applyDefaults()
	if err := v.validate(); err != nil {
		return nil, err
	}
	return &v, nil
}

func (v *Venue) parseDurations() error {
	if v.Engine.TickIntervalRaw != "" {
		d, err := time.ParseDuration(v.Engine.TickIntervalRaw)
		if err != nil {
			return fmt.Errorf("parsing engine.tick_interval: %w", err)
		}
		v.Engine.TickInterval = d
	}
	if v.Engine.DispatchReturnAfterRaw != "" {
		d, err := time.ParseDuration(v.Engine.DispatchReturnAfterRaw)
		if err != nil {
			return fmt.Errorf("parsing engine.dispatch_return_after: %w", err)
		}
		v.Engine.DispatchReturnAfter = d
	}
	return nil
}

func (v *Venue) applyDefaults() {
	if v.Engine.TickInterval <= 0 {
		v.Engine.TickInterval = defaultTickInterval
	}
	if v.Engine.EvacuationDecay <= 0 || v.Engine.EvacuationDecay > 1 {
		v.Engine.EvacuationDecay = defaultEvacuationDecay
	}
	if v.Engine.CrowdControlDecay <= 0 || v.Engine.CrowdControlDecay > 1 {
		v.Engine.CrowdControlDecay = defaultCrowdControlDecay
	}
	if v.Engine.CrowdControlCalmTicks <= 0 {
		v.Engine.CrowdControlCalmTicks = defaultCalmTicks
	}
}

func (v *Venue) validate() error {
	if len(v.Zones) == 0 {
		return fmt.Errorf("venue config: at least one zone is required")
	}
	for id, z := range v.Zones {
		if z.AreaSqm <= 0 {
			return fmt.Errorf("zone %q: area_sqm must be positive", id)
		}
		if z.NumPeople < 0 {
			return fmt.Errorf("zone %q: num_people must not be negative", id)
		}
	}
	for id, p := range v.Personnel {
		switch domain.PersonnelType(p.Type) {
		case domain.PersonnelMedical, domain.PersonnelSecurity:
		default:
			return fmt.Errorf("personnel %q: unknown type %q", id, p.Type)
		}
		switch domain.PersonnelStatus(p.Status) {
		case domain.PersonnelAvailable, domain.PersonnelDispatched:
		default:
			return fmt.Errorf("personnel %q: unknown status %q", id, p.Status)
		}
		if p.CurrentZone != "" {
			if _, ok := v.Zones[p.CurrentZone]; !ok {
				return fmt.Errorf("personnel %q: unknown current_zone %q", id, p.CurrentZone)
			}
		}
	}
	for id, g := range v.Gates {
		if _, ok := v.Zones[g.ZoneID]; !ok {
			return fmt.Errorf("gate %q: unknown zone_id %q", id, g.ZoneID)
		}
		switch domain.GateType(g.Type) {
		case domain.GateMain, domain.GateEmergency, domain.GateFire, domain.GateService:
		default:
			return fmt.Errorf("gate %q: unknown type %q", id, g.Type)
		}
		if !domain.ValidGateStatus(domain.GateStatus(g.Status)) {
			return fmt.Errorf("gate %q: unknown status %q", id, g.Status)
		}
	}
	return nil
}
