package domain

type GateType string

const (
	GateMain      GateType = "main_gate"
	GateEmergency GateType = "emergency_exit"
	GateFire      GateType = "fire_exit"
	GateService   GateType = "service_exit"
)

type GateStatus string

const (
	GateOpen   GateStatus = "open"
	GateClosed GateStatus = "closed"
)

// ValidGateStatus reports whether s is a recognized gate status.
func ValidGateStatus(s GateStatus) bool {
	return s == GateOpen || s == GateClosed
}

// Gate represents a venue gate attached to exactly one zone.
type Gate struct {
	ID     string
	ZoneID string
	Type   GateType
	Status GateStatus
}

// IsExit reports whether the gate is a fire or emergency exit — the gates the
// evacuation protocol forces open.
func (g *Gate) IsExit() bool {
	return g.Type == GateFire || g.Type == GateEmergency
}
