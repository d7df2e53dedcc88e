package domain

import "time"

type PersonnelType string

const (
	PersonnelMedical  PersonnelType = "medical"
	PersonnelSecurity PersonnelType = "security"
)

type PersonnelStatus string

const (
	PersonnelAvailable  PersonnelStatus = "available"
	PersonnelDispatched PersonnelStatus = "dispatched"
)

// Personnel represents a dispatchable unit on the venue roster.
type Personnel struct {
	ID          string
	Name        string
	Type        PersonnelType
	Status      PersonnelStatus
	CurrentZone string
	// DispatchedAt is set when the unit is dispatched; used by the optional
	// auto-return policy.
	DispatchedAt time.Time
}
