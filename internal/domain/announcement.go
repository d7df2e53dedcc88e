package domain

import "time"

// AnnouncementKind distinguishes audit entries recorded by actions that only
// acknowledge a side effect.
type AnnouncementKind string

const (
	AnnouncementPublicAddress AnnouncementKind = "announcement"
	AnnouncementFireBrigade   AnnouncementKind = "fire_brigade"
)

// Announcement is an acknowledged side-channel action kept for audit only; it
// never mutates zone metrics.
type Announcement struct {
	ID      string
	ZoneID  string
	Kind    AnnouncementKind
	Message string
	At      time.Time
}
