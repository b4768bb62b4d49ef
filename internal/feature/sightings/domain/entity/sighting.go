// Package entity defines the domain models for the sightings feature.
package entity

import "time"

// Sighting is an observation reported by a user.
type Sighting struct {
	ID          uint
	Description string
	Location    string
	DateTime    time.Time // when the observation happened, not when it was recorded
	UserID      uint      // observer
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// User is the observer summary. It is nil when the sighting is loaded
	// as part of its owner's sighting list.
	User *UserSummary
}

// UserSummary is the subset of the observer exposed alongside a sighting.
// It deliberately has no sightings of its own.
type UserSummary struct {
	ID    uint
	Name  string
	Email string
}

// NewSighting holds the fields required to record a sighting.
type NewSighting struct {
	Description string
	Location    string
	DateTime    time.Time
	UserID      uint
}

// SightingPatch is a partial update. Nil fields are left unchanged.
type SightingPatch struct {
	Description *string
	Location    *string
	DateTime    *time.Time
	UserID      *uint
}

// IsEmpty reports whether the patch changes nothing.
func (p SightingPatch) IsEmpty() bool {
	return p.Description == nil && p.Location == nil && p.DateTime == nil && p.UserID == nil
}
