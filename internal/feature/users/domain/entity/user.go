// Package entity defines the domain models for the users feature.
package entity

import (
	"time"

	sightingentity "sighting_backend/internal/feature/sightings/domain/entity"
)

// User represents a registered observer.
type User struct {
	ID        uint
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Sightings is populated only when a single user is loaded, newest first.
	Sightings []sightingentity.Sighting
}

// UserPatch is a partial update. Nil fields are left unchanged.
type UserPatch struct {
	Name  *string
	Email *string
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil
}
