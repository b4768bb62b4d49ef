package dto

import (
	"time"

	"sighting_backend/internal/feature/sightings/domain/entity"
)

// UserSummary is the observer embedded in a sighting response.
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SightingResponse is the public representation of a sighting.
type SightingResponse struct {
	ID          uint         `json:"id"`
	Description string       `json:"description"`
	Location    string       `json:"location"`
	DateTime    time.Time    `json:"dateTime"`
	UserID      uint         `json:"userId"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	User        *UserSummary `json:"user,omitempty"`
}

// FromEntity converts a domain sighting to its response form.
func FromEntity(s entity.Sighting) SightingResponse {
	out := SightingResponse{
		ID:          s.ID,
		Description: s.Description,
		Location:    s.Location,
		DateTime:    s.DateTime.UTC(),
		UserID:      s.UserID,
		CreatedAt:   s.CreatedAt.UTC(),
		UpdatedAt:   s.UpdatedAt.UTC(),
	}
	if s.User != nil {
		out.User = &UserSummary{ID: s.User.ID, Name: s.User.Name, Email: s.User.Email}
	}
	return out
}

// FromEntities converts a slice, never returning nil so that an empty list encodes as [].
func FromEntities(ss []entity.Sighting) []SightingResponse {
	out := make([]SightingResponse, 0, len(ss))
	for _, s := range ss {
		out = append(out, FromEntity(s))
	}
	return out
}
