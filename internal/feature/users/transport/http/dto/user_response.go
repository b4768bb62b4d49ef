package dto

import (
	"time"

	sightingdto "sighting_backend/internal/feature/sightings/transport/http/dto"
	"sighting_backend/internal/feature/users/domain/entity"
)

// UserResponse is the public representation of a user in lists and write results.
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserDetailResponse is a user with its sighting history, newest first.
type UserDetailResponse struct {
	UserResponse
	Sightings []sightingdto.SightingResponse `json:"sightings"`
}

// FromEntity converts a domain user to its response form.
func FromEntity(u entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC(),
		UpdatedAt: u.UpdatedAt.UTC(),
	}
}

// FromEntities converts a slice, never returning nil so that an empty list encodes as [].
func FromEntities(us []entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(us))
	for _, u := range us {
		out = append(out, FromEntity(u))
	}
	return out
}

// DetailFromEntity converts a user loaded with its sightings.
func DetailFromEntity(u entity.User) UserDetailResponse {
	return UserDetailResponse{
		UserResponse: FromEntity(u),
		Sightings:    sightingdto.FromEntities(u.Sightings),
	}
}
