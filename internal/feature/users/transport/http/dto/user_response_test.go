package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sightingentity "sighting_backend/internal/feature/sightings/domain/entity"
	"sighting_backend/internal/feature/users/domain/entity"
)

func TestDetailFromEntity(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	u := entity.User{
		ID: 1, Name: "Alice", Email: "alice@example.com", CreatedAt: at, UpdatedAt: at,
		Sightings: []sightingentity.Sighting{
			{ID: 9, Description: "owl", Location: "barn", DateTime: at, UserID: 1, CreatedAt: at, UpdatedAt: at},
		},
	}

	b, err := json.Marshal(DetailFromEntity(u))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id":1,"name":"Alice","email":"alice@example.com",
		"createdAt":"2024-01-01T10:00:00Z","updatedAt":"2024-01-01T10:00:00Z",
		"sightings":[{"id":9,"description":"owl","location":"barn","dateTime":"2024-01-01T10:00:00Z",
			"userId":1,"createdAt":"2024-01-01T10:00:00Z","updatedAt":"2024-01-01T10:00:00Z"}]
	}`, string(b))
}

func TestDetailFromEntity_NoSightingsIsEmptyArray(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(DetailFromEntity(entity.User{ID: 2}))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, []any{}, m["sightings"])
}

func TestFromEntities_EmptyIsNotNil(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, FromEntities(nil))
	assert.Empty(t, FromEntities(nil))
}
