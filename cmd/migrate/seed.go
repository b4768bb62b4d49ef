package main

import (
	"context"
	"fmt"
	"time"

	"sighting_backend/internal/feature/sightings/domain/entity"
	userentity "sighting_backend/internal/feature/users/domain/entity"
	"sighting_backend/internal/shared/apperror"
)

const demoEmail = "demo@example.com"

type userCreator interface {
	Create(ctx context.Context, name, email string) (*userentity.User, error)
}

type sightingCreator interface {
	Create(ctx context.Context, in entity.NewSighting) (*entity.Sighting, error)
}

// seedDemo はデモ用のユーザーと目撃記録を投入します。
// デモユーザーが既に存在する場合は何もせず seeded=false を返します。
func seedDemo(ctx context.Context, users userCreator, sightings sightingCreator, now time.Time) (seeded bool, err error) {
	u, err := users.Create(ctx, "Demo Observer", demoEmail)
	if apperror.Is(err, apperror.KindConflict) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("seed user: %w", err)
	}
	for _, s := range []entity.NewSighting{
		{Description: "Red fox crossing the trail", Location: "North Woods", DateTime: now.Add(-48 * time.Hour), UserID: u.ID},
		{Description: "Great blue heron fishing", Location: "Harlem Meer", DateTime: now.Add(-2 * time.Hour), UserID: u.ID},
	} {
		if _, err := sightings.Create(ctx, s); err != nil {
			return false, fmt.Errorf("seed sighting: %w", err)
		}
	}
	return true, nil
}
