// Package usecase implements the business logic for the sightings feature.
package usecase

import (
	"context"
	"strings"

	"sighting_backend/internal/feature/sightings/domain/entity"
)

// SightingRepository abstracts persistence of sightings.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SightingRepository interface {
	// List returns all sightings, newest first, each with its observer summary.
	List(ctx context.Context) ([]entity.Sighting, error)

	// FindByID returns one sighting with its observer summary.
	// It returns ErrSightingNotFound if the sighting does not exist.
	FindByID(ctx context.Context, id uint) (*entity.Sighting, error)

	// Create persists a new sighting. A dangling UserID is reported as a conflict.
	Create(ctx context.Context, in entity.NewSighting) (*entity.Sighting, error)

	// Update applies the non-nil fields of patch and returns the stored sighting.
	// It returns ErrSightingNotFound if the sighting does not exist.
	Update(ctx context.Context, id uint, patch entity.SightingPatch) (*entity.Sighting, error)

	// Delete removes a sighting.
	// It returns ErrSightingNotFound if the sighting does not exist.
	Delete(ctx context.Context, id uint) error
}

// SightingUsecase provides business logic for sighting operations.
type SightingUsecase struct {
	repo SightingRepository
}

// NewSightingUsecase creates a new SightingUsecase with the given repository.
func NewSightingUsecase(r SightingRepository) *SightingUsecase {
	return &SightingUsecase{repo: r}
}

// ListSightings returns every sighting ordered by creation time, newest first.
func (u *SightingUsecase) ListSightings(ctx context.Context) ([]entity.Sighting, error) {
	return u.repo.List(ctx)
}

// GetSighting returns a single sighting.
func (u *SightingUsecase) GetSighting(ctx context.Context, id uint) (*entity.Sighting, error) {
	return u.repo.FindByID(ctx, id)
}

// CreateSighting validates and records a new sighting.
func (u *SightingUsecase) CreateSighting(ctx context.Context, in entity.NewSighting) (*entity.Sighting, error) {
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	if in.Description == "" || in.Location == "" || in.DateTime.IsZero() || in.UserID == 0 {
		return nil, ErrMissingFields
	}
	return u.repo.Create(ctx, in)
}

// UpdateSighting applies a partial update. Supplied text fields must not be blank.
func (u *SightingUsecase) UpdateSighting(ctx context.Context, id uint, patch entity.SightingPatch) (*entity.Sighting, error) {
	if patch.Description != nil {
		d := strings.TrimSpace(*patch.Description)
		if d == "" {
			return nil, ErrEmptyField
		}
		patch.Description = &d
	}
	if patch.Location != nil {
		l := strings.TrimSpace(*patch.Location)
		if l == "" {
			return nil, ErrEmptyField
		}
		patch.Location = &l
	}
	if patch.UserID != nil && *patch.UserID == 0 {
		return nil, ErrInvalidUserID
	}
	return u.repo.Update(ctx, id, patch)
}

// DeleteSighting removes a sighting.
func (u *SightingUsecase) DeleteSighting(ctx context.Context, id uint) error {
	return u.repo.Delete(ctx, id)
}
