// Package usecase implements the business logic for the users feature.
package usecase

import (
	"context"
	"strings"

	"sighting_backend/internal/feature/users/domain/entity"
)

// UserRepository abstracts persistence of users.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// List returns all users ordered by name. Sightings are not loaded.
	List(ctx context.Context) ([]entity.User, error)

	// FindByID returns one user with all of its sightings, newest first.
	// It returns ErrUserNotFound if the user does not exist.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Create persists a new user. A duplicate email is reported as a conflict.
	Create(ctx context.Context, name, email string) (*entity.User, error)

	// Update applies the non-nil fields of patch and returns the stored user.
	// It returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, id uint, patch entity.UserPatch) (*entity.User, error)

	// Delete removes a user together with its sightings.
	// It returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uint) error
}

// UserUsecase provides business logic for user operations.
type UserUsecase struct {
	repo UserRepository
}

// NewUserUsecase creates a new UserUsecase with the given repository.
func NewUserUsecase(r UserRepository) *UserUsecase {
	return &UserUsecase{repo: r}
}

// ListUsers returns every user.
func (u *UserUsecase) ListUsers(ctx context.Context) ([]entity.User, error) {
	return u.repo.List(ctx)
}

// GetUser returns a user with its sighting history.
func (u *UserUsecase) GetUser(ctx context.Context, id uint) (*entity.User, error) {
	return u.repo.FindByID(ctx, id)
}

// CreateUser registers a user. Name and email are trimmed and must be non-empty.
func (u *UserUsecase) CreateUser(ctx context.Context, name, email string) (*entity.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, ErrMissingNameOrEmail
	}
	return u.repo.Create(ctx, name, email)
}

// UpdateUser applies a partial update.
func (u *UserUsecase) UpdateUser(ctx context.Context, id uint, patch entity.UserPatch) (*entity.User, error) {
	var err error
	if patch.Name, err = trimmed(patch.Name); err != nil {
		return nil, err
	}
	if patch.Email, err = trimmed(patch.Email); err != nil {
		return nil, err
	}
	return u.repo.Update(ctx, id, patch)
}

// DeleteUser removes a user. Its sightings are removed by the store.
func (u *UserUsecase) DeleteUser(ctx context.Context, id uint) error {
	return u.repo.Delete(ctx, id)
}

func trimmed(s *string) (*string, error) {
	if s == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil, ErrEmptyField
	}
	return &v, nil
}
