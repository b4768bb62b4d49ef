package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"sighting_backend/internal/feature/users/domain/entity"
	"sighting_backend/internal/feature/users/usecase"
)

// CachingUserRepository decorates a UserRepository with Redis read-through caching.
type CachingUserRepository struct {
	inner usecase.UserRepository
	store store
}

var _ usecase.UserRepository = (*CachingUserRepository)(nil)

// NewCachingUserRepository decorates inner with Redis caching.
// If rdb is nil, every call goes straight to inner. If ttl is 0, it defaults to 5 minutes.
func NewCachingUserRepository(rdb *redis.Client, ttl time.Duration, inner usecase.UserRepository) *CachingUserRepository {
	return &CachingUserRepository{inner: inner, store: newStore(rdb, ttl)}
}

// List returns all users, checking the cache first.
func (c *CachingUserRepository) List(ctx context.Context) ([]entity.User, error) {
	if !c.store.enabled() {
		return c.inner.List(ctx)
	}
	gen, ok := c.store.generation(ctx)
	if !ok {
		return c.inner.List(ctx)
	}
	key := listKey(NamespaceUsers, gen)

	var out []entity.User
	if c.store.get(ctx, key, &out) {
		return out, nil
	}
	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	c.store.set(ctx, key, out)
	return out, nil
}

// FindByID returns a user with its sightings, checking the cache first.
func (c *CachingUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if !c.store.enabled() {
		return c.inner.FindByID(ctx, id)
	}
	gen, ok := c.store.generation(ctx)
	if !ok {
		return c.inner.FindByID(ctx, id)
	}
	key := idKey(NamespaceUsers, gen, id)

	var cached entity.User
	if c.store.get(ctx, key, &cached) {
		return &cached, nil
	}
	u, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store.set(ctx, key, u)
	return u, nil
}

// Create registers a user and clears the cache.
func (c *CachingUserRepository) Create(ctx context.Context, name, email string) (*entity.User, error) {
	u, err := c.inner.Create(ctx, name, email)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return u, nil
}

// Update applies a patch and clears the cache.
func (c *CachingUserRepository) Update(ctx context.Context, id uint, patch entity.UserPatch) (*entity.User, error) {
	u, err := c.inner.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return u, nil
}

// Delete removes a user and clears the cache, including the cascaded sightings.
func (c *CachingUserRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachingUserRepository) invalidate(ctx context.Context) {
	if c.store.enabled() {
		c.store.invalidate(ctx)
	}
}
