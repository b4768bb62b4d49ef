package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"sighting_backend/internal/feature/sightings/domain/entity"
	"sighting_backend/internal/feature/sightings/usecase"
)

// CachingSightingRepository decorates a SightingRepository with Redis read-through caching.
// Reads are served from Redis when possible; successful writes clear the cache.
type CachingSightingRepository struct {
	inner usecase.SightingRepository
	store store
}

var _ usecase.SightingRepository = (*CachingSightingRepository)(nil)

// NewCachingSightingRepository decorates inner with Redis caching.
// If rdb is nil, every call goes straight to inner. If ttl is 0, it defaults to 5 minutes.
func NewCachingSightingRepository(rdb *redis.Client, ttl time.Duration, inner usecase.SightingRepository) *CachingSightingRepository {
	return &CachingSightingRepository{inner: inner, store: newStore(rdb, ttl)}
}

// List returns all sightings, checking the cache first.
func (c *CachingSightingRepository) List(ctx context.Context) ([]entity.Sighting, error) {
	if !c.store.enabled() {
		return c.inner.List(ctx)
	}
	gen, ok := c.store.generation(ctx)
	if !ok {
		return c.inner.List(ctx)
	}
	key := listKey(NamespaceSightings, gen)

	var out []entity.Sighting
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

// FindByID returns one sighting, checking the cache first. Misses are not cached.
func (c *CachingSightingRepository) FindByID(ctx context.Context, id uint) (*entity.Sighting, error) {
	if !c.store.enabled() {
		return c.inner.FindByID(ctx, id)
	}
	gen, ok := c.store.generation(ctx)
	if !ok {
		return c.inner.FindByID(ctx, id)
	}
	key := idKey(NamespaceSightings, gen, id)

	var cached entity.Sighting
	if c.store.get(ctx, key, &cached) {
		return &cached, nil
	}
	s, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store.set(ctx, key, s)
	return s, nil
}

// Create records a sighting and clears the cache.
func (c *CachingSightingRepository) Create(ctx context.Context, in entity.NewSighting) (*entity.Sighting, error) {
	s, err := c.inner.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return s, nil
}

// Update applies a patch and clears the cache.
func (c *CachingSightingRepository) Update(ctx context.Context, id uint, patch entity.SightingPatch) (*entity.Sighting, error) {
	s, err := c.inner.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return s, nil
}

// Delete removes a sighting and clears the cache.
func (c *CachingSightingRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachingSightingRepository) invalidate(ctx context.Context) {
	if c.store.enabled() {
		c.store.invalidate(ctx)
	}
}
