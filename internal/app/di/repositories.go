// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	sightingadapters "sighting_backend/internal/feature/sightings/adapters"
	sightingusecase "sighting_backend/internal/feature/sightings/usecase"
	useradapters "sighting_backend/internal/feature/users/adapters"
	userusecase "sighting_backend/internal/feature/users/usecase"
	"sighting_backend/internal/platform/cache"
)

// NewUserRepository creates a UserRepository implementation.
// If Redis is available, the GORM repository is wrapped with a read-through cache.
func NewUserRepository(db *gorm.DB, rdb *redis.Client, ttl time.Duration) userusecase.UserRepository {
	repo := useradapters.NewUserRepository(db)
	if rdb != nil {
		return cache.NewCachingUserRepository(rdb, ttl, repo)
	}
	return repo
}

// NewSightingRepository creates a SightingRepository implementation.
// If Redis is available, the GORM repository is wrapped with a read-through cache.
func NewSightingRepository(db *gorm.DB, rdb *redis.Client, ttl time.Duration) sightingusecase.SightingRepository {
	repo := sightingadapters.NewSightingRepository(db)
	if rdb != nil {
		return cache.NewCachingSightingRepository(rdb, ttl, repo)
	}
	return repo
}
