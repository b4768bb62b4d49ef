// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL is used when a non-positive TTL is given.
const DefaultTTL = 5 * time.Minute

// Key namespaces. A user's detail embeds its sightings and every sighting
// embeds its owner, so a write to either resource clears both.
const (
	NamespaceUsers     = "users"
	NamespaceSightings = "sightings"
)

const scanCount = 200

// generationKey holds a counter bumped on every invalidation. Data keys embed
// the generation read before loading, so a load that overlaps a write lands
// in a generation nobody reads anymore.
const generationKey = "cache:generation"

// store wraps the Redis operations shared by the caching repositories.
// Every operation is best effort: a Redis failure never fails the request.
type store struct {
	rdb *redis.Client
	ttl time.Duration
}

func newStore(rdb *redis.Client, ttl time.Duration) store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return store{rdb: rdb, ttl: ttl}
}

// enabled reports whether Redis is configured.
func (s store) enabled() bool {
	return s.rdb != nil
}

// generation returns the current cache generation. ok is false when Redis
// cannot be read, in which case callers skip the cache.
func (s store) generation(ctx context.Context) (int64, bool) {
	n, err := s.rdb.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		return 0, false
	}
	return n, true
}

// listKey is the key of the full collection of a namespace.
func listKey(namespace string, gen int64) string {
	return fmt.Sprintf("%s:v%d:list", namespace, gen)
}

// idKey is the key of a single record.
func idKey(namespace string, gen int64, id uint) string {
	return fmt.Sprintf("%s:v%d:id:%d", namespace, gen, id)
}

// get decodes the cached value at key into dst and reports whether it was a hit.
func (s store) get(ctx context.Context, key string, dst any) bool {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		// 破損したキャッシュエントリは削除
		_ = s.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

// set stores v at key with the configured TTL.
func (s store) set(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = s.rdb.Set(ctx, key, b, s.ttl).Err()
}

// invalidate moves readers to a new generation, then clears the users and
// sightings namespaces.
func (s store) invalidate(ctx context.Context) {
	if err := s.rdb.Incr(ctx, generationKey).Err(); err != nil {
		slog.Warn("cache generation bump failed", "error", err)
	}
	for _, ns := range []string{NamespaceUsers, NamespaceSightings} {
		if err := s.deleteByPattern(ctx, ns+":*"); err != nil {
			slog.Warn("cache invalidation failed", "namespace", ns, "error", err)
		}
	}
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (s store) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := s.rdb.Scan(ctx, cursor, pattern, scanCount).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
