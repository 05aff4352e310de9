package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"delivery-route-service/internal/domain"
	"delivery-route-service/internal/platform/obs"

	"github.com/redis/go-redis/v9"
)

// RedisDistanceCache is a Redis-backed cache for station-pair distance
// matrix entries, used in place of the SQLite caches when CACHE_BACKEND=redis.
// Entries expire after ttl so a stale distance backend never pins bad data
// forever.
type RedisDistanceCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisDistanceCache(client *redis.Client, ttl time.Duration) *RedisDistanceCache {
	return &RedisDistanceCache{Client: client, TTL: ttl}
}

func distanceCacheKey(fromID, toID string) string {
	return fmt.Sprintf("distance:%s:%s", fromID, toID)
}

// Get fetches a cached distance-matrix entry for the from->to pair.
func (r *RedisDistanceCache) Get(ctx context.Context, fromID, toID string) (_ domain.DistanceMatrixEntry, _ bool, err error) {
	defer obs.Time(ctx, "distance.cache.redis.Get")(&err)

	if r.Client == nil {
		return domain.DistanceMatrixEntry{}, false, errors.New("distance cache: redis client is nil")
	}

	raw, err := r.Client.Get(ctx, distanceCacheKey(fromID, toID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.DistanceMatrixEntry{}, false, nil
	}
	if err != nil {
		return domain.DistanceMatrixEntry{}, false, fmt.Errorf("get distance cache: %w", err)
	}

	var entry domain.DistanceMatrixEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return domain.DistanceMatrixEntry{}, false, fmt.Errorf("get distance cache: decode: %w", err)
	}
	return entry, true, nil
}

// Set stores a distance-matrix entry for the from->to pair.
func (r *RedisDistanceCache) Set(ctx context.Context, fromID, toID string, entry domain.DistanceMatrixEntry) (err error) {
	defer obs.Time(ctx, "distance.cache.redis.Set")(&err)

	if r.Client == nil {
		return errors.New("distance cache: redis client is nil")
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("set distance cache: encode: %w", err)
	}

	if err := r.Client.Set(ctx, distanceCacheKey(fromID, toID), raw, r.TTL).Err(); err != nil {
		return fmt.Errorf("set distance cache: %w", err)
	}
	return nil
}
