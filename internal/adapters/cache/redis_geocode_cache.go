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

// RedisGeocodeCache is a Redis-backed cache mapping a location id to its
// resolved coordinates.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client, TTL: ttl}
}

func geocodeCacheKey(locationID string) string {
	return "geocode:" + locationID
}

// Get fetches the cached coordinates for a location id.
func (r *RedisGeocodeCache) Get(ctx context.Context, locationID string) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.redis.Get")(&err)

	if r.Client == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: redis client is nil")
	}

	raw, err := r.Client.Get(ctx, geocodeCacheKey(locationID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: %w", err)
	}

	var coords domain.Coordinates
	if err := json.Unmarshal(raw, &coords); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: decode: %w", err)
	}
	return coords, true, nil
}

// Set stores resolved coordinates for a location id.
func (r *RedisGeocodeCache) Set(ctx context.Context, locationID string, coords domain.Coordinates) (err error) {
	defer obs.Time(ctx, "geocode.cache.redis.Set")(&err)

	if r.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	raw, err := json.Marshal(coords)
	if err != nil {
		return fmt.Errorf("set geocode cache: encode: %w", err)
	}

	if err := r.Client.Set(ctx, geocodeCacheKey(locationID), raw, r.TTL).Err(); err != nil {
		return fmt.Errorf("set geocode cache: %w", err)
	}
	return nil
}
