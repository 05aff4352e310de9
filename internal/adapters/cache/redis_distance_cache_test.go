package cache

import (
	"context"
	"testing"
	"time"

	"delivery-route-service/internal/domain"
	"delivery-route-service/internal/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestRedisDistanceCacheMissThenHit(t *testing.T) {
	client := newTestRedisClient(t)
	c := NewRedisDistanceCache(client, time.Hour)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "hub", "station-1")
	require.NoError(t, err)
	require.False(t, ok)

	entry := domain.DistanceMatrixEntry{DistanceKm: 4.2, DurationMinutes: 9.5, Polyline: "abc"}
	require.NoError(t, c.Set(ctx, "hub", "station-1", entry))

	got, ok, err := c.Get(ctx, "hub", "station-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, entry, got)
}

func TestRedisGeocodeCacheMissThenHit(t *testing.T) {
	client := newTestRedisClient(t)
	c := NewRedisGeocodeCache(client, time.Hour)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "123 Main St")
	require.NoError(t, err)
	require.False(t, ok)

	coords := domain.Coordinates{Lon: -112.1, Lat: 33.4}
	require.NoError(t, c.Set(ctx, "123 Main St", coords))

	got, ok, err := c.Get(ctx, "123 Main St")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, coords, got)
}

func TestShardedDistanceCacheRoutesConsistently(t *testing.T) {
	clientA := newTestRedisClient(t)
	clientB := newTestRedisClient(t)

	sharded := NewShardedDistanceCache(
		[]string{"node-a", "node-b"},
		[]ports.DistanceCache{NewRedisDistanceCache(clientA, time.Hour), NewRedisDistanceCache(clientB, time.Hour)},
	)

	ctx := context.Background()
	entry := domain.DistanceMatrixEntry{DistanceKm: 1.5, DurationMinutes: 3}
	require.NoError(t, sharded.Set(ctx, "hub", "station-7", entry))

	got, ok, err := sharded.Get(ctx, "hub", "station-7")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, entry, got)
}
