package cache

import (
	"context"

	"delivery-route-service/internal/domain"
	"delivery-route-service/internal/ports"

	"github.com/cespare/xxhash/v2"
	"github.com/dgryski/go-rendezvous"
)

// ShardedDistanceCache spreads distance-matrix cache entries across several
// cache shards using rendezvous (highest random weight) hashing, so adding
// or removing a shard only remaps the keys that belonged to the changed
// shard rather than reshuffling the whole keyspace.
type ShardedDistanceCache struct {
	byName map[string]ports.DistanceCache
	ring   *rendezvous.Rendezvous
}

func shardHash(s string) uint64 {
	return xxhash.Sum64String(s)
}

// NewShardedDistanceCache builds a sharded cache over shards, each identified
// by its entry in names.
func NewShardedDistanceCache(names []string, shards []ports.DistanceCache) *ShardedDistanceCache {
	byName := make(map[string]ports.DistanceCache, len(shards))
	for i, name := range names {
		byName[name] = shards[i]
	}
	return &ShardedDistanceCache{
		byName: byName,
		ring:   rendezvous.New(names, shardHash),
	}
}

func (c *ShardedDistanceCache) shardFor(fromID, toID string) ports.DistanceCache {
	return c.byName[c.ring.Lookup(fromID+"_"+toID)]
}

// Get routes the lookup to the shard selected by rendezvous hashing on the
// station pair.
func (c *ShardedDistanceCache) Get(ctx context.Context, fromID, toID string) (domain.DistanceMatrixEntry, bool, error) {
	return c.shardFor(fromID, toID).Get(ctx, fromID, toID)
}

// Set routes the write to the shard selected by rendezvous hashing on the
// station pair.
func (c *ShardedDistanceCache) Set(ctx context.Context, fromID, toID string, entry domain.DistanceMatrixEntry) error {
	return c.shardFor(fromID, toID).Set(ctx, fromID, toID, entry)
}
