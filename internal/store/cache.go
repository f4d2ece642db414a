package store

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"shipquote/internal/model"
)

// Cache decorates a ZoneStore with a Redis snapshot of each store's zone
// configuration. Only configuration is cached; computed quotes never are.
// A Redis failure falls through to the underlying store so caching can never
// break quoting.
type Cache struct {
	next ZoneStore
	rdb  *redis.Client
	ttl  time.Duration
}

func NewCache(next ZoneStore, rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{next: next, rdb: rdb, ttl: ttl}
}

func (c *Cache) LoadZones(ctx context.Context, storeID string) ([]model.ShippingZone, error) {
	key := c.key(storeID)
	if data, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var zones []model.ShippingZone
		if err := json.Unmarshal(data, &zones); err == nil {
			return zones, nil
		}
		// Corrupt entry: drop it and reload.
		_ = c.rdb.Del(ctx, key).Err()
	}
	zones, err := c.next.LoadZones(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(zones); err == nil {
		_ = c.rdb.Set(ctx, key, data, c.ttl).Err()
	}
	return zones, nil
}

// Invalidate drops the cached snapshot for a store, for callers that just
// edited its zone configuration.
func (c *Cache) Invalidate(ctx context.Context, storeID string) error {
	return c.rdb.Del(ctx, c.key(storeID)).Err()
}

func (c *Cache) key(storeID string) string { return "zones:" + storeID }
