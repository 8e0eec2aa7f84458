// FILE: pkg/cache/property_cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"huntstay-be/internal/entity"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// PropertyCache is a read-through cache for the public property read path.
// Redis is the shared layer, go-cache a short-lived in-process layer in
// front of it. Correctness never depends on it: booking-time reads go to
// the transactional store, and every property mutation invalidates here.
type PropertyCache struct {
	rdb   *redis.Client
	local *gocache.Cache
	ttl   time.Duration
}

func NewPropertyCache(rdb *redis.Client, ttl time.Duration) *PropertyCache {
	return &PropertyCache{
		rdb:   rdb,
		local: gocache.New(1*time.Minute, 5*time.Minute),
		ttl:   ttl,
	}
}

func key(id string) string {
	return fmt.Sprintf("property:%s", id)
}

func (c *PropertyCache) Get(ctx context.Context, propertyID string) (*entity.Property, bool) {
	if x, found := c.local.Get(key(propertyID)); found {
		if p, ok := x.(*entity.Property); ok {
			return p, true
		}
	}

	if c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, key(propertyID)).Bytes()
	if err != nil {
		return nil, false
	}
	var p entity.Property
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, false
	}
	c.local.Set(key(propertyID), &p, gocache.DefaultExpiration)
	return &p, true
}

func (c *PropertyCache) Set(ctx context.Context, property *entity.Property) {
	c.local.Set(key(property.Id.String()), property, gocache.DefaultExpiration)

	if c.rdb == nil {
		return
	}
	raw, err := json.Marshal(property)
	if err != nil {
		return
	}
	// Best-effort; a write failure just means a miss later.
	c.rdb.Set(ctx, key(property.Id.String()), raw, c.ttl)
}

func (c *PropertyCache) Invalidate(ctx context.Context, propertyID string) {
	c.local.Delete(key(propertyID))
	if c.rdb != nil {
		c.rdb.Del(ctx, key(propertyID))
	}
}
