// Package cache keeps rendered route payloads in redis so mutations can
// signal the presentation layer that a route is stale.
package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// InvoicesRoute is the listing route invalidated after every mutation and
// used as the post-mutation redirect target.
const InvoicesRoute = "/dashboard/invoices"

// Invalidator marks previously cached output for a route as stale.
type Invalidator interface {
	Invalidate(ctx context.Context, route string) error
}

// RouteCache stores one payload per route key.
type RouteCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRouteCache(rdb *redis.Client, ttl time.Duration) *RouteCache {
	return &RouteCache{rdb: rdb, ttl: ttl}
}

func routeKey(route string) string {
	return "route:" + route
}

// Get returns the cached payload for a route. The second return is false on
// a cache miss.
func (c *RouteCache) Get(ctx context.Context, route string) ([]byte, bool, error) {
	payload, err := c.rdb.Get(ctx, routeKey(route)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

// Set caches the payload for a route until the TTL elapses or a mutation
// invalidates it.
func (c *RouteCache) Set(ctx context.Context, route string, payload []byte) error {
	return c.rdb.Set(ctx, routeKey(route), payload, c.ttl).Err()
}

// Invalidate drops the cached payload for a route.
func (c *RouteCache) Invalidate(ctx context.Context, route string) error {
	return c.rdb.Del(ctx, routeKey(route)).Err()
}
