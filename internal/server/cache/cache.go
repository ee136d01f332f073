// Package cache provides a Redis-backed cache for the catalog listing,
// following the cache-aside pattern. The cache is strictly an accelerator:
// every failure degrades to a miss and the caller falls back to the
// database, so a dead Redis never breaks reads.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dstepanenko/storefront/internal/logging"
	"github.com/dstepanenko/storefront/internal/server/models"
)

// redisClient is the subset of redis.Cmdable the cache uses. Tests provide
// fakes built on redis.NewStringResult and friends.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// ItemsCache stores one value: the JSON-encoded item listing with tags
// merged in. Mutating any item or tag invalidates the whole listing.
type ItemsCache struct {
	client redisClient
	key    string
	ttl    time.Duration
	logger logging.Logger
}

func NewItemsCache(client redisClient, ttl time.Duration, logger logging.Logger) *ItemsCache {
	return &ItemsCache{
		client: client,
		key:    "items:list",
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the cached listing and true on a hit. Redis errors and decode
// failures are logged and reported as misses.
func (c *ItemsCache) Get(ctx context.Context) ([]*models.ItemView, bool) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn(ctx, "items cache get failed", "error", err)
		}
		return nil, false
	}

	var views []*models.ItemView
	if err := json.Unmarshal(data, &views); err != nil {
		c.logger.Warn(ctx, "items cache decode failed", "error", err)
		return nil, false
	}
	return views, true
}

// Set stores the listing with the configured TTL. Failures are logged and
// swallowed.
func (c *ItemsCache) Set(ctx context.Context, views []*models.ItemView) {
	data, err := json.Marshal(views)
	if err != nil {
		c.logger.Warn(ctx, "items cache encode failed", "error", err)
		return
	}
	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		c.logger.Warn(ctx, "items cache set failed", "error", err)
	}
}

// Invalidate drops the cached listing. Failures are logged and swallowed;
// the entry still expires by TTL.
func (c *ItemsCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		c.logger.Warn(ctx, "items cache invalidate failed", "error", err)
	}
}
