package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/schoolkit/pkg/tenant"
)

// TenantCache implements tenant.Cache on Redis, so every replica shares
// resolved tenants. Values are JSON; expiry is delegated to Redis.
//
// Cache failures never fail a request: reads degrade to a miss and writes
// are dropped, both logged at warn level.
type TenantCache struct {
	client redis.UniversalClient
	prefix string
	logger *slog.Logger
}

// NewTenantCache wraps client. A nil logger discards output.
func NewTenantCache(client redis.UniversalClient, prefix string, logger *slog.Logger) *TenantCache {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TenantCache{client: client, prefix: prefix, logger: logger}
}

// Key returns the Redis key for a directory cache key.
func (c *TenantCache) Key(key string) string {
	return c.prefix + key
}

// Get implements tenant.Cache.
func (c *TenantCache) Get(ctx context.Context, key string) (*tenant.Tenant, bool) {
	raw, err := c.client.Get(ctx, c.Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.logger.WarnContext(ctx, "tenant cache read failed", slog.String("key", key), slog.Any("error", err))
		return nil, false
	}

	var t tenant.Tenant
	if err := json.Unmarshal(raw, &t); err != nil {
		c.logger.WarnContext(ctx, "tenant cache entry corrupt", slog.String("key", key), slog.Any("error", err))
		c.Delete(ctx, key)
		return nil, false
	}
	return &t, true
}

// Set implements tenant.Cache. A non-positive ttl stores nothing.
func (c *TenantCache) Set(ctx context.Context, key string, t *tenant.Tenant, ttl time.Duration) {
	if t == nil || ttl <= 0 {
		return
	}
	raw, err := json.Marshal(t)
	if err != nil {
		c.logger.WarnContext(ctx, "tenant cache encode failed", slog.String("key", key), slog.Any("error", err))
		return
	}
	if err := c.client.Set(ctx, c.Key(key), raw, ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "tenant cache write failed", slog.String("key", key), slog.Any("error", err))
	}
}

// Delete implements tenant.Cache.
func (c *TenantCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, c.Key(key)).Err(); err != nil {
		c.logger.WarnContext(ctx, "tenant cache delete failed", slog.String("key", key), slog.Any("error", err))
	}
}
