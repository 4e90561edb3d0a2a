package server

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"tooldeals/pkg/contextx"
	"tooldeals/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const dealsCachePrefix = "deals:list:"

// responseCache keeps rendered deal-list responses in redis for a short TTL.
// The deals table only changes once per scan cycle, so nearly every page view
// is a cache hit. A nil client disables caching entirely.
type responseCache struct {
	client *redis.Client
	ttl    time.Duration
}

func newResponseCache(client *redis.Client, ttl time.Duration) responseCache {
	return responseCache{client: client, ttl: ttl}
}

func (c responseCache) get(ctx context.Context, key string) ([]byte, bool) {
	if c.client == nil {
		return nil, false
	}

	body, err := c.client.Get(ctx, dealsCachePrefix+key).Bytes()
	if err != nil {
		return nil, false
	}

	return body, true
}

func (c responseCache) set(ctx context.Context, key string, body []byte) {
	if c.client == nil {
		return
	}

	if err := c.client.Set(ctx, dealsCachePrefix+key, body, c.ttl).Err(); err != nil {
		logger(ctx).Warn("failed to cache response", logx.Error(err))
	}
}

// invalidate drops every cached list after an admin mutation so the change
// is visible immediately instead of after the TTL.
func (c responseCache) invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}

	keys, err := c.client.Keys(ctx, dealsCachePrefix+"*").Result()
	if err != nil || len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger(ctx).Warn("failed to invalidate cache", logx.Error(err))
	}
}
