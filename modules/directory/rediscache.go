package directory

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/centraldesk/saascore/pkg/logger"
	"github.com/centraldesk/saascore/pkg/tenant"
)

const cacheKeyPrefix = "tenant:subdomain:"

// RedisCache implements tenant.Cache on a shared Redis instance, so all
// replicas of the service observe the same cached routing records.
//
// Cache failures degrade to directory reads: a broken Redis never takes
// resolution down, it only makes it slower.
type RedisCache struct {
	client redis.UniversalClient
	log    *slog.Logger
}

func NewRedisCache(client redis.UniversalClient, log *slog.Logger) *RedisCache {
	if log == nil {
		log = slog.Default()
	}
	return &RedisCache{client: client, log: log}
}

// cachedRecord is the wire form of a tenant.Record in Redis.
type cachedRecord struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

func (c *RedisCache) Get(ctx context.Context, key string) (tenant.Record, bool) {
	raw, err := c.client.Get(ctx, cacheKeyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.WarnContext(ctx, "tenant cache read failed", logger.Error(err))
		}
		return tenant.Record{}, false
	}

	var cached cachedRecord
	if err := json.Unmarshal(raw, &cached); err != nil {
		c.log.WarnContext(ctx, "tenant cache entry corrupted", logger.Error(err))
		c.Delete(ctx, key)
		return tenant.Record{}, false
	}

	status, err := tenant.ParseStatus(cached.Status)
	if err != nil {
		c.Delete(ctx, key)
		return tenant.Record{}, false
	}
	return tenant.Record{ID: cached.ID, Status: status}, true
}

func (c *RedisCache) Set(ctx context.Context, key string, rec tenant.Record, ttl time.Duration) {
	raw, err := json.Marshal(cachedRecord{ID: rec.ID, Status: string(rec.Status)})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKeyPrefix+key, raw, ttl).Err(); err != nil {
		c.log.WarnContext(ctx, "tenant cache write failed", logger.Error(err))
	}
}

func (c *RedisCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, cacheKeyPrefix+key).Err(); err != nil {
		c.log.WarnContext(ctx, "tenant cache delete failed", logger.Error(err))
	}
}
