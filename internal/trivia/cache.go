package trivia

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	categoryCacheKey = "trivia:categories"
	defaultCacheTTL  = 5 * time.Minute
)

// CategoryCache caches the category map. Categories are immutable after
// seeding, so the cache never needs invalidation, only a TTL.
type CategoryCache interface {
	Get(ctx context.Context) (CategoryMap, error)
	Set(ctx context.Context, categories CategoryMap) error
}

// RedisCategoryCache is the Redis-backed CategoryCache used in
// production. A cache miss is (nil, nil), not an error.
type RedisCategoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ CategoryCache = (*RedisCategoryCache)(nil)

func NewRedisCategoryCache(client *redis.Client, ttl time.Duration) *RedisCategoryCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &RedisCategoryCache{client: client, ttl: ttl}
}

func (c *RedisCategoryCache) Get(ctx context.Context) (CategoryMap, error) {
	data, err := c.client.Get(ctx, categoryCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var categories CategoryMap
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *RedisCategoryCache) Set(ctx context.Context, categories CategoryMap) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, categoryCacheKey, data, c.ttl).Err()
}
