package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/you/elearnauth/domain"
)

// RedisSessionCache implements domain.SessionCache on a redis client
type RedisSessionCache struct {
	client redis.Cmdable
}

// NewRedisSessionCache creates a new redis-backed session cache
func NewRedisSessionCache(client redis.Cmdable) domain.SessionCache {
	return &RedisSessionCache{client: client}
}

// Get implements domain.SessionCache
func (c *RedisSessionCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, err
	}
	return data, nil
}

// Set implements domain.SessionCache
func (c *RedisSessionCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// SetIfExists implements domain.SessionCache with SET XX
func (c *RedisSessionCache) SetIfExists(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	return c.client.SetXX(ctx, key, value, ttl).Result()
}

// Delete implements domain.SessionCache. Deleting an absent key is not an error.
func (c *RedisSessionCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}
