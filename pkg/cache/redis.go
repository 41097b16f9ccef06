package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	doctreeerrors "github.com/matzehuels/doctree/pkg/errors"
)

// keyPrefix namespaces doctree entries in a shared Redis database.
const keyPrefix = "doctree:"

// RedisCache stores entries in Redis so that several server instances share
// rendered artifacts.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the Redis server at url and pings it.
func NewRedisCache(ctx context.Context, url string) (*RedisCache, error) {
	if url == "" {
		return nil, doctreeerrors.New(doctreeerrors.ErrCodeInvalidConfig, "redis cache needs a URL")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, doctreeerrors.Wrap(doctreeerrors.ErrCodeInvalidConfig, err, "redis URL")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &RedisCache{client: client}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.client.Set(ctx, keyPrefix+key, data, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, keyPrefix+key).Err()
}

func (c *RedisCache) Close() error { return c.client.Close() }

var _ Cache = (*RedisCache)(nil)
