package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements Service using Redis, for deployments where several
// engine instances should share computed vectors.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// RedisOption configures the Redis cache.
type RedisOption func(*redisConfig)

type redisConfig struct {
	addr     string
	password string
	db       int
	poolSize int
	prefix   string
}

func WithRedisAddr(addr string) RedisOption {
	return func(c *redisConfig) { c.addr = addr }
}

func WithRedisPassword(password string) RedisOption {
	return func(c *redisConfig) { c.password = password }
}

func WithRedisDB(db int) RedisOption {
	return func(c *redisConfig) { c.db = db }
}

func WithRedisPoolSize(n int) RedisOption {
	return func(c *redisConfig) { c.poolSize = n }
}

func WithRedisPrefix(prefix string) RedisOption {
	return func(c *redisConfig) { c.prefix = prefix }
}

// NewRedisCache creates a Redis cache client and pings it once.
func NewRedisCache(opts ...RedisOption) (*RedisCache, error) {
	cfg := &redisConfig{
		addr:     "localhost:6379",
		poolSize: 10,
		prefix:   "quantcore",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.addr,
		Password: cfg.password,
		DB:       cfg.db,
		PoolSize: cfg.poolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisCache{client: client, prefix: cfg.prefix}, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := encode(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.wrap(key), data, expiration).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, c.wrap(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return decode(data, dest)
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	wrapped := make([]string, len(keys))
	for i, k := range keys {
		wrapped[i] = c.wrap(k)
	}
	return c.client.Unlink(ctx, wrapped...).Err()
}

func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, c.wrap(key)).Result()
	return n > 0, err
}

func (c *RedisCache) Close() error { return c.client.Close() }

func (c *RedisCache) wrap(key string) string {
	return c.prefix + ":" + key
}
