package revocation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// scanCount is the COUNT hint passed to SCAN.
const scanCount = 100

// RedisCache implements Cache on Redis. The connection is established on
// first use; Init may be called at startup to fail fast.
type RedisCache struct {
	opts *redis.Options

	mu     sync.Mutex
	client *redis.Client
}

var _ Cache = (*RedisCache)(nil)

// NewRedisCache parses a redis:// or rediss:// URL. No connection is made.
func NewRedisCache(url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("revocation: parse redis url: %w", err)
	}
	return &RedisCache{opts: opts}, nil
}

// Init connects and pings. It is a no-op once connected.
func (c *RedisCache) Init(ctx context.Context) error {
	_, err := c.conn(ctx)
	return err
}

func (c *RedisCache) conn(ctx context.Context) (*redis.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}

	client := redis.NewClient(c.opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("revocation: connect redis %s: %w", c.opts.Addr, err)
	}
	c.client = client
	return client, nil
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	client, err := c.conn(ctx)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	client, err := c.conn(ctx)
	if err != nil {
		return false, err
	}
	return client.SetNX(ctx, key, value, ttl).Result()
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	client, err := c.conn(ctx)
	if err != nil {
		return "", err
	}
	val, err := client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	return val, err
}

func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	client, err := c.conn(ctx)
	if err != nil {
		return false, err
	}
	n, err := client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *RedisCache) TTL(ctx context.Context, key string) (time.Duration, error) {
	client, err := c.conn(ctx)
	if err != nil {
		return 0, err
	}
	ttl, err := client.TTL(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	// go-redis reports -1/-2 as raw durations
	if ttl < 0 {
		return -1, nil
	}
	return ttl, nil
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	client, err := c.conn(ctx)
	if err != nil {
		return err
	}
	return client.Del(ctx, keys...).Err()
}

// Keys walks the keyspace with SCAN so large databases are not blocked the
// way KEYS would.
func (c *RedisCache) Keys(ctx context.Context, pattern string) ([]string, error) {
	client, err := c.conn(ctx)
	if err != nil {
		return nil, err
	}

	var keys []string
	iter := client.Scan(ctx, 0, pattern, scanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	client, err := c.conn(ctx)
	if err != nil {
		return err
	}
	return client.Ping(ctx).Err()
}

// Close releases the connection pool. A later call reconnects.
func (c *RedisCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}
