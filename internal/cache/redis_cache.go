package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/mmynk/tabsplit/internal/calculator"
)

// entryVersion is bumped whenever calculator.Result changes shape, so
// entries written by an older build read as misses.
const entryVersion = 1

// scanBatch is the COUNT hint for SCAN during invalidation.
const scanBatch = 100

// RedisOptions configures the connection behind a RedisPreviewCache.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// RedisPreviewCache stores previews in Redis as versioned JSON entries.
type RedisPreviewCache struct {
	client redis.UniversalClient
}

// entry is the stored form of a preview.
type entry struct {
	Version int               `json:"v"`
	Result  calculator.Result `json:"result"`
}

// NewRedisPreviewCache wraps an existing client. Close closes it.
func NewRedisPreviewCache(client redis.UniversalClient) *RedisPreviewCache {
	return &RedisPreviewCache{client: client}
}

// DialRedis connects to Redis and checks it answers before returning.
// On failure the connection is closed.
func DialRedis(ctx context.Context, opts RedisOptions) (*RedisPreviewCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}
	return NewRedisPreviewCache(client), nil
}

// Close closes the underlying client.
func (c *RedisPreviewCache) Close() error {
	return c.client.Close()
}

// Get returns the preview stored under key. Entries that do not decode, or
// were written with another entryVersion, are deleted and reported as a miss.
func (c *RedisPreviewCache) Get(ctx context.Context, key string) (*calculator.Result, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("get preview %s: %w", key, err)
	}

	e, ok := decodeEntry(raw)
	if !ok {
		slog.Debug("Discarding stale preview entry", "key", key)
		if err := c.client.Del(ctx, key).Err(); err != nil {
			return nil, false, fmt.Errorf("delete stale preview %s: %w", key, err)
		}
		return nil, false, nil
	}
	return &e.Result, true, nil
}

// Set stores value under key for ttl. A nil value or a ttl that is not
// positive stores nothing, since a preview must always expire.
func (c *RedisPreviewCache) Set(ctx context.Context, key string, value *calculator.Result, ttl time.Duration) error {
	if value == nil || ttl <= 0 {
		return nil
	}
	raw, err := json.Marshal(entry{Version: entryVersion, Result: *value})
	if err != nil {
		return fmt.Errorf("encode preview %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("set preview %s: %w", key, err)
	}
	return nil
}

// Invalidate deletes every preview of orderID.
func (c *RedisPreviewCache) Invalidate(ctx context.Context, orderID string) error {
	iter := c.client.Scan(ctx, 0, orderPrefix(orderID)+"*", scanBatch).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan previews of order %s: %w", orderID, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete previews of order %s: %w", orderID, err)
	}
	return nil
}

func decodeEntry(raw []byte) (entry, bool) {
	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return entry{}, false
	}
	return e, e.Version == entryVersion
}
