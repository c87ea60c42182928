// Package cache stores split previews between the preview and confirm
// steps, so a server flipping between strategies does not recompute.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/mmynk/tabsplit/internal/calculator"
)

const keyPrefix = "tabsplit:preview:"

// PreviewCache holds calculated split previews keyed by PreviewKey.
// A miss is reported as (nil, false, nil); an error means the cache itself
// failed and callers should carry on without it.
type PreviewCache interface {
	Get(ctx context.Context, key string) (*calculator.Result, bool, error)
	Set(ctx context.Context, key string, value *calculator.Result, ttl time.Duration) error
	// Invalidate drops every preview stored for an order.
	Invalidate(ctx context.Context, orderID string) error
}

// PreviewKey derives the cache key for a split of an order. config is the
// canonical encoding of the split configuration.
func PreviewKey(orderID string, config []byte) string {
	sum := sha256.Sum256(config)
	return orderPrefix(orderID) + hex.EncodeToString(sum[:])
}

// orderPrefix is shared by every key of one order.
func orderPrefix(orderID string) string {
	return keyPrefix + orderID + ":"
}

// NoopPreviewCache is used when no cache is configured. It never stores
// anything, so every lookup misses.
type NoopPreviewCache struct{}

func (NoopPreviewCache) Get(_ context.Context, _ string) (*calculator.Result, bool, error) {
	return nil, false, nil
}

func (NoopPreviewCache) Set(_ context.Context, _ string, _ *calculator.Result, _ time.Duration) error {
	return nil
}

func (NoopPreviewCache) Invalidate(_ context.Context, _ string) error {
	return nil
}
