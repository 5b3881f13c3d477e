// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// content.go provides a Valkey-backed cache of the resolved public JSON
// payloads. Public traffic reads the active popup and the visible circular
// list far more often than admins change them, so the serialized responses
// are cached and dropped whenever a lifecycle mutation is confirmed.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// keyActivePopup caches the active-popup response for public pages.
	keyActivePopup = "content:active_popup"

	// keyCirculars caches the visible circular list for public pages.
	keyCirculars = "content:circulars"

	// DefaultTTL is how long a resolved payload stays cached without an
	// explicit invalidation.
	DefaultTTL = 5 * time.Minute
)

// ContentCache manages resolved public content in Valkey. It implements
// the lifecycle package's Invalidator interface so the stores can drop
// stale entries after every confirmed mutation.
type ContentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewContentCache creates a content cache backed by the given Valkey client.
func NewContentCache(client *redis.Client, ttl time.Duration) *ContentCache {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &ContentCache{client: client, ttl: ttl}
}

// GetActivePopup returns the cached active-popup payload. The second return
// is false on a miss.
func (cc *ContentCache) GetActivePopup(ctx context.Context) ([]byte, bool) {
	return cc.get(ctx, keyActivePopup)
}

// SetActivePopup stores the active-popup payload with the configured TTL.
func (cc *ContentCache) SetActivePopup(ctx context.Context, body []byte) {
	cc.set(ctx, keyActivePopup, body)
}

// GetCirculars returns the cached circular-list payload.
func (cc *ContentCache) GetCirculars(ctx context.Context) ([]byte, bool) {
	return cc.get(ctx, keyCirculars)
}

// SetCirculars stores the circular-list payload with the configured TTL.
func (cc *ContentCache) SetCirculars(ctx context.Context, body []byte) {
	cc.set(ctx, keyCirculars, body)
}

// InvalidatePopups drops the cached active popup.
func (cc *ContentCache) InvalidatePopups(ctx context.Context) {
	cc.del(ctx, keyActivePopup)
}

// InvalidateCirculars drops the cached circular list.
func (cc *ContentCache) InvalidateCirculars(ctx context.Context) {
	cc.del(ctx, keyCirculars)
}

func (cc *ContentCache) get(ctx context.Context, key string) ([]byte, bool) {
	val, err := cc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("content cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("content cache hit", "key", key)
	return val, true
}

func (cc *ContentCache) set(ctx context.Context, key string, body []byte) {
	if err := cc.client.Set(ctx, key, body, cc.ttl).Err(); err != nil {
		slog.Warn("content cache set error", "key", key, "error", err)
	}
}

func (cc *ContentCache) del(ctx context.Context, key string) {
	if err := cc.client.Del(ctx, key).Err(); err != nil {
		slog.Warn("content cache invalidate error", "key", key, "error", err)
	}
	slog.Debug("content cache invalidated", "key", key)
}
