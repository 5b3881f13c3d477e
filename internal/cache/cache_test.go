// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "content:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestContentCacheRoundTrip(t *testing.T) {
	client := testValkeyClient(t)
	cc := NewContentCache(client, time.Minute)
	ctx := context.Background()

	if _, ok := cc.GetActivePopup(ctx); ok {
		t.Fatal("expected a miss on an empty cache")
	}

	payload := []byte(`{"id":"1","kind":"text","title":"Sale"}`)
	cc.SetActivePopup(ctx, payload)

	got, ok := cc.GetActivePopup(ctx)
	if !ok {
		t.Fatal("expected a hit after Set")
	}
	if string(got) != string(payload) {
		t.Errorf("payload = %s, want %s", got, payload)
	}
}

func TestContentCacheInvalidation(t *testing.T) {
	client := testValkeyClient(t)
	cc := NewContentCache(client, time.Minute)
	ctx := context.Background()

	cc.SetActivePopup(ctx, []byte(`{"popup":true}`))
	cc.SetCirculars(ctx, []byte(`[]`))

	cc.InvalidatePopups(ctx)
	if _, ok := cc.GetActivePopup(ctx); ok {
		t.Error("active popup survived invalidation")
	}
	// Circulars are independent of popup invalidation.
	if _, ok := cc.GetCirculars(ctx); !ok {
		t.Error("circular list dropped by popup invalidation")
	}

	cc.InvalidateCirculars(ctx)
	if _, ok := cc.GetCirculars(ctx); ok {
		t.Error("circular list survived invalidation")
	}
}

func TestContentCacheTTL(t *testing.T) {
	client := testValkeyClient(t)
	cc := NewContentCache(client, time.Second)
	ctx := context.Background()

	cc.SetCirculars(ctx, []byte(`[]`))
	time.Sleep(1200 * time.Millisecond)

	if _, ok := cc.GetCirculars(ctx); ok {
		t.Error("entry survived past its TTL")
	}
}
