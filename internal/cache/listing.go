// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"b3cms/internal/models"
)

const (
	// listingKeyPrefix is the Valkey key prefix for cached listing pages.
	listingKeyPrefix = "listing:"

	// DefaultListingTTL bounds how stale a cached listing can be. Records
	// whose publishedAt passes while a page is cached appear after expiry.
	DefaultListingTTL = time.Minute
)

// ListingCache stores JSON-encoded published listing pages in Valkey.
// Errors are logged and treated as misses so the store stays authoritative.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListingCache creates a listing cache backed by the given Valkey client.
func NewListingCache(client *redis.Client, ttl time.Duration) *ListingCache {
	if ttl <= 0 {
		ttl = DefaultListingTTL
	}
	return &ListingCache{client: client, ttl: ttl}
}

// Get returns the cached page for key, if any.
func (lc *ListingCache) Get(ctx context.Context, key string) (*models.ContentPage, bool) {
	raw, err := lc.client.Get(ctx, listingKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("listing cache get error", "key", key, "error", err)
		return nil, false
	}

	var page models.ContentPage
	if err := json.Unmarshal(raw, &page); err != nil {
		slog.Warn("listing cache decode error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("listing cache hit", "key", key)
	return &page, true
}

// Set stores page under key with the configured TTL.
func (lc *ListingCache) Set(ctx context.Context, key string, page *models.ContentPage) {
	raw, err := json.Marshal(page)
	if err != nil {
		slog.Warn("listing cache encode error", "key", key, "error", err)
		return
	}
	if err := lc.client.Set(ctx, listingKeyPrefix+key, raw, lc.ttl).Err(); err != nil {
		slog.Warn("listing cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached listing by scanning for the prefix.
// Any content mutation can change any published page, so there is no
// finer-grained invalidation.
func (lc *ListingCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := lc.client.Scan(ctx, cursor, listingKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("listing cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := lc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("listing cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("listing cache cleared", "deleted", deleted)
	}
}
