// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// slugs.go provides a Valkey-backed slug→id cache shared by every instance
// of the service, so a category mapping is looked up once per TTL cluster-wide
// instead of once per process.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// slugKeyPrefix is the Valkey key prefix for category slug mappings.
const slugKeyPrefix = "category:slug:"

// ValkeySlugCache stores slug→id mappings in Valkey with a TTL. Backend
// errors degrade to cache misses.
type ValkeySlugCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewValkeySlugCache creates a slug cache backed by the given Valkey client.
func NewValkeySlugCache(client *redis.Client, ttl time.Duration) *ValkeySlugCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ValkeySlugCache{client: client, ttl: ttl}
}

// Get retrieves the cached id for slug.
func (c *ValkeySlugCache) Get(ctx context.Context, slug string) (uuid.UUID, bool) {
	val, err := c.client.Get(ctx, slugKeyPrefix+slug).Result()
	if err == redis.Nil {
		return uuid.Nil, false
	}
	if err != nil {
		slog.Warn("slug cache get error", "slug", slug, "error", err)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(val)
	if err != nil {
		slog.Warn("slug cache holds malformed id", "slug", slug, "value", val)
		return uuid.Nil, false
	}
	slog.Debug("slug cache hit", "slug", slug)
	return id, true
}

// Set stores the id for slug with the configured TTL.
func (c *ValkeySlugCache) Set(ctx context.Context, slug string, id uuid.UUID) {
	if err := c.client.Set(ctx, slugKeyPrefix+slug, id.String(), c.ttl).Err(); err != nil {
		slog.Warn("slug cache set error", "slug", slug, "error", err)
	}
}

// Delete evicts slug.
func (c *ValkeySlugCache) Delete(ctx context.Context, slug string) {
	if err := c.client.Del(ctx, slugKeyPrefix+slug).Err(); err != nil {
		slog.Warn("slug cache delete error", "slug", slug, "error", err)
	}
}

// Purge removes all cached slugs by scanning for the prefix.
func (c *ValkeySlugCache) Purge(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, next, err := c.client.Scan(ctx, cursor, slugKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("slug cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("slug cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("slug cache cleared", "deleted", deleted)
	}
}
