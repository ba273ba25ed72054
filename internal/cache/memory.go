// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	// DefaultSize bounds the number of slugs kept per process.
	DefaultSize = 512

	// DefaultTTL is how long a slug→id mapping is trusted before re-lookup.
	DefaultTTL = 15 * time.Minute
)

// MemorySlugCache is a per-process, size-bounded, expiring slug→id map.
// Instances do not share state, so a renamed category can resolve to a stale
// id on another instance for up to the TTL.
type MemorySlugCache struct {
	lru *expirable.LRU[string, uuid.UUID]
}

// NewMemorySlugCache returns a cache holding at most size entries for ttl
// each. Zero values select DefaultSize and DefaultTTL.
func NewMemorySlugCache(size int, ttl time.Duration) *MemorySlugCache {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemorySlugCache{lru: expirable.NewLRU[string, uuid.UUID](size, nil, ttl)}
}

// Get returns the cached id for slug.
func (c *MemorySlugCache) Get(_ context.Context, slug string) (uuid.UUID, bool) {
	id, ok := c.lru.Get(slug)
	if ok {
		slog.Debug("slug cache hit", "slug", slug)
	}
	return id, ok
}

// Set stores the id for slug.
func (c *MemorySlugCache) Set(_ context.Context, slug string, id uuid.UUID) {
	c.lru.Add(slug, id)
}

// Delete evicts slug.
func (c *MemorySlugCache) Delete(_ context.Context, slug string) {
	c.lru.Remove(slug)
}
