package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMemorySlugCacheSetAndGet(t *testing.T) {
	c := NewMemorySlugCache(10, time.Minute)
	ctx := context.Background()

	if _, ok := c.Get(ctx, "economie"); ok {
		t.Fatal("expected miss on empty cache")
	}

	id := uuid.New()
	c.Set(ctx, "economie", id)

	got, ok := c.Get(ctx, "economie")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if got != id {
		t.Errorf("id: got %s, want %s", got, id)
	}
}

func TestMemorySlugCacheBounded(t *testing.T) {
	c := NewMemorySlugCache(2, time.Minute)
	ctx := context.Background()

	c.Set(ctx, "a", uuid.New())
	c.Set(ctx, "b", uuid.New())
	c.Set(ctx, "c", uuid.New())

	if n := c.lru.Len(); n != 2 {
		t.Errorf("len: got %d, want 2", n)
	}
	if _, ok := c.Get(ctx, "a"); ok {
		t.Error("least recently used entry should have been evicted")
	}
}

func TestMemorySlugCacheExpiry(t *testing.T) {
	c := NewMemorySlugCache(10, 50*time.Millisecond)
	ctx := context.Background()

	c.Set(ctx, "finance", uuid.New())
	time.Sleep(120 * time.Millisecond)

	if _, ok := c.Get(ctx, "finance"); ok {
		t.Error("entry should have expired")
	}
}

func TestMemorySlugCacheDelete(t *testing.T) {
	c := NewMemorySlugCache(0, 0)
	ctx := context.Background()

	c.Set(ctx, "a", uuid.New())
	c.Set(ctx, "b", uuid.New())

	c.Delete(ctx, "a")
	if _, ok := c.Get(ctx, "a"); ok {
		t.Error("expected miss after Delete")
	}
	if _, ok := c.Get(ctx, "b"); !ok {
		t.Error("Delete must not touch other entries")
	}
}
