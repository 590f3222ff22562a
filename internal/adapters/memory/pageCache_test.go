package memory

import (
	"context"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestPageCacheMemoryExpiresOnTime(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cache := NewPageCacheMemoryWithClock(clock.Now)
	ctx := context.Background()

	if err := cache.Set(ctx, "index:page=1", []byte("S1"), 20*time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}

	clock.Advance(19 * time.Second)
	got, ok, err := cache.Get(ctx, "index:page=1")
	if err != nil || !ok || string(got) != "S1" {
		t.Fatalf("Get before expiry = %q, %v, %v", got, ok, err)
	}

	clock.Advance(time.Second)
	if _, ok, _ := cache.Get(ctx, "index:page=1"); ok {
		t.Fatal("entry served at its expiry instant")
	}
}

func TestPageCacheMemoryKeepsItsOwnCopy(t *testing.T) {
	cache := NewPageCacheMemory()
	ctx := context.Background()

	value := []byte("S1")
	cache.Set(ctx, "k", value, time.Minute)
	value[0] = 'X'

	got, _, _ := cache.Get(ctx, "k")
	if string(got) != "S1" {
		t.Fatalf("stored value changed to %q", got)
	}
}

func TestPageCacheMemoryFlushAndSweep(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cache := NewPageCacheMemoryWithClock(clock.Now)
	ctx := context.Background()

	cache.Set(ctx, "short", []byte("a"), time.Second)
	cache.Set(ctx, "long", []byte("b"), time.Hour)
	cache.Set(ctx, "ignored", []byte("c"), 0)
	if cache.Len() != 2 {
		t.Fatalf("Len = %d, want 2", cache.Len())
	}

	clock.Advance(2 * time.Second)
	if removed := cache.Sweep(ctx); removed != 1 {
		t.Fatalf("Sweep removed %d, want 1", removed)
	}
	if _, ok, _ := cache.Get(ctx, "long"); !ok {
		t.Fatal("live entry swept")
	}

	if err := cache.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if cache.Len() != 0 {
		t.Fatalf("Len after Flush = %d", cache.Len())
	}
	if _, ok, _ := cache.Get(ctx, "long"); ok {
		t.Fatal("entry survived Flush")
	}
}

func TestPageCacheNoop(t *testing.T) {
	var cache PageCacheNoop
	ctx := context.Background()

	if err := cache.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, err := cache.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("Get = %v, %v; want miss", ok, err)
	}
	if err := cache.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}
