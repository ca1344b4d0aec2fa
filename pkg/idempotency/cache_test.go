package idempotency

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := New(time.Minute)
	c.Set("k", "v")

	got, ok := c.Get("k")
	if !ok || got != "v" {
		t.Fatalf("expected hit with v, got %v %v", got, ok)
	}
}

func TestCacheMiss(t *testing.T) {
	c := New(time.Minute)
	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected miss")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := New(time.Millisecond)
	c.Set("k", "v")
	time.Sleep(5 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected expired entry")
	}
}

func TestNilCacheSafe(t *testing.T) {
	var c *Cache
	c.Set("k", "v")
	if _, ok := c.Get("k"); ok {
		t.Fatal("nil cache must miss")
	}
}
