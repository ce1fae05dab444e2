package jpqlcache

import (
	"context"
	"path/filepath"
	"testing"
)

func TestOpenCreatesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer c.Close()

	n, err := c.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected empty cache, got %d entries", n)
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Put(ctx, "key1", "select u from User u", "select u from User u", 1000); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	out, ok, err := c.Get(ctx, "key1")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if out != "select u from User u" {
		t.Errorf("output = %q, want %q", out, "select u from User u")
	}
}

func TestGetMiss(t *testing.T) {
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer c.Close()

	_, ok, err := c.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if ok {
		t.Fatal("expected cache miss")
	}
}

func TestPutOverwritesExistingKey(t *testing.T) {
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Put(ctx, "key1", "q", "old", 1); err != nil {
		t.Fatalf("first Put() failed: %v", err)
	}
	if err := c.Put(ctx, "key1", "q", "new", 2); err != nil {
		t.Fatalf("second Put() failed: %v", err)
	}

	out, ok, err := c.Get(ctx, "key1")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !ok || out != "new" {
		t.Errorf("Get() = (%q, %v), want (\"new\", true)", out, ok)
	}
}

func TestClearRemovesAllEntries(t *testing.T) {
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	_ = c.Put(ctx, "key1", "q1", "o1", 1)
	_ = c.Put(ctx, "key2", "q2", "o2", 1)

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}

	n, err := c.Count(ctx)
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 entries after Clear(), got %d", n)
	}
}

func TestCachedRewriteIsTransparent(t *testing.T) {
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	query := "select u from User u"

	cold, err := CachedRewrite(ctx, c, query, nil, 1000)
	if err != nil {
		t.Fatalf("CachedRewrite() (cold) failed: %v", err)
	}

	n, err := c.Count(ctx)
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 cache entry after cold call, got %d", n)
	}

	warm, err := CachedRewrite(ctx, c, query, nil, 2000)
	if err != nil {
		t.Fatalf("CachedRewrite() (warm) failed: %v", err)
	}

	if cold != warm {
		t.Errorf("cold = %q, warm = %q, want equal", cold, warm)
	}
	if cold != "select u from User u" {
		t.Errorf("got %q, want %q", cold, "select u from User u")
	}
}
