package cache

import (
	"errors"
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := New[string](Config{MaxItems: 10})

	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should miss")
	}
	c.Set("a", "1")
	if v, ok := c.Get("a"); !ok || v != "1" {
		t.Errorf("Get(a) = %q, %v; want 1, true", v, ok)
	}

	hits, misses, rate := c.Stats()
	if hits != 1 || misses != 1 || rate != 50 {
		t.Errorf("Stats() = %d, %d, %v; want 1, 1, 50", hits, misses, rate)
	}

	c.Delete("a")
	if c.Size() != 0 {
		t.Errorf("Size() after Delete = %d, want 0", c.Size())
	}
}

func TestExpiration(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := New[int](Config{TTL: time.Minute})
	c.now = func() time.Time { return now }

	c.Set("x", 1)
	c.SetWithTTL("forever", 2, 0)

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("x"); ok {
		t.Error("Get(x) should miss after TTL")
	}
	if v, ok := c.Get("forever"); !ok || v != 2 {
		t.Error("entries without TTL should not expire")
	}

	c.Set("y", 3)
	now = now.Add(2 * time.Minute)
	if removed := c.Cleanup(); removed != 1 {
		t.Errorf("Cleanup() = %d, want 1", removed)
	}
}

func TestEviction(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := New[int](Config{MaxItems: 2, TTL: time.Hour})
	c.now = func() time.Time { return now }

	c.Set("old", 1)
	now = now.Add(time.Minute)
	c.Set("new", 2)
	c.Set("new", 3) // overwrite does not evict
	if c.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", c.Size())
	}

	c.Set("newest", 4)
	if _, ok := c.Get("old"); ok {
		t.Error("oldest entry should have been evicted")
	}
	if v, _ := c.Get("new"); v != 3 {
		t.Errorf("Get(new) = %d, want 3", v)
	}
}

func TestGetOrSet(t *testing.T) {
	c := New[string](DefaultConfig())
	calls := 0
	fn := func() (string, error) {
		calls++
		return "ir", nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrSet("k", fn)
		if err != nil || v != "ir" {
			t.Fatalf("GetOrSet() = %q, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}

	boom := errors.New("boom")
	if _, err := c.GetOrSet("bad", func() (string, error) { return "", boom }); !errors.Is(err, boom) {
		t.Errorf("GetOrSet() error = %v, want boom", err)
	}
	if _, ok := c.Get("bad"); ok {
		t.Error("errors must not be cached")
	}
}

func TestSourceKey(t *testing.T) {
	a := SourceKey("1 + 2;", "fold=false")
	if a != SourceKey("1 + 2;", "fold=false") {
		t.Error("SourceKey should be deterministic")
	}
	if a == SourceKey("1 + 2;", "fold=true") {
		t.Error("options should change the key")
	}
	if a == SourceKey("1 + 3;", "fold=false") {
		t.Error("source should change the key")
	}
	if len(a) != 64 {
		t.Errorf("len(SourceKey) = %d, want 64", len(a))
	}
}
