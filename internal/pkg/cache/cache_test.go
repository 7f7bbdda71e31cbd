package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func exercise(t *testing.T, c Cache, advance func(time.Duration)) {
	t.Helper()
	ctx := context.Background()

	if _, err := c.Get(ctx, "snapshot:admin"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected miss on empty cache, got %v", err)
	}
	if err := c.Set(ctx, "snapshot:admin", []byte(`{"students":[]}`), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "snapshot:admin")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `{"students":[]}` {
		t.Fatalf("unexpected value %q", got)
	}

	advance(2 * time.Minute)
	if _, err := c.Get(ctx, "snapshot:admin"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected expiry miss, got %v", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected miss after delete, got %v", err)
	}
}

func TestMemoryCache(t *testing.T) {
	m := NewMemory()
	now := time.Now()
	m.now = func() time.Time { return now }
	exercise(t, m, func(d time.Duration) { now = now.Add(d) })
}

func TestFileCache(t *testing.T) {
	f, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	now := time.Now()
	f.now = func() time.Time { return now }
	exercise(t, f, func(d time.Duration) { now = now.Add(d) })
}

func TestNoop(t *testing.T) {
	var c Cache = Noop{}
	_ = c.Set(context.Background(), "k", []byte("v"), time.Minute)
	if _, err := c.Get(context.Background(), "k"); !errors.Is(err, ErrMiss) {
		t.Fatal("noop cache should always miss")
	}
}
