package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("UNIRECORDS_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("UNIRECORDS_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	r, err := NewRedis(ctx, addr, 0, "unirecords-test:"+uuid.NewString()+":")
	if err != nil {
		t.Fatalf("NewRedis: %v", err)
	}
	defer r.Close()

	if err := r.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := r.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("Get = %q, %v", got, err)
	}
	if err := r.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := r.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected miss, got %v", err)
	}
}

func TestNewRedisUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	if _, err := NewRedis(ctx, "127.0.0.1:1", 0, "x:"); err == nil {
		t.Fatal("expected connection error")
	}
}
