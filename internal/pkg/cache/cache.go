// Package cache stores short-lived snapshots of fetched records.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Cache is a byte-oriented key/value store with per-entry TTL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Noop never stores anything.
type Noop struct{}

// Get always misses
func (Noop) Get(context.Context, string) ([]byte, error) { return nil, ErrMiss }

// Set discards the value
func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete does nothing
func (Noop) Delete(context.Context, string) error { return nil }

// Close does nothing
func (Noop) Close() error { return nil }
