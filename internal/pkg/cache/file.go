package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type fileEntry struct {
	ExpiresAt time.Time `json:"expires_at"`
	Value     []byte    `json:"value"`
}

// File keeps one JSON file per key so single-shot CLI runs can share entries.
type File struct {
	dir string
	now func() time.Time
}

// NewFile creates the cache directory with owner-only permissions.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create cache dir %s: %w", dir, err)
	}
	return &File{dir: dir, now: time.Now}, nil
}

func (f *File) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(f.dir, hex.EncodeToString(sum[:16])+".json")
}

// Get reads and decodes the entry, treating unreadable files as misses.
func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("read cache entry: %w", err)
	}

	var e fileEntry
	if err := json.Unmarshal(data, &e); err != nil {
		_ = os.Remove(f.path(key))
		return nil, ErrMiss
	}
	if !e.ExpiresAt.IsZero() && !f.now().Before(e.ExpiresAt) {
		_ = os.Remove(f.path(key))
		return nil, ErrMiss
	}
	return e.Value, nil
}

// Set writes the entry with 0600 permissions.
func (f *File) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := fileEntry{Value: value}
	if ttl > 0 {
		e.ExpiresAt = f.now().Add(ttl)
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err := os.WriteFile(f.path(key), data, 0o600); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Delete removes the entry file if present.
func (f *File) Delete(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return nil
}

// Close is a no-op for files.
func (f *File) Close() error { return nil }
