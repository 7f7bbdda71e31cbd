// Package session keeps the signed-in user and bearer token between runs.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/pkg/auth"
	"github.com/yigit/unirecords/internal/pkg/logger"
)

type state struct {
	Token string       `json:"token,omitempty"`
	User  *models.User `json:"user,omitempty"`
}

// Store persists the token and user to a JSON file readable only by the owner.
type Store struct {
	mu    sync.RWMutex
	path  string
	state state
}

// Open loads the session file. A user without a token, or a token without a
// user, is stale and is removed.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read session %s: %w", path, err)
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Discarding unreadable session file")
		return s, s.clearLocked()
	}

	if st.Token == "" || st.User == nil {
		return s, s.clearLocked()
	}

	s.state = st
	return s, nil
}

// Path returns the session file location.
func (s *Store) Path() string {
	return s.path
}

// Token implements client.TokenStore
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// User returns a copy of the stored user, or nil.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return nil
	}
	u := *s.state.User
	return &u
}

// IsAuthenticated reports whether a user is stored.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.User != nil
}

// SetToken stores the bearer token.
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = token
	return s.saveLocked()
}

// SetUser stores the signed-in user.
func (s *Store) SetUser(u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = &u
	return s.saveLocked()
}

// ClearAuth implements client.TokenStore; it removes both token and user.
func (s *Store) ClearAuth() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked()
}

// Expired reports whether the stored token's exp claim is before now. Tokens
// that are not JWTs, or carry no exp, are left for the server to judge.
func (s *Store) Expired(now time.Time) bool {
	tok := s.Token()
	if tok == "" {
		return false
	}
	exp, err := auth.PeekExpiry(tok)
	if err != nil || exp.IsZero() {
		return false
	}
	return !now.Before(exp)
}

func (s *Store) clearLocked() error {
	s.state = state{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}
