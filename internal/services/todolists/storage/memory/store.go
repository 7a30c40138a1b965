// Package memory provides a process-local session store.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/todolists/internal/services/todolists/domain"
	"github.com/louisbranch/todolists/internal/services/todolists/storage"
)

type entry struct {
	state     domain.Store
	expiresAt time.Time
}

// Store keeps session state in a map guarded by a RWMutex. State is lost on
// restart.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]entry
	now      func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{sessions: make(map[string]entry), now: time.Now}
}

// LoadSession returns a copy of the stored state, or found=false when missing
// or expired.
func (s *Store) LoadSession(_ context.Context, sessionID string) (domain.Store, bool, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return domain.Store{}, false, fmt.Errorf("session id is required")
	}
	s.mu.RLock()
	e, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return domain.Store{}, false, nil
	}
	if !e.expiresAt.IsZero() && s.now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return domain.Store{}, false, nil
	}
	return e.state.Clone(), true, nil
}

// SaveSession stores a copy of state. A non-positive ttl never expires.
func (s *Store) SaveSession(_ context.Context, sessionID string, state domain.Store, ttl time.Duration) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.sessions[sessionID] = entry{state: state.Clone(), expiresAt: expiresAt}
	s.mu.Unlock()
	return nil
}

// DeleteSession removes the session.
func (s *Store) DeleteSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, strings.TrimSpace(sessionID))
	s.mu.Unlock()
	return nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

var _ storage.SessionStore = (*Store)(nil)
