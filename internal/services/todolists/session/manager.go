// Package session binds browser sessions to their stored list collections.
//
// A session is identified by a random id carried in a signed cookie. Reads
// load a snapshot; writes run load, mutate and save under a per-session lock
// so concurrent requests from one browser cannot interleave.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/louisbranch/todolists/internal/platform/id"
	"github.com/louisbranch/todolists/internal/services/todolists/domain"
	"github.com/louisbranch/todolists/internal/services/todolists/platform/requestmeta"
	"github.com/louisbranch/todolists/internal/services/todolists/platform/sessioncookie"
	"github.com/louisbranch/todolists/internal/services/todolists/storage"
)

// Config configures a Manager.
type Config struct {
	Store  storage.SessionStore
	Secret []byte
	TTL    time.Duration
	Policy requestmeta.SchemePolicy
}

// Manager resolves request sessions and persists their state.
type Manager struct {
	store  storage.SessionStore
	tokens *TokenCodec
	ttl    time.Duration
	policy requestmeta.SchemePolicy
	locks  keyedMutex
}

// NewManager validates cfg and builds a Manager.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Store == nil {
		return nil, errors.New("session store is required")
	}
	tokens, err := NewTokenCodec(cfg.Secret)
	if err != nil {
		return nil, err
	}
	return &Manager{
		store:  cfg.Store,
		tokens: tokens,
		ttl:    cfg.TTL,
		policy: cfg.Policy,
	}, nil
}

// View returns the caller's current state. Requests without a valid session
// see an empty collection and no session is created.
func (m *Manager) View(r *http.Request) (domain.Store, error) {
	sessionID, ok := m.sessionID(r)
	if !ok {
		return domain.Store{}, nil
	}
	state, _, err := m.store.LoadSession(r.Context(), sessionID)
	if err != nil {
		return domain.Store{}, fmt.Errorf("view session: %w", err)
	}
	return state, nil
}

// Update applies mutate to the caller's state and saves the result, creating
// the session on first write. When mutate fails nothing is saved and the
// unmodified state is returned with the error.
func (m *Manager) Update(w http.ResponseWriter, r *http.Request, mutate func(*domain.Store) error) (domain.Store, error) {
	sessionID, ok := m.sessionID(r)
	if !ok {
		fresh, err := id.NewID()
		if err != nil {
			return domain.Store{}, fmt.Errorf("create session: %w", err)
		}
		sessionID = fresh
	}

	unlock := m.locks.Lock(sessionID)
	defer unlock()

	ctx := r.Context()
	current, _, err := m.store.LoadSession(ctx, sessionID)
	if err != nil {
		return domain.Store{}, fmt.Errorf("load session: %w", err)
	}
	next := current.Clone()
	if err := mutate(&next); err != nil {
		return current, err
	}
	if err := m.store.SaveSession(ctx, sessionID, next, m.ttl); err != nil {
		return current, fmt.Errorf("save session: %w", err)
	}
	if err := m.writeCookie(w, r, sessionID); err != nil {
		return next, err
	}
	return next, nil
}

// Ping checks that the backing store answers.
func (m *Manager) Ping(ctx context.Context) error {
	_, _, err := m.store.LoadSession(ctx, "healthcheck")
	return err
}

func (m *Manager) sessionID(r *http.Request) (string, bool) {
	token, ok := sessioncookie.Read(r)
	if !ok {
		return "", false
	}
	sessionID, err := m.tokens.Parse(token)
	if err != nil {
		log.Printf("session token rejected path=%s err=%v", r.URL.Path, err)
		return "", false
	}
	return sessionID, true
}

func (m *Manager) writeCookie(w http.ResponseWriter, r *http.Request, sessionID string) error {
	token, err := m.tokens.Issue(sessionID, m.ttl)
	if err != nil {
		return err
	}
	sessioncookie.Write(w, r, token, m.ttl, m.policy)
	return nil
}

// keyedMutex hands out one mutex per key and forgets keys nobody holds.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*keyedLock)
	}
	entry, ok := k.locks[key]
	if !ok {
		entry = &keyedLock{}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
