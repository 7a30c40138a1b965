// Package storage declares persistence contracts for per-session list state.
//
// The web service is the only writer. Session state is keyed by an opaque
// session id and expires after a configured TTL.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/louisbranch/todolists/internal/services/todolists/domain"
)

// Backend names accepted by configuration.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// SessionStore loads and saves the list collection owned by one session.
type SessionStore interface {
	// LoadSession returns the stored state; found is false for unknown or
	// expired sessions.
	LoadSession(ctx context.Context, sessionID string) (state domain.Store, found bool, err error)
	// SaveSession replaces the stored state and extends its expiry to
	// now+ttl.
	SaveSession(ctx context.Context, sessionID string, state domain.Store, ttl time.Duration) error
	// DeleteSession removes the session; unknown ids are ignored.
	DeleteSession(ctx context.Context, sessionID string) error
	Close() error
}

// EncodeState serializes session state for byte-oriented backends.
func EncodeState(state domain.Store) ([]byte, error) {
	if state.Lists == nil {
		state.Lists = []domain.List{}
	}
	payload, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encode session state: %w", err)
	}
	return payload, nil
}

// DecodeState parses a payload written by EncodeState.
func DecodeState(payload []byte) (domain.Store, error) {
	var state domain.Store
	if len(payload) == 0 {
		return state, nil
	}
	if err := json.Unmarshal(payload, &state); err != nil {
		return domain.Store{}, fmt.Errorf("decode session state: %w", err)
	}
	for i := range state.Lists {
		if state.Lists[i].Todos == nil {
			state.Lists[i].Todos = []domain.Todo{}
		}
	}
	return state, nil
}
