// Package redis provides the Redis-backed session store.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/louisbranch/todolists/internal/services/todolists/domain"
	"github.com/louisbranch/todolists/internal/services/todolists/storage"
)

const defaultKeyPrefix = "todolists:session:"

// Store keeps one JSON value per session, expired by Redis TTL.
type Store struct {
	client    goredis.UniversalClient
	keyPrefix string
}

// Open parses a redis:// URL, connects and pings the server.
func Open(ctx context.Context, redisURL string) (*Store, error) {
	redisURL = strings.TrimSpace(redisURL)
	if redisURL == "" {
		return nil, fmt.Errorf("redis url is required")
	}
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewWithClient(client, ""), nil
}

// NewWithClient wraps an existing client. An empty prefix uses the default.
func NewWithClient(client goredis.UniversalClient, keyPrefix string) *Store {
	if strings.TrimSpace(keyPrefix) == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &Store{client: client, keyPrefix: keyPrefix}
}

func (s *Store) key(sessionID string) string {
	return s.keyPrefix + sessionID
}

// LoadSession reads the session value; a missing key means not found.
func (s *Store) LoadSession(ctx context.Context, sessionID string) (domain.Store, bool, error) {
	if s == nil || s.client == nil {
		return domain.Store{}, false, fmt.Errorf("storage is not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return domain.Store{}, false, fmt.Errorf("session id is required")
	}
	payload, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.Store{}, false, nil
	}
	if err != nil {
		return domain.Store{}, false, fmt.Errorf("load session: %w", err)
	}
	state, err := storage.DecodeState(payload)
	if err != nil {
		return domain.Store{}, false, err
	}
	return state, true, nil
}

// SaveSession writes the session value with ttl. A non-positive ttl keeps the
// key without expiry.
func (s *Store) SaveSession(ctx context.Context, sessionID string, state domain.Store, ttl time.Duration) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("storage is not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}
	payload, err := storage.EncodeState(state)
	if err != nil {
		return err
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, s.key(sessionID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// DeleteSession removes the session key.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("storage is not configured")
	}
	if err := s.client.Del(ctx, s.key(strings.TrimSpace(sessionID))).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Close closes the client.
func (s *Store) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

var _ storage.SessionStore = (*Store)(nil)
