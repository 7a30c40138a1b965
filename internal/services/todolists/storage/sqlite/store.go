// Package sqlite provides the SQLite-backed session store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/todolists/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/todolists/internal/services/todolists/domain"
	"github.com/louisbranch/todolists/internal/services/todolists/storage"
	"github.com/louisbranch/todolists/internal/services/todolists/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists session state rows in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens and migrates the session database at path, creating its parent
// directory when needed.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB, now: time.Now}
	if err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// LoadSession loads a session row, ignoring rows past their expiry.
func (s *Store) LoadSession(ctx context.Context, sessionID string) (domain.Store, bool, error) {
	if s == nil || s.sqlDB == nil {
		return domain.Store{}, false, fmt.Errorf("storage is not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return domain.Store{}, false, fmt.Errorf("session id is required")
	}

	var payload []byte
	var expiresAt int64
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT state_json, expires_at FROM list_sessions WHERE session_id = ?`,
		sessionID,
	).Scan(&payload, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Store{}, false, nil
	}
	if err != nil {
		return domain.Store{}, false, fmt.Errorf("load session: %w", err)
	}
	if expiresAt > 0 && s.now().UTC().UnixMilli() > expiresAt {
		return domain.Store{}, false, nil
	}

	state, err := storage.DecodeState(payload)
	if err != nil {
		return domain.Store{}, false, err
	}
	return state, true, nil
}

// SaveSession upserts the session row. A non-positive ttl never expires.
func (s *Store) SaveSession(ctx context.Context, sessionID string, state domain.Store, ttl time.Duration) error {
	if s == nil || s.sqlDB == nil {
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

	now := s.now().UTC()
	var expiresAt int64
	if ttl > 0 {
		expiresAt = now.Add(ttl).UnixMilli()
	}
	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO list_sessions (session_id, state_json, updated_at, expires_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
		    state_json = excluded.state_json,
		    updated_at = excluded.updated_at,
		    expires_at = excluded.expires_at`,
		sessionID, payload, now.UnixMilli(), expiresAt,
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// DeleteSession removes the session row.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM list_sessions WHERE session_id = ?`, strings.TrimSpace(sessionID)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PurgeExpired deletes rows whose expiry has passed and reports how many were
// removed.
func (s *Store) PurgeExpired(ctx context.Context) (int64, error) {
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM list_sessions WHERE expires_at > 0 AND expires_at < ?`,
		s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("purge expired sessions: %w", err)
	}
	return res.RowsAffected()
}

var _ storage.SessionStore = (*Store)(nil)
