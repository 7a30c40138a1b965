// Package todolists parses command configuration and starts the web server.
package todolists

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/todolists/internal/platform/cmd"
	"github.com/louisbranch/todolists/internal/platform/otel"
	"github.com/louisbranch/todolists/internal/platform/timeouts"
	server "github.com/louisbranch/todolists/internal/services/todolists"
	"github.com/louisbranch/todolists/internal/services/todolists/platform/httpx"
	"github.com/louisbranch/todolists/internal/services/todolists/storage"
	"github.com/louisbranch/todolists/internal/services/todolists/storage/memory"
	"github.com/louisbranch/todolists/internal/services/todolists/storage/redis"
	"github.com/louisbranch/todolists/internal/services/todolists/storage/sqlite"
)

// Config holds todolists command configuration.
type Config struct {
	HTTPAddr            string        `env:"TODOLISTS_HTTP_ADDR" envDefault:"localhost:4567"`
	SessionBackend      string        `env:"TODOLISTS_SESSION_BACKEND" envDefault:"memory"`
	SQLitePath          string        `env:"TODOLISTS_SQLITE_PATH" envDefault:"data/todolists.db"`
	SQLitePurgeInterval time.Duration `env:"TODOLISTS_SQLITE_PURGE_INTERVAL" envDefault:"1h"`
	RedisURL            string        `env:"TODOLISTS_REDIS_URL"`
	SessionSecret       string        `env:"TODOLISTS_SESSION_SECRET"`
	SessionTTL          time.Duration `env:"TODOLISTS_SESSION_TTL" envDefault:"720h"`
	ResponseMode        string        `env:"TODOLISTS_RESPONSE_MODE" envDefault:"detect"`
	TrustForwardedProto bool          `env:"TODOLISTS_TRUST_FORWARDED_PROTO"`
	Telemetry           otel.Config
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfigFromArgs(&cfg, fs, args, bindFlags); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.SessionBackend, "session-backend", cfg.SessionBackend, "Session store: memory, sqlite or redis")
	fs.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "SQLite session database path")
	fs.StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL for the redis session backend")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Idle lifetime of a session")
	fs.StringVar(&cfg.ResponseMode, "response-mode", cfg.ResponseMode, "Async mutation responses: detect or redirect")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Honor X-Forwarded-Proto for secure cookies")
}

// Run starts the todolists web server.
func Run(ctx context.Context, cfg Config) error {
	mode, err := httpx.ParseResponseMode(cfg.ResponseMode)
	if err != nil {
		return err
	}
	secret, err := resolveSecret(cfg.SessionSecret)
	if err != nil {
		return err
	}

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceTodolists, entrypoint.RunOptions{Telemetry: cfg.Telemetry}, func(ctx context.Context) error {
		store, err := openStore(ctx, cfg)
		if err != nil {
			return fmt.Errorf("open session store: %w", err)
		}
		srv, err := server.NewServer(server.Config{
			HTTPAddr:            cfg.HTTPAddr,
			Store:               store,
			SessionSecret:       secret,
			SessionTTL:          cfg.SessionTTL,
			ResponseMode:        mode,
			TrustForwardedProto: cfg.TrustForwardedProto,
		})
		if err != nil {
			_ = store.Close()
			return fmt.Errorf("init todolists server: %w", err)
		}
		defer srv.Close()

		if purger, ok := store.(expiredSessionPurger); ok && cfg.SQLitePurgeInterval > 0 {
			go purgeExpiredSessions(ctx, purger, cfg.SQLitePurgeInterval)
		}

		if err := srv.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve todolists: %w", err)
		}
		return nil
	})
}

func openStore(ctx context.Context, cfg Config) (storage.SessionStore, error) {
	switch backend := strings.ToLower(strings.TrimSpace(cfg.SessionBackend)); backend {
	case "", storage.BackendMemory:
		return memory.New(), nil
	case storage.BackendSQLite:
		return sqlite.Open(cfg.SQLitePath)
	case storage.BackendRedis:
		if strings.TrimSpace(cfg.RedisURL) == "" {
			return nil, fmt.Errorf("redis backend requires TODOLISTS_REDIS_URL")
		}
		connectCtx, cancel := context.WithTimeout(ctx, timeouts.StoreConnect)
		defer cancel()
		return redis.Open(connectCtx, cfg.RedisURL)
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}

// resolveSecret returns the configured signing secret or a random one.
func resolveSecret(configured string) ([]byte, error) {
	if configured = strings.TrimSpace(configured); configured != "" {
		return []byte(configured), nil
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate session secret: %w", err)
	}
	log.Printf("TODOLISTS_SESSION_SECRET not set; using a random secret, sessions end on restart")
	return secret, nil
}

type expiredSessionPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

func purgeExpiredSessions(ctx context.Context, purger expiredSessionPurger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := purger.PurgeExpired(ctx)
			if err != nil {
				log.Printf("purge expired sessions: %v", err)
				continue
			}
			if removed > 0 {
				log.Printf("purged expired sessions count=%d", removed)
			}
		}
	}
}
