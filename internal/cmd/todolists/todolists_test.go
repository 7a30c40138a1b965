package todolists

import (
	"context"
	"flag"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/louisbranch/todolists/internal/services/todolists/storage/memory"
	"github.com/louisbranch/todolists/internal/services/todolists/storage/sqlite"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("todolists", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "localhost:4567" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "localhost:4567")
	}
	if cfg.SessionBackend != "memory" {
		t.Fatalf("SessionBackend = %q, want %q", cfg.SessionBackend, "memory")
	}
	if cfg.SessionTTL != 720*time.Hour {
		t.Fatalf("SessionTTL = %v, want %v", cfg.SessionTTL, 720*time.Hour)
	}
	if cfg.ResponseMode != "detect" {
		t.Fatalf("ResponseMode = %q, want %q", cfg.ResponseMode, "detect")
	}
	if cfg.Telemetry.SampleRatio != 1 {
		t.Fatalf("SampleRatio = %v, want 1", cfg.Telemetry.SampleRatio)
	}
}

func TestParseConfigEnvThenFlags(t *testing.T) {
	t.Setenv("TODOLISTS_HTTP_ADDR", "0.0.0.0:9000")
	t.Setenv("TODOLISTS_SESSION_BACKEND", "sqlite")
	t.Setenv("TODOLISTS_TRUST_FORWARDED_PROTO", "true")

	fs := flag.NewFlagSet("todolists", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-http-addr", "127.0.0.1:9001", "-response-mode", "redirect"})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9001" {
		t.Fatalf("HTTPAddr = %q, want flag value", cfg.HTTPAddr)
	}
	if cfg.SessionBackend != "sqlite" {
		t.Fatalf("SessionBackend = %q, want env value", cfg.SessionBackend)
	}
	if !cfg.TrustForwardedProto {
		t.Fatal("TrustForwardedProto = false, want true")
	}
	if cfg.ResponseMode != "redirect" {
		t.Fatalf("ResponseMode = %q, want %q", cfg.ResponseMode, "redirect")
	}
}

func TestParseConfigRejectsBadDuration(t *testing.T) {
	t.Setenv("TODOLISTS_SESSION_TTL", "soon")
	if _, err := ParseConfig(flag.NewFlagSet("todolists", flag.ContinueOnError), nil); err == nil {
		t.Fatal("expected error for bad duration")
	}
}

func TestOpenStoreSelectsBackend(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, err := openStore(ctx, Config{SessionBackend: "memory"})
	if err != nil {
		t.Fatalf("openStore(memory) error = %v", err)
	}
	if _, ok := store.(*memory.Store); !ok {
		t.Fatalf("store = %T, want *memory.Store", store)
	}

	store, err = openStore(ctx, Config{SessionBackend: "SQLite", SQLitePath: filepath.Join(t.TempDir(), "s.db")})
	if err != nil {
		t.Fatalf("openStore(sqlite) error = %v", err)
	}
	defer store.Close()
	if _, ok := store.(*sqlite.Store); !ok {
		t.Fatalf("store = %T, want *sqlite.Store", store)
	}
	if _, ok := store.(expiredSessionPurger); !ok {
		t.Fatal("sqlite store should purge expired sessions")
	}

	if _, err := openStore(ctx, Config{SessionBackend: "redis"}); err == nil {
		t.Fatal("expected error for redis without url")
	}
	if _, err := openStore(ctx, Config{SessionBackend: "etcd"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestResolveSecret(t *testing.T) {
	t.Parallel()

	got, err := resolveSecret("  configured-secret-value  ")
	if err != nil || string(got) != "configured-secret-value" {
		t.Fatalf("resolveSecret() = %q, %v", got, err)
	}
	first, err := resolveSecret("")
	if err != nil {
		t.Fatalf("resolveSecret(\"\") error = %v", err)
	}
	second, _ := resolveSecret("")
	if len(first) != 32 || string(first) == string(second) {
		t.Fatal("expected distinct 32-byte random secrets")
	}
}

func TestRunRejectsUnknownResponseMode(t *testing.T) {
	t.Parallel()

	if err := Run(context.Background(), Config{ResponseMode: "sometimes"}); err == nil {
		t.Fatal("expected response mode error")
	}
}

type countingPurger struct {
	calls atomic.Int32
}

func (p *countingPurger) PurgeExpired(context.Context) (int64, error) {
	p.calls.Add(1)
	return 1, nil
}

func TestPurgeExpiredSessionsStopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	purger := &countingPurger{}
	done := make(chan struct{})
	go func() {
		purgeExpiredSessions(ctx, purger, time.Millisecond)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for purger.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("purge never ran")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("purge loop did not stop")
	}
}
