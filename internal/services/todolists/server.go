// Package todolists composes the todo-lists web server.
package todolists

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/todolists/internal/platform/timeouts"
	"github.com/louisbranch/todolists/internal/services/todolists/module"
	"github.com/louisbranch/todolists/internal/services/todolists/modules"
	"github.com/louisbranch/todolists/internal/services/todolists/platform/apperrors"
	"github.com/louisbranch/todolists/internal/services/todolists/platform/httpx"
	"github.com/louisbranch/todolists/internal/services/todolists/platform/observability"
	"github.com/louisbranch/todolists/internal/services/todolists/platform/requestmeta"
	"github.com/louisbranch/todolists/internal/services/todolists/routepath"
	"github.com/louisbranch/todolists/internal/services/todolists/session"
	"github.com/louisbranch/todolists/internal/services/todolists/storage"
	"github.com/louisbranch/todolists/internal/services/todolists/templates"
)

// Config defines the inputs for the todolists server.
type Config struct {
	HTTPAddr string
	// Store persists session state. The server closes it on Close.
	Store         storage.SessionStore
	SessionSecret []byte
	SessionTTL    time.Duration
	ResponseMode  httpx.ResponseMode
	// TrustForwardedProto honors X-Forwarded-Proto when deciding whether
	// cookies are marked Secure.
	TrustForwardedProto bool
	Logger              *log.Logger
}

// Server hosts the todolists HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	store      storage.SessionStore
}

var subStaticFS = func() (fs.FS, error) {
	return fs.Sub(templates.Static, "static")
}

// NewHandler builds the HTTP handler with every module and middleware wired.
func NewHandler(config Config) (http.Handler, error) {
	policy := requestmeta.SchemePolicy{TrustForwardedProto: config.TrustForwardedProto}
	sessions, err := session.NewManager(session.Config{
		Store:  config.Store,
		Secret: config.SessionSecret,
		TTL:    config.SessionTTL,
		Policy: policy,
	})
	if err != nil {
		return nil, fmt.Errorf("build session manager: %w", err)
	}
	mode := config.ResponseMode
	if mode == "" {
		mode = httpx.ResponseModeDetect
	}

	mux := http.NewServeMux()
	staticFS, err := subStaticFS()
	if err != nil {
		return nil, fmt.Errorf("resolve static assets: %w", err)
	}
	mux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(staticFS))))
	mux.Handle(routepath.Health, healthHandler(sessions))

	deps := modules.Dependencies{Sessions: sessions, ResponseMode: mode, Policy: policy}
	if err := mountModules(mux, modules.DefaultModules(deps)); err != nil {
		return nil, err
	}

	return httpx.Chain(mux,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		observability.Tracing(),
		observability.RequestLogger(config.Logger),
		httpx.RejectCrossOrigin(policy),
	), nil
}

func mountModules(mux *http.ServeMux, mods []module.Module) error {
	seen := make(map[string]string, len(mods))
	for _, m := range mods {
		mount, err := m.Mount()
		if err != nil {
			return fmt.Errorf("mount module %s: %w", m.ID(), err)
		}
		if mount.Handler == nil {
			return fmt.Errorf("mount module %s: handler is required", m.ID())
		}
		prefix := strings.TrimSpace(mount.Prefix)
		if prefix == "" {
			prefix = routepath.Root
		}
		if owner, ok := seen[prefix]; ok {
			return fmt.Errorf("mount module %s: prefix %q already mounted by %s", m.ID(), prefix, owner)
		}
		seen[prefix] = m.ID()
		mux.Handle(prefix, mount.Handler)
	}
	return nil
}

type pinger interface {
	Ping(ctx context.Context) error
}

func healthHandler(store pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			httpx.MethodNotAllowed(http.MethodGet + ", " + http.MethodHead)(w, r)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.StoreProbe)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			log.Printf("health probe failed err=%v", err)
			httpx.WriteError(w, apperrors.Wrap(apperrors.KindUnavailable, err))
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

// NewServer builds the server for config.
func NewServer(config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(config)
	if err != nil {
		return nil, fmt.Errorf("build handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		store: config.Store,
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight requests
// are drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("todolists server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("todolists listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases the session store.
func (s *Server) Close() {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		log.Printf("close session store: %v", err)
	}
}
