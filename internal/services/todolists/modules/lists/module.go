// Package lists serves the list and todo pages.
package lists

import (
	"errors"
	"net/http"

	"github.com/louisbranch/todolists/internal/services/todolists/domain"
	"github.com/louisbranch/todolists/internal/services/todolists/module"
	"github.com/louisbranch/todolists/internal/services/todolists/platform/httpx"
	"github.com/louisbranch/todolists/internal/services/todolists/platform/requestmeta"
	"github.com/louisbranch/todolists/internal/services/todolists/routepath"
)

// Sessions loads and mutates the caller's list collection.
type Sessions interface {
	View(r *http.Request) (domain.Store, error)
	Update(w http.ResponseWriter, r *http.Request, mutate func(*domain.Store) error) (domain.Store, error)
}

// Option configures a Module.
type Option func(*Module)

// WithResponseMode sets how destructive mutations answer async clients.
func WithResponseMode(mode httpx.ResponseMode) Option {
	return func(m *Module) { m.mode = mode }
}

// WithSchemePolicy sets the scheme policy for flash cookies.
func WithSchemePolicy(policy requestmeta.SchemePolicy) Option {
	return func(m *Module) { m.policy = policy }
}

// Module provides the list routes.
type Module struct {
	sessions Sessions
	mode     httpx.ResponseMode
	policy   requestmeta.SchemePolicy
}

// New returns a lists module backed by sessions.
func New(sessions Sessions, opts ...Option) Module {
	m := Module{sessions: sessions, mode: httpx.ResponseModeDetect}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "lists" }

// Mount wires list route handlers at the root.
func (m Module) Mount() (module.Mount, error) {
	if m.sessions == nil {
		return module.Mount{}, errors.New("lists module requires sessions")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.sessions, m.mode, m.policy))
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
