// Package module defines the contract feature modules use to mount routes.
package module

import "net/http"

// Mount describes where a module's handler is served.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module is a mountable feature.
type Module interface {
	ID() string
	Mount() (Mount, error)
}
