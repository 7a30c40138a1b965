// Package modules lists the feature modules mounted by the todolists server.
package modules

import (
	"github.com/louisbranch/todolists/internal/services/todolists/module"
	"github.com/louisbranch/todolists/internal/services/todolists/modules/lists"
	"github.com/louisbranch/todolists/internal/services/todolists/platform/httpx"
	"github.com/louisbranch/todolists/internal/services/todolists/platform/requestmeta"
)

// Dependencies carries what modules need from the server.
type Dependencies struct {
	Sessions     lists.Sessions
	ResponseMode httpx.ResponseMode
	Policy       requestmeta.SchemePolicy
}

// DefaultModules returns the stable modules.
func DefaultModules(deps Dependencies) []module.Module {
	return []module.Module{
		lists.New(deps.Sessions,
			lists.WithResponseMode(deps.ResponseMode),
			lists.WithSchemePolicy(deps.Policy),
		),
	}
}
