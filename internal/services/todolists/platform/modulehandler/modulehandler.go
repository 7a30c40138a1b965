// Package modulehandler provides a composable base for module handlers.
//
// Modules share localization, page rendering, flash notices and error pages.
// Handlers embed Base rather than repeating that scaffold.
package modulehandler

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/louisbranch/todolists/internal/services/todolists/platform/flash"
	"github.com/louisbranch/todolists/internal/services/todolists/platform/pagerender"
	"github.com/louisbranch/todolists/internal/services/todolists/platform/requestmeta"
	"github.com/louisbranch/todolists/internal/services/todolists/platform/weberror"
	"github.com/louisbranch/todolists/internal/services/todolists/templates"
)

// Base carries the renderer shared by module handlers.
type Base struct {
	renderer pagerender.Renderer
}

// NewBase builds a handler base for policy.
func NewBase(policy requestmeta.SchemePolicy) Base {
	return Base{renderer: pagerender.Renderer{Policy: policy}}
}

// PageLocalizer resolves a localizer and language tag from the request.
func (b Base) PageLocalizer(w http.ResponseWriter, r *http.Request) (templates.Localizer, string) {
	return b.renderer.Localizer(w, r)
}

// WriteError renders a localized module error response.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteModuleError(w, r, b.renderer, err)
}

// WriteNotFound renders the 404 page.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, b.renderer, http.StatusNotFound)
}

// WriteFlash stores notice for the next full-page render.
func (b Base) WriteFlash(w http.ResponseWriter, r *http.Request, notice flash.Notice) {
	flash.Write(w, r, notice, b.renderer.Policy)
}

// WritePage renders a module page (htmx-aware) with the given title and
// content fragment.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, title string, statusCode int, fragment templ.Component) {
	if err := b.renderer.WritePage(w, r, pagerender.Page{
		Title:      title,
		StatusCode: statusCode,
		Fragment:   fragment,
	}); err != nil {
		b.WriteError(w, r, err)
	}
}
