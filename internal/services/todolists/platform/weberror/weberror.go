// Package weberror renders error pages for failed requests.
package weberror

import (
	"log"
	"net/http"

	"github.com/louisbranch/todolists/internal/services/todolists/platform/apperrors"
	"github.com/louisbranch/todolists/internal/services/todolists/platform/pagerender"
	"github.com/louisbranch/todolists/internal/services/todolists/templates"
)

// WriteAppError renders the error page for statusCode. Statuses other than
// 404 render as 500.
func WriteAppError(w http.ResponseWriter, r *http.Request, renderer pagerender.Renderer, statusCode int) {
	if statusCode != http.StatusNotFound {
		statusCode = http.StatusInternalServerError
	}
	loc, _ := renderer.Localizer(w, r)
	page := pagerender.Page{
		Title:      templates.AppErrorPageTitle(loc),
		StatusCode: statusCode,
		Fragment:   templates.AppErrorState(statusCode, loc),
	}
	if err := renderer.WritePage(w, r, page); err != nil {
		http.Error(w, http.StatusText(statusCode), statusCode)
	}
}

// WriteModuleError logs err and renders the page for its mapped status.
func WriteModuleError(w http.ResponseWriter, r *http.Request, renderer pagerender.Renderer, err error) {
	statusCode := apperrors.HTTPStatus(err)
	log.Printf("request failed method=%s path=%s status=%d request_id=%s err=%v",
		r.Method, r.URL.Path, statusCode, r.Header.Get("X-Request-ID"), err)
	WriteAppError(w, r, renderer, statusCode)
}
