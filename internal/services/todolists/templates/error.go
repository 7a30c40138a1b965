package templates

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/louisbranch/todolists/internal/services/todolists/routepath"
)

// AppErrorPageTitle returns the page title for error pages.
func AppErrorPageTitle(loc Localizer) string {
	return T(loc, "core.error.title")
}

// AppErrorState renders the error page body.
func AppErrorState(statusCode int, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := &htmlWriter{w: out}
		message := T(loc, "core.error.internal")
		if statusCode == http.StatusNotFound {
			message = T(loc, "core.error.not_found")
		}
		w.raw("<section class=\"app-error\"><h2>")
		w.text(T(loc, "core.error.title"))
		w.raw("</h2><p>")
		w.text(message)
		w.raw("</p><a")
		w.href(routepath.Lists)
		w.raw(">")
		w.text(T(loc, "core.error.back"))
		w.raw("</a></section>")
		return w.err
	})
}
