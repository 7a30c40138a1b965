package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter accumulates the first write error so components read top-down.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (w *htmlWriter) raw(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

func (w *htmlWriter) text(s string) {
	w.raw(templ.EscapeString(s))
}

func (w *htmlWriter) attr(name, value string) {
	w.raw(" " + name + "=\"" + templ.EscapeString(value) + "\"")
}

func (w *htmlWriter) href(value string) {
	w.attr("href", string(templ.URL(value)))
}

func (w *htmlWriter) render(ctx context.Context, c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(ctx, w.w)
}
