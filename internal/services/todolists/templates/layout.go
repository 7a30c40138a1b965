package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/louisbranch/todolists/internal/services/todolists/routepath"
)

// Toast is a one-time notice shown above the page content.
type Toast struct {
	Kind    string
	Message string
}

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Label  string
	URL    string
	Active bool
}

// PageContext carries request-scoped layout data.
type PageContext struct {
	Lang      string
	Loc       Localizer
	Languages []LanguageOption
}

// Layout renders the document shell around its children.
func Layout(title string, page PageContext, toast *Toast) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &htmlWriter{w: out}
		appTitle := T(page.Loc, "core.app.title")
		if strings.TrimSpace(title) != "" && title != appTitle {
			title = title + " | " + appTitle
		} else {
			title = appTitle
		}
		lang := page.Lang
		if lang == "" {
			lang = "en-US"
		}

		w.raw("<!doctype html><html")
		w.attr("lang", lang)
		w.raw("><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>")
		w.text(title)
		w.raw("</title><link rel=\"stylesheet\"")
		w.href(routepath.Stylesheet)
		w.raw("></head><body><header><h1><a")
		w.href(routepath.Lists)
		w.raw(">")
		w.text(appTitle)
		w.raw("</a></h1><nav><a")
		w.href(routepath.Lists)
		w.raw(">")
		w.text(T(page.Loc, "core.nav.all_lists"))
		w.raw("</a> <a")
		w.href(routepath.NewList)
		w.raw(">")
		w.text(T(page.Loc, "core.nav.new_list"))
		w.raw("</a> <a class=\"danger\"")
		w.href(routepath.ClearAll)
		w.raw(">")
		w.text(T(page.Loc, "core.nav.clear_all"))
		w.raw("</a></nav>")
		if len(page.Languages) > 0 {
			w.raw("<ul class=\"languages\"")
			w.attr("aria-label", T(page.Loc, "core.nav.language"))
			w.raw(">")
			for _, option := range page.Languages {
				if option.Active {
					w.raw("<li class=\"active\">")
					w.text(option.Label)
					w.raw("</li>")
					continue
				}
				w.raw("<li><a")
				w.href(option.URL)
				w.raw(">")
				w.text(option.Label)
				w.raw("</a></li>")
			}
			w.raw("</ul>")
		}
		w.raw("</header><main>")
		if toast != nil && strings.TrimSpace(toast.Message) != "" {
			w.raw("<div")
			w.attr("class", "flash "+toast.Kind)
			w.raw(" role=\"status\"><p>")
			w.text(toast.Message)
			w.raw("</p></div>")
		}
		w.render(ctx, templ.GetChildren(ctx))
		w.raw("</main></body></html>")
		return w.err
	})
}
