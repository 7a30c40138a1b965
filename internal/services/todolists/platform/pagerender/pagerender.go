// Package pagerender renders full pages and htmx fragments with the shared
// layout.
package pagerender

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/louisbranch/todolists/internal/services/todolists/i18n"
	"github.com/louisbranch/todolists/internal/services/todolists/platform/flash"
	"github.com/louisbranch/todolists/internal/services/todolists/platform/httpx"
	"github.com/louisbranch/todolists/internal/services/todolists/platform/requestmeta"
	"github.com/louisbranch/todolists/internal/services/todolists/templates"
)

// Page describes one page response.
type Page struct {
	Title      string
	StatusCode int
	Fragment   templ.Component
}

// Renderer writes pages for one scheme policy.
type Renderer struct {
	Policy requestmeta.SchemePolicy
}

// Localizer resolves the request localizer, persisting an explicit language
// choice.
func (Renderer) Localizer(w http.ResponseWriter, r *http.Request) (i18n.Localizer, string) {
	return i18n.ResolveLocalizer(w, r)
}

// WritePage renders page inside the layout, or alone for htmx requests. The
// pending flash notice is consumed on full-page renders.
func (rr Renderer) WritePage(w http.ResponseWriter, r *http.Request, page Page) error {
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = templ.NopComponent
	}
	loc, lang := i18n.ResolveLocalizer(w, r)
	ctx := httpx.RequestContext(r)

	var buf bytes.Buffer
	if httpx.IsHTMXRequest(r) {
		if err := fragment.Render(ctx, &buf); err != nil {
			return err
		}
	} else {
		pageContext := templates.PageContext{
			Lang:      lang,
			Loc:       loc,
			Languages: languageOptions(r, lang, loc),
		}
		toast := rr.flashToast(w, r, loc)
		layout := templates.Layout(page.Title, pageContext, toast)
		if err := layout.Render(templ.WithChildren(ctx, fragment), &buf); err != nil {
			return err
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}

func (rr Renderer) flashToast(w http.ResponseWriter, r *http.Request, loc i18n.Localizer) *templates.Toast {
	notice, ok := flash.ReadAndClear(w, r, rr.Policy)
	if !ok {
		return nil
	}
	message := strings.TrimSpace(loc.Sprintf(notice.Key))
	if message == "" {
		return nil
	}
	return &templates.Toast{Kind: string(notice.Kind), Message: message}
}

func languageOptions(r *http.Request, active string, loc i18n.Localizer) []templates.LanguageOption {
	path, query := "/", ""
	if r != nil && r.URL != nil {
		path, query = r.URL.Path, r.URL.RawQuery
	}
	supported := i18n.Supported()
	options := make([]templates.LanguageOption, 0, len(supported))
	for _, tag := range supported {
		options = append(options, templates.LanguageOption{
			Label:  loc.Sprintf(i18n.LanguageLabelKey(tag)),
			URL:    i18n.LanguageURL(path, query, tag.String()),
			Active: tag.String() == active,
		})
	}
	return options
}
