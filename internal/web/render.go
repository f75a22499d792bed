// AngelaMos | 2026
// render.go

package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/rossoverde/supporters/internal/guard"
	"github.com/rossoverde/supporters/internal/i18n"
	"github.com/rossoverde/supporters/internal/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"home",
	"about",
	"membership",
	"store",
	"gallery",
	"news",
	"article",
	"auth",
	"member",
	"admin",
	"error",
}

var funcs = template.FuncMap{
	"t": func(lang i18n.Language, key string) string {
		return i18n.T(lang, key)
	},
}

func parseTemplates() (map[string]*template.Template, error) {
	base, err := template.New("layout").Funcs(funcs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	out := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout: %w", err)
		}
		t, err := clone.ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}

// View is what every page template receives.
type View struct {
	Lang      i18n.Language
	Dir       i18n.Direction
	Title     string
	Path      string
	SignedIn  bool
	Admin     bool
	CSRF      template.HTML
	Languages []i18n.Language
	Data      any
}

func (h *Handler) view(r *http.Request, title string, data any) View {
	lang := i18n.FromContext(r.Context())
	p := guard.ProfileFrom(r.Context())

	return View{
		Lang:      lang,
		Dir:       lang.Dir(),
		Title:     title,
		Path:      r.URL.Path,
		SignedIn:  middleware.IsAuthenticated(r.Context()),
		Admin:     p != nil && p.IsAdmin(),
		CSRF:      csrf.TemplateField(r),
		Languages: i18n.Supported,
		Data:      data,
	}
}

func (h *Handler) render(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	name, title string,
	data any,
) {
	t, ok := h.templates[name]
	if !ok {
		slog.ErrorContext(r.Context(), "unknown page template", "template", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", h.view(r, title, data)); err != nil {
		slog.ErrorContext(r.Context(), "render page",
			"template", name,
			"error", err,
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderPage draws the guard's unauthorized and failure pages.
func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, page guard.Page) {
	h.render(w, r, page.Status, "error", page.Title, page)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	lang := i18n.FromContext(r.Context())
	h.renderPage(w, r, guard.Page{
		Status:  http.StatusNotFound,
		Title:   i18n.T(lang, "common.not_found"),
		Message: i18n.T(lang, "common.not_found"),
	})
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "page data unavailable",
		"path", r.URL.Path,
		"error", err,
	)

	lang := i18n.FromContext(r.Context())
	h.renderPage(w, r, guard.Page{
		Status:  http.StatusServiceUnavailable,
		Title:   i18n.T(lang, "common.error"),
		Message: i18n.T(lang, "common.error"),
		Retry:   r.URL.RequestURI(),
	})
}
