// AngelaMos | 2026
// preference.go

package i18n

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/rossoverde/supporters/internal/config"
)

// Preferences resolves the request language and persists the visitor's
// choice in a long-lived cookie.
type Preferences struct {
	fallback Language
	cookie   string
	maxAge   int
	secure   bool
}

func NewPreferences(cfg config.I18nConfig, secure bool) *Preferences {
	return &Preferences{
		fallback: ParseOr(cfg.DefaultLanguage, English),
		cookie:   cfg.CookieName,
		maxAge:   cfg.CookieMaxAge,
		secure:   secure,
	}
}

// Resolve checks ?lang, then the preference cookie, then Accept-Language.
func (p *Preferences) Resolve(r *http.Request) Language {
	if l, ok := Parse(r.URL.Query().Get("lang")); ok {
		return l
	}

	if c, err := r.Cookie(p.cookie); err == nil {
		if l, ok := Parse(c.Value); ok {
			return l
		}
	}

	if l, ok := Negotiate(r.Header.Get("Accept-Language")); ok {
		return l
	}

	return p.fallback
}

func (p *Preferences) Persist(w http.ResponseWriter, l Language) {
	http.SetCookie(w, &http.Cookie{
		Name:     p.cookie,
		Value:    l.String(),
		Path:     "/",
		MaxAge:   p.maxAge,
		Secure:   p.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Middleware stores the resolved language in the request context and sets
// Content-Language. An explicit ?lang is remembered.
func (p *Preferences) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := p.Resolve(r)

		if explicit, ok := Parse(r.URL.Query().Get("lang")); ok {
			p.Persist(w, explicit)
		}

		w.Header().Set("Content-Language", lang.String())
		next.ServeHTTP(w, r.WithContext(WithLanguage(r.Context(), lang)))
	})
}

type switchRequest struct {
	Lang string `json:"lang"`
	Next string `json:"next"`
}

// Switch handles POST /language from a form or a JSON body. Forms are
// redirected back to next; JSON callers get 204.
func (p *Preferences) Switch(w http.ResponseWriter, r *http.Request) {
	var req switchRequest

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		req.Lang = r.PostForm.Get("lang")
		req.Next = r.PostForm.Get("next")
	}

	lang, ok := Parse(req.Lang)
	if !ok {
		http.Error(w, "lang must be one of: en fr ar", http.StatusBadRequest)
		return
	}

	p.Persist(w, lang)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	http.Redirect(w, r, SafeRedirect(req.Next), http.StatusSeeOther)
}

// SafeRedirect keeps redirects on this site: anything that is not a plain
// absolute path becomes "/". Browsers read a backslash as a slash, so any
// backslash, raw or escaped, is refused.
func SafeRedirect(next string) string {
	if !isLocalPath(next) {
		return "/"
	}
	if unescaped, err := url.PathUnescape(next); err != nil || !isLocalPath(unescaped) {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Host != "" || u.Scheme != "" {
		return "/"
	}
	return next
}

func isLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") &&
		!strings.HasPrefix(p, "//") &&
		!strings.ContainsAny(p, "\\\x00")
}
