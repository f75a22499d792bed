// AngelaMos | 2026
// middleware_test.go

package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/csrf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rossoverde/supporters/internal/config"
	"github.com/rossoverde/supporters/internal/core"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestKeyByIPAndEndpoint(t *testing.T) {
	r := httptest.NewRequest(
		http.MethodGet,
		"/v1/orders/0b5e7f4a-3c2d-4e1f-9a8b-7c6d5e4f3a2b/items/42",
		nil,
	)
	r.RemoteAddr = "203.0.113.9:51000"

	assert.Equal(t,
		"ratelimit:ip:203.0.113.9:endpoint:/v1/orders/{id}/items/{id}",
		KeyByIPAndEndpoint(r),
	)

	r.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.2")
	assert.Equal(t, "ratelimit:ip:10.0.0.2", KeyByIP(r))
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders(true)(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestCORS(t *testing.T) {
	h := CORS(config.CORSConfig{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	})(okHandler)

	r := httptest.NewRequest(http.MethodOptions, "/v1/tiers", nil)
	r.Header.Set("Origin", "http://localhost:3000")
	r.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	r = httptest.NewRequest(http.MethodOptions, "/v1/tiers", nil)
	r.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

type stubVerifier struct {
	claims *AccessTokenClaims
	err    error
}

func (s stubVerifier) VerifyAccessToken(context.Context, string) (*AccessTokenClaims, error) {
	return s.claims, s.err
}

func TestAuthenticator(t *testing.T) {
	claims := &AccessTokenClaims{UserID: "u1", Email: "fan@example.com", ExpiresAt: time.Now().Add(time.Hour)}

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	t.Run("bearer header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
		r.Header.Set("Authorization", "Bearer tok")
		rec := httptest.NewRecorder()
		Authenticator(stubVerifier{claims: claims}, "session")(next).ServeHTTP(rec, r)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u1", seen)
	})

	t.Run("session cookie", func(t *testing.T) {
		seen = ""
		r := httptest.NewRequest(http.MethodGet, "/member", nil)
		r.AddCookie(&http.Cookie{Name: "session", Value: "tok"})
		rec := httptest.NewRecorder()
		Authenticator(stubVerifier{claims: claims}, "session")(next).ServeHTTP(rec, r)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u1", seen)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Authenticator(stubVerifier{claims: claims}, "session")(next).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/profile", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("optional auth ignores bad tokens", func(t *testing.T) {
		seen = "stale"
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer bad")
		rec := httptest.NewRecorder()
		OptionalAuth(stubVerifier{err: core.ErrTokenInvalid}, "session")(next).ServeHTTP(rec, r)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, seen)
	})
}

func TestCSRF(t *testing.T) {
	protect, err := CSRF(config.WebConfig{
		CSRFKey:        strings.Repeat("ab", 32),
		TrustedOrigins: []string{"localhost:8080"},
	})
	require.NoError(t, err)

	h := protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = io.WriteString(w, csrf.Token(r))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("form without token is refused", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/auth/signin", strings.NewReader("email=a"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("json passes through", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/language", strings.NewReader(`{"lang":"fr"}`))
		r.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("form with token is accepted", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		token := rec.Body.String()
		require.NotEmpty(t, token)

		form := url.Values{"gorilla.csrf.Token": {token}, "email": {"a"}}
		r := httptest.NewRequest(http.MethodPost, "/auth/signin", strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		for _, c := range rec.Result().Cookies() {
			r.AddCookie(c)
		}
		post := httptest.NewRecorder()
		h.ServeHTTP(post, r)
		assert.Equal(t, http.StatusOK, post.Code)
	})
}

func TestCSRFRejectsBadKey(t *testing.T) {
	_, err := CSRF(config.WebConfig{CSRFKey: "not-hex"})
	assert.EqualError(t, err, "csrf key must be 64 hex characters")
}
