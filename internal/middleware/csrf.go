// AngelaMos | 2026
// csrf.go

package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"

	"github.com/rossoverde/supporters/internal/config"
)

// CSRF protects the server-rendered forms. JSON requests carry a bearer
// token or are refused by the JSON handlers, so they pass straight through.
func CSRF(cfg config.WebConfig) (func(http.Handler) http.Handler, error) {
	key, err := csrfKey(cfg.CSRFKey)
	if err != nil {
		return nil, err
	}

	protect := csrf.Protect(
		key,
		csrf.Secure(cfg.SecureCookies),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.TrustedOrigins(cfg.TrustedOrigins),
	)

	return func(next http.Handler) http.Handler {
		protected := protect(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
				next.ServeHTTP(w, r)
				return
			}
			if !cfg.SecureCookies {
				r = csrf.PlaintextHTTPRequest(r)
			}
			protected.ServeHTTP(w, r)
		})
	}, nil
}

func csrfKey(hexKey string) ([]byte, error) {
	if hexKey != "" {
		key, err := hex.DecodeString(hexKey)
		if err != nil || len(key) != 32 {
			return nil, fmt.Errorf("csrf key must be 64 hex characters")
		}
		return key, nil
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate csrf key: %w", err)
	}
	slog.Warn("CSRF_KEY not set, using a per-process key")
	return key, nil
}
