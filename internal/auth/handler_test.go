// AngelaMos | 2026
// handler_test.go

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rossoverde/supporters/internal/core"
	"github.com/rossoverde/supporters/internal/middleware"
)

func newTestRouter(t *testing.T) (http.Handler, *fixture) {
	t.Helper()

	f := newFixture(t)
	h := NewHandler(f.svc, CookieConfig{Name: "rossoverde-session"})

	r := chi.NewRouter()
	h.RegisterRoutes(r, middleware.Authenticator(f.svc, "rossoverde-session"))
	return r, f
}

func do(t *testing.T, h http.Handler, method, path, body string, mutate ...func(*http.Request)) (*httptest.ResponseRecorder, core.Response) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, m := range mutate {
		m(req)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp core.Response
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestSignUpHandlerShortPassword(t *testing.T) {
	r, f := newTestRouter(t)

	rec, resp := do(t, r, http.MethodPost, "/auth/signup",
		`{"email":"fan@example.com","password":"12345","confirm_password":"12345"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "PASSWORD_TOO_SHORT", resp.Error.Code)
	assert.Equal(t, 0, f.accounts.creates)
}

func TestSignUpHandlerDuplicate(t *testing.T) {
	r, _ := newTestRouter(t)
	body := `{"email":"fan@example.com","password":"secret1"}`

	rec, _ := do(t, r, http.MethodPost, "/auth/signup", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, resp := do(t, r, http.MethodPost, "/auth/signup", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Message, "already registered")
}

func TestSignInSetsCookieUsableForSession(t *testing.T) {
	r, _ := newTestRouter(t)

	rec, _ := do(t, r, http.MethodPost, "/auth/signup",
		`{"email":"fan@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, resp := do(t, r, http.MethodPost, "/auth/signin",
		`{"email":"fan@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "rossoverde-session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	rec, resp = do(t, r, http.MethodGet, "/auth/session", "", func(req *http.Request) {
		req.AddCookie(cookies[0])
	})
	require.Equal(t, http.StatusOK, rec.Code)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	user, ok := data["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "fan@example.com", user["email"])
}

func TestSignInInvalidCredentials(t *testing.T) {
	r, _ := newTestRouter(t)

	rec, resp := do(t, r, http.MethodPost, "/auth/signin",
		`{"email":"nobody@example.com","password":"secret1"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "invalid email or password", resp.Error.Message)
}

func TestSignOutClearsCookieAndRevokes(t *testing.T) {
	r, _ := newTestRouter(t)

	rec, _ := do(t, r, http.MethodPost, "/auth/signup",
		`{"email":"fan@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	cookie := rec.Result().Cookies()[0]

	withCookie := func(req *http.Request) { req.AddCookie(cookie) }

	rec, _ = do(t, r, http.MethodPost, "/auth/signout", "", withCookie)
	require.Equal(t, http.StatusNoContent, rec.Code)
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)

	rec, _ = do(t, r, http.MethodGet, "/auth/session", "", withCookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
