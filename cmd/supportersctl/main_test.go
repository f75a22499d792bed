// AngelaMos | 2026
// main_test.go

package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rossoverde/supporters/internal/auth"
	"github.com/rossoverde/supporters/internal/core"
	"github.com/rossoverde/supporters/internal/profile"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseLine(t *testing.T) {
	id, qty, err := parseLine("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", id)
	assert.Equal(t, 1, qty)

	id, qty, err = parseLine("abc:3")
	require.NoError(t, err)
	assert.Equal(t, "abc", id)
	assert.Equal(t, 3, qty)

	_, _, err = parseLine("abc:0")
	assert.Error(t, err)

	_, _, err = parseLine("abc:x")
	assert.Error(t, err)
}

func TestLangPersists(t *testing.T) {
	store := filepath.Join(t.TempDir(), "client.json")

	out, err := execute(t, "--store", store, "lang", "set", "ar")
	require.NoError(t, err)
	assert.Equal(t, "ar (rtl)\n", out)

	out, err = execute(t, "--store", store, "lang", "get")
	require.NoError(t, err)
	assert.Equal(t, "ar (rtl)\n", out)

	_, err = execute(t, "--store", store, "lang", "set", "de")
	assert.Error(t, err)
}

func TestSignUpRejectsShortPasswordLocally(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		core.NoContent(w)
	}))
	defer srv.Close()

	store := filepath.Join(t.TempDir(), "client.json")
	_, err := execute(t, "--api", srv.URL, "--store", store,
		"signup", "--email", "fan@example.com", "--password", "abc")

	require.Error(t, err)
	assert.Equal(t, "Password must be at least 6 characters", err.Error())
	assert.Zero(t, hits)
}

func TestAdminCommandsRefuseMembers(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/auth/signin", func(w http.ResponseWriter, _ *http.Request) {
		core.OK(w, auth.SessionResponse{
			AccessToken:  "tok",
			RefreshToken: "refresh",
			User:         auth.SessionUser{ID: "u1", Email: "fan@example.com"},
		})
	})
	mux.HandleFunc("GET /v1/profile", func(w http.ResponseWriter, _ *http.Request) {
		core.OK(w, profile.Profile{ID: "u1", Email: "fan@example.com", Role: profile.RoleMember})
	})
	usersHit := false
	mux.HandleFunc("GET /v1/admin/users", func(w http.ResponseWriter, _ *http.Request) {
		usersHit = true
		core.OK(w, []profile.Profile{})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := filepath.Join(t.TempDir(), "client.json")
	_, err := execute(t, "--api", srv.URL, "--store", store,
		"signin", "--email", "fan@example.com", "--password", "correct-horse")
	require.NoError(t, err)

	_, err = execute(t, "--api", srv.URL, "--store", store, "admin", "users")
	require.Error(t, err)
	assert.Equal(t, "You do not have permission to access the admin panel", err.Error())
	assert.False(t, usersHit)
}
