// AngelaMos | 2026
// client_test.go

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rossoverde/supporters/internal/auth"
	"github.com/rossoverde/supporters/internal/core"
	"github.com/rossoverde/supporters/internal/guard"
	"github.com/rossoverde/supporters/internal/i18n"
	"github.com/rossoverde/supporters/internal/product"
	"github.com/rossoverde/supporters/internal/profile"
)

type fakeAPI struct {
	mu          sync.Mutex
	hits        map[string]int
	profiles    map[string]*profile.Profile
	products    []product.Product
	failProfile bool
	failSignOut bool
	languages   []string

	// holdProfile, when set, parks GET /v1/profile until it is closed.
	holdProfile    chan struct{}
	profileStarted chan struct{}
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		hits: map[string]int{},
		profiles: map[string]*profile.Profile{
			"tok-member": {ID: "u-member", Email: "fan@example.com", Role: profile.RoleMember},
			"tok-admin":  {ID: "u-admin", Email: "staff@example.com", Role: profile.RoleAdmin},
		},
	}
}

func (f *fakeAPI) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[key]
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if f.holdProfile != nil && r.Method == http.MethodGet && r.URL.Path == "/v1/profile" {
		f.profileStarted <- struct{}{}
		<-f.holdProfile
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.hits[r.Method+" "+r.URL.Path]++
	f.languages = append(f.languages, r.Header.Get("Accept-Language"))
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	switch r.Method + " " + r.URL.Path {
	case "POST /v1/auth/signin", "POST /v1/auth/signup":
		var req auth.SignInRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "correct-horse" {
			core.JSONError(w, core.UnauthorizedError("invalid email or password"))
			return
		}
		tok := "tok-member"
		if strings.HasPrefix(req.Email, "staff") {
			tok = "tok-admin"
		}
		core.OK(w, auth.SessionResponse{
			AccessToken:  tok,
			RefreshToken: "refresh-" + tok,
			ExpiresAt:    time.Now().Add(time.Hour),
			User:         auth.SessionUser{ID: f.profiles[tok].ID, Email: req.Email},
		})
	case "POST /v1/auth/signout":
		if f.failSignOut {
			core.InternalServerError(w, errors.New("boom"))
			return
		}
		core.NoContent(w)
	case "GET /v1/profile":
		if f.failProfile {
			core.JSONError(w, core.UnavailableError("profile could not be loaded"))
			return
		}
		p, ok := f.profiles[token]
		if !ok {
			core.NotFound(w, "profile")
			return
		}
		core.OK(w, p)
	case "PUT /v1/profile":
		var req profile.UpdateRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		p := f.profiles[token]
		if req.FullName != nil {
			p.FullName = req.FullName
		}
		core.OK(w, p)
	case "GET /v1/products":
		core.OK(w, f.products)
	case "POST /v1/admin/products":
		if token != "tok-admin" {
			core.Forbidden(w, "You do not have permission to access the admin panel")
			return
		}
		var p product.Product
		_ = json.NewDecoder(r.Body).Decode(&p)
		p.ID = "p-new"
		f.products = append(f.products, p)
		core.Created(w, p)
	default:
		http.NotFound(w, r)
	}
}

func openSDK(t *testing.T, api *fakeAPI, store Storage) *SDK {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	sdk, err := Open(srv.URL, store)
	require.NoError(t, err)
	return sdk
}

func TestSignUpShortPasswordNeverCallsServer(t *testing.T) {
	api := newFakeAPI()
	sdk := openSDK(t, api, NewMemoryStorage())

	err := sdk.Sessions.SignUp(context.Background(), "fan@example.com", "abcde", "abcde", "en")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
	assert.Zero(t, api.count("POST /v1/auth/signup"))
	assert.Nil(t, sdk.Sessions.Session())
}

func TestSignUpMismatchNeverCallsServer(t *testing.T) {
	api := newFakeAPI()
	sdk := openSDK(t, api, NewMemoryStorage())

	err := sdk.Sessions.SignUp(context.Background(), "fan@example.com", "correct-horse", "correct-hors", "en")
	assert.ErrorIs(t, err, ErrPasswordMismatch)
	assert.Zero(t, api.count("POST /v1/auth/signup"))
}

func TestSessionPersistsAcrossRestarts(t *testing.T) {
	api := newFakeAPI()
	store := NewFileStorage(filepath.Join(t.TempDir(), "client.json"))
	sdk := openSDK(t, api, store)

	var seen []*Session
	sdk.Sessions.Subscribe(func(s *Session) { seen = append(seen, s) })

	require.NoError(t, sdk.Sessions.SignIn(context.Background(), "fan@example.com", "correct-horse"))
	require.Len(t, seen, 1)
	assert.Equal(t, "u-member", seen[0].User.ID)

	restored := openSDK(t, api, NewFileStorage(store.path))
	require.NotNil(t, restored.Sessions.Session())
	assert.Equal(t, "tok-member", restored.Sessions.AccessToken())
}

func TestSignInFailureKeepsNoSession(t *testing.T) {
	sdk := openSDK(t, newFakeAPI(), NewMemoryStorage())

	err := sdk.Sessions.SignIn(context.Background(), "fan@example.com", "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnauthorized)
	assert.Equal(t, "invalid email or password", Message(err))
	assert.Nil(t, sdk.Sessions.Session())
}

func TestSignOutClearsLocalSessionEvenWhenServerFails(t *testing.T) {
	api := newFakeAPI()
	api.failSignOut = true
	store := NewMemoryStorage()
	sdk := openSDK(t, api, store)

	require.NoError(t, sdk.Sessions.SignIn(context.Background(), "fan@example.com", "correct-horse"))
	require.Error(t, sdk.Sessions.SignOut(context.Background()))

	assert.Nil(t, sdk.Sessions.Session())
	_, ok, _ := store.Load(SessionKey)
	assert.False(t, ok)
}

func TestProfileUpdateReplacesCache(t *testing.T) {
	api := newFakeAPI()
	sdk := openSDK(t, api, NewMemoryStorage())
	ctx := context.Background()

	require.NoError(t, sdk.Sessions.SignIn(ctx, "fan@example.com", "correct-horse"))
	_, err := sdk.Profiles.Load(ctx)
	require.NoError(t, err)

	name := "Sara Benali"
	_, err = sdk.Profiles.Update(ctx, profile.UpdateRequest{FullName: &name})
	require.NoError(t, err)

	require.NotNil(t, sdk.Profiles.Profile())
	assert.Equal(t, "Sara Benali", *sdk.Profiles.Profile().FullName)
	assert.Equal(t, 1, api.count("GET /v1/profile"))
}

func TestProfileResetOnSignOut(t *testing.T) {
	sdk := openSDK(t, newFakeAPI(), NewMemoryStorage())
	ctx := context.Background()

	require.NoError(t, sdk.Sessions.SignIn(ctx, "fan@example.com", "correct-horse"))
	_, err := sdk.Profiles.Load(ctx)
	require.NoError(t, err)

	require.NoError(t, sdk.Sessions.SignOut(ctx))
	assert.Nil(t, sdk.Profiles.Profile())
}

func TestProfileLoadDropsAnswerForPreviousUser(t *testing.T) {
	api := newFakeAPI()
	api.holdProfile = make(chan struct{})
	api.profileStarted = make(chan struct{}, 1)
	sdk := openSDK(t, api, NewMemoryStorage())
	ctx := context.Background()

	require.NoError(t, sdk.Sessions.SignIn(ctx, "staff@example.com", "correct-horse"))

	done := make(chan error, 1)
	go func() {
		_, err := sdk.Profiles.Load(ctx)
		done <- err
	}()
	<-api.profileStarted

	require.NoError(t, sdk.Sessions.SignIn(ctx, "fan@example.com", "correct-horse"))
	close(api.holdProfile)

	assert.ErrorIs(t, <-done, ErrSessionChanged)
	assert.Nil(t, sdk.Profiles.Profile())
	assert.False(t, sdk.Profiles.Loading())
	assert.Equal(t, guard.Checking, sdk.AdminGate().State())
}

func TestGateDeliversStatesInDecisionOrder(t *testing.T) {
	api := newFakeAPI()
	sdk := openSDK(t, api, NewMemoryStorage())
	ctx := context.Background()

	gate := sdk.AdminGate()
	var states []guard.State
	gate.Watch(func(s guard.State) {
		if s == guard.Checking {
			gate.Resolve(ctx)
		}
		states = append(states, s)
	})

	require.NoError(t, sdk.Sessions.SignIn(ctx, "staff@example.com", "correct-horse"))

	assert.Equal(t, []guard.State{guard.Checking, guard.Authorized}, states)
	assert.Equal(t, guard.Authorized, gate.State())
}

func TestAdminGate(t *testing.T) {
	ctx := context.Background()

	t.Run("no session", func(t *testing.T) {
		sdk := openSDK(t, newFakeAPI(), NewMemoryStorage())
		assert.Equal(t, guard.Unauthenticated, sdk.AdminGate().Resolve(ctx))
	})

	t.Run("member", func(t *testing.T) {
		api := newFakeAPI()
		sdk := openSDK(t, api, NewMemoryStorage())
		require.NoError(t, sdk.Sessions.SignIn(ctx, "fan@example.com", "correct-horse"))

		gate := sdk.AdminGate()
		assert.Equal(t, guard.Checking, gate.State())
		assert.Equal(t, guard.Unauthorized, gate.Resolve(ctx))
		assert.Equal(t, guard.Authorized, sdk.MemberGate().State())
	})

	t.Run("admin", func(t *testing.T) {
		sdk := openSDK(t, newFakeAPI(), NewMemoryStorage())
		require.NoError(t, sdk.Sessions.SignIn(ctx, "staff@example.com", "correct-horse"))

		gate := sdk.AdminGate()
		var states []guard.State
		gate.Watch(func(s guard.State) { states = append(states, s) })

		assert.Equal(t, guard.Authorized, gate.Resolve(ctx))
		assert.Equal(t, []guard.State{guard.Authorized}, states)
	})

	t.Run("profile failure", func(t *testing.T) {
		api := newFakeAPI()
		api.failProfile = true
		sdk := openSDK(t, api, NewMemoryStorage())
		require.NoError(t, sdk.Sessions.SignIn(ctx, "staff@example.com", "correct-horse"))

		assert.Equal(t, guard.Failed, sdk.AdminGate().Resolve(ctx))
		assert.ErrorIs(t, sdk.Profiles.Err(), core.ErrUnavailable)
	})
}

func TestResourceRefetchesAfterWrite(t *testing.T) {
	api := newFakeAPI()
	api.products = []product.Product{{ID: "p1", NameEN: "Scarf"}}
	sdk := openSDK(t, api, NewMemoryStorage())
	ctx := context.Background()

	products := sdk.Products()
	require.NoError(t, products.Fetch(ctx))
	assert.Len(t, products.Data(), 1)

	res := products.Create(ctx, product.CreateRequest{NameEN: "Cap"})
	assert.False(t, res.OK())
	assert.Equal(t, "You do not have permission to access the admin panel", res.Error)
	assert.Nil(t, res.Data)
	assert.Equal(t, 1, api.count("GET /v1/products"))

	require.NoError(t, sdk.Sessions.SignIn(ctx, "staff@example.com", "correct-horse"))
	res = products.Create(ctx, product.CreateRequest{NameEN: "Cap"})
	require.True(t, res.OK())
	assert.Equal(t, "p-new", res.Data.ID)
	assert.Equal(t, 2, api.count("GET /v1/products"))
	assert.Len(t, products.Data(), 2)
	assert.False(t, products.Loading())
}

func TestPreferences(t *testing.T) {
	api := newFakeAPI()
	store := NewMemoryStorage()
	sdk := openSDK(t, api, store)

	assert.Equal(t, i18n.English, sdk.Preferences.Language())
	assert.Equal(t, i18n.LTR, sdk.Preferences.Dir())

	l, err := sdk.Preferences.SetLanguage("ar")
	require.NoError(t, err)
	assert.Equal(t, i18n.Arabic, l)
	assert.Equal(t, i18n.RTL, sdk.Preferences.Dir())

	stored, ok, _ := store.Load(LanguageKey)
	require.True(t, ok)
	assert.Equal(t, "ar", stored)

	_, err = sdk.Preferences.SetLanguage("de")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Equal(t, i18n.Arabic, sdk.Preferences.Language())

	_ = sdk.Products().Fetch(context.Background())
	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Equal(t, "ar", api.languages[len(api.languages)-1])
}
