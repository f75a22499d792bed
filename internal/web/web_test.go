// AngelaMos | 2026
// web_test.go

package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rossoverde/supporters/internal/auth"
	"github.com/rossoverde/supporters/internal/charter"
	"github.com/rossoverde/supporters/internal/cms"
	"github.com/rossoverde/supporters/internal/config"
	"github.com/rossoverde/supporters/internal/core"
	"github.com/rossoverde/supporters/internal/gallery"
	"github.com/rossoverde/supporters/internal/guard"
	"github.com/rossoverde/supporters/internal/i18n"
	"github.com/rossoverde/supporters/internal/middleware"
	"github.com/rossoverde/supporters/internal/news"
	"github.com/rossoverde/supporters/internal/product"
	"github.com/rossoverde/supporters/internal/profile"
	"github.com/rossoverde/supporters/internal/tier"
)

const testUserHeader = "X-Test-User"

type catalog struct{}

func (catalog) ListActive(context.Context) ([]tier.Tier, error) {
	return []tier.Tier{
		{ID: "t1", NameEN: "Ultra", NameFR: "Ultra", NameAR: "ألترا", Price: 500, Currency: "MAD"},
	}, nil
}

type products struct{}

func (products) ListActive(context.Context) ([]product.Product, error) {
	return []product.Product{
		{ID: "p1", NameEN: "Home shirt", NameFR: "Maillot domicile", Price: 300, Currency: "MAD", StockQuantity: 4},
	}, nil
}

type posts struct{}

func (posts) ListPublished(context.Context) ([]news.Post, error) {
	return []news.Post{{ID: "n1", TitleEN: "Derby day", PublishedAt: time.Now()}}, nil
}

func (posts) Get(_ context.Context, id string, lang i18n.Language) (*news.Rendered, error) {
	if id != "n1" {
		return nil, core.ErrNotFound
	}
	p := &news.Post{ID: "n1", TitleEN: "Derby day", ReadTime: 2, PublishedAt: time.Now()}
	return &news.Rendered{Post: p, Language: lang, HTML: "<p>Full story</p>"}, nil
}

type photos struct{}

func (photos) List(context.Context) ([]gallery.Item, error) {
	return []gallery.Item{{ID: "g1", TitleEN: "Tifo", MediaURL: "/media/tifo.jpg", MediaType: gallery.MediaImage}}, nil
}

type pages struct{}

func (pages) Get(context.Context, string) (*cms.Content, error) {
	return nil, core.ErrNotFound
}

type charters struct{}

func (charters) Active(context.Context) (*charter.Charter, error) {
	return &charter.Charter{ID: "c1", TitleEN: "Supporter charter", ContentEN: "Respect the club"}, nil
}

type fakeSessions struct {
	mu      sync.Mutex
	signUps int
	signIns int
}

func (f *fakeSessions) SignIn(_ context.Context, req auth.SignInRequest, _, _ string) (*auth.SessionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signIns++
	if req.Password != "correct-horse" {
		return nil, auth.ErrInvalidCredentials
	}
	return &auth.SessionResponse{AccessToken: "access", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (f *fakeSessions) SignUp(context.Context, auth.SignUpRequest, string, string) (*auth.SessionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signUps++
	return &auth.SessionResponse{AccessToken: "access", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (f *fakeSessions) SignOut(context.Context, *middleware.AccessTokenClaims, string) error {
	return nil
}

type profiles struct {
	mu    sync.Mutex
	byID  map[string]*profile.Profile
	err   error
	loads int
}

func (p *profiles) Load(_ context.Context, userID string) (*profile.Profile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loads++
	if p.err != nil {
		return nil, p.err
	}
	if pr, ok := p.byID[userID]; ok {
		return pr, nil
	}
	return nil, core.ErrNotFound
}

type fixture struct {
	router   http.Handler
	sessions *fakeSessions
	profiles *profiles
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	name := "Sara"
	f := &fixture{
		sessions: &fakeSessions{},
		profiles: &profiles{byID: map[string]*profile.Profile{
			"member-1": {ID: "member-1", Email: "fan@example.com", FullName: &name, Role: profile.RoleMember},
			"admin-1":  {ID: "admin-1", Email: "staff@example.com", Role: profile.RoleAdmin},
		}},
	}

	prefs := i18n.NewPreferences(config.I18nConfig{
		DefaultLanguage: "en",
		CookieName:      "rossoverde-language",
		CookieMaxAge:    3600,
	}, false)

	h, err := NewHandler(Config{
		Tiers:       catalog{},
		Products:    products{},
		News:        posts{},
		Gallery:     photos{},
		Content:     pages{},
		Charter:     charters{},
		Sessions:    f.sessions,
		Guard:       guard.New(f.profiles, nil),
		Preferences: prefs,
		Cookie:      auth.CookieConfig{Name: "rossoverde-session"},
	})
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(prefs.Middleware)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if id := req.Header.Get(testUserHeader); id != "" {
				req = req.WithContext(middleware.WithClaims(req.Context(), &middleware.AccessTokenClaims{UserID: id}))
			}
			next.ServeHTTP(w, req)
		})
	})
	h.RegisterRoutes(r)

	f.router = r
	return f
}

func (f *fixture) get(path, user string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if user != "" {
		req.Header.Set(testUserHeader, user)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestPublicPagesRender(t *testing.T) {
	f := newFixture(t)

	cases := map[string]string{
		"/":           "Ultra",
		"/about":      "Supporter charter",
		"/membership": "500.00 MAD",
		"/store":      "Home shirt",
		"/gallery":    "/media/tifo.jpg",
		"/news":       "Derby day",
		"/news/n1":    "<p>Full story</p>",
		"/auth":       `action="/auth/signin"`,
	}
	for path, want := range cases {
		rec := f.get(path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), want, path)
		assert.Contains(t, rec.Body.String(), `<html lang="en" dir="ltr">`, path)
	}
}

func TestUnknownArticleIsNotFound(t *testing.T) {
	rec := newFixture(t).get("/news/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), i18n.T(i18n.English, "common.not_found"))
}

func TestAnonymousVisitorIsRedirectedToSignIn(t *testing.T) {
	f := newFixture(t)

	for _, path := range []string{"/member", "/admin", "/admin/users"} {
		rec := f.get(path, "")
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/auth?next="+url.QueryEscape(path), rec.Header().Get("Location"), path)
		assert.NotContains(t, rec.Body.String(), "fan@example.com", path)
	}
	assert.Zero(t, f.profiles.loads)
}

func TestMemberOnAdminPathsSeesUnauthorizedWithoutRedirect(t *testing.T) {
	f := newFixture(t)

	for _, section := range append([]string{""}, AdminSections...) {
		path := "/admin/" + section
		rec := f.get(path, "member-1")

		assert.Equal(t, http.StatusForbidden, rec.Code, path)
		assert.Empty(t, rec.Header().Get("Location"), path)
		assert.Contains(t, rec.Body.String(), i18n.T(i18n.English, "guard.unauthorized"), path)
		assert.NotContains(t, rec.Body.String(), `href="/admin/users"`, path)
	}
}

func TestAdminSeesBackOffice(t *testing.T) {
	f := newFixture(t)

	rec := f.get("/admin/orders", "admin-1")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `href="/admin/users"`)
	assert.Contains(t, body, `href="/admin/orders" aria-current="page"`)
	assert.Contains(t, body, `<a href="/admin">`)

	rec = f.get("/admin/unknown", "admin-1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMemberArea(t *testing.T) {
	f := newFixture(t)

	rec := f.get("/member", "member-1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sara")
	assert.Contains(t, rec.Body.String(), `href="/about#charter"`)
}

func TestProfileFailureShowsRetry(t *testing.T) {
	f := newFixture(t)
	f.profiles.err = errors.New("connection refused")

	rec := f.get("/admin/cms", "admin-1")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/admin/cms"`)
	assert.Contains(t, rec.Body.String(), i18n.T(i18n.English, "common.retry"))
}

func TestMemberAreaShowsRetryWhenProfileUnavailable(t *testing.T) {
	tests := map[string]error{
		"backend down":    errors.New("connection refused"),
		"missing profile": core.ErrNotFound,
	}

	for name, loadErr := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			f.profiles.err = loadErr

			rec := f.get("/member", "member-1")
			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
			assert.Contains(t, rec.Body.String(), `href="/member"`)
			assert.Contains(t, rec.Body.String(), i18n.T(i18n.English, "common.retry"))
		})
	}
}

func TestLanguageSwitch(t *testing.T) {
	f := newFixture(t)

	rec := f.get("/?lang=ar", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<html lang="ar" dir="rtl">`)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "rossoverde-language=ar")

	rec = f.postForm("/language", url.Values{"lang": {"fr"}, "next": {"/store"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/store", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "fr", cookies[0].Value)

	req := httptest.NewRequest(http.MethodGet, "/store", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), `<html lang="fr" dir="ltr">`)
	assert.Contains(t, rec.Body.String(), "Maillot domicile")
}

func TestAuthPageRedirectsSignedInVisitors(t *testing.T) {
	rec := newFixture(t).get("/auth", "member-1")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestSignUpRejectsShortPasswordLocally(t *testing.T) {
	f := newFixture(t)

	rec := f.postForm("/auth/signup", url.Values{
		"email":            {"fan@example.com"},
		"password":         {"abcde"},
		"confirm_password": {"abcde"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), i18n.T(i18n.English, "auth.password_too_short"))
	assert.Zero(t, f.sessions.signUps)
}

func TestSignInSetsCookieAndFollowsNext(t *testing.T) {
	f := newFixture(t)

	rec := f.postForm("/auth/signin", url.Values{
		"email":    {"fan@example.com"},
		"password": {"correct-horse"},
		"next":     {"/member"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/member", rec.Header().Get("Location"))
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "rossoverde-session=access")

	rec = f.postForm("/auth/signin", url.Values{
		"email":    {"fan@example.com"},
		"password": {"wrong"},
		"next":     {"https://evil.example"},
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="next" value="/"`)
}
