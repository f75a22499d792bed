// AngelaMos | 2026
// guard_test.go

package guard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rossoverde/supporters/internal/core"
	"github.com/rossoverde/supporters/internal/i18n"
	"github.com/rossoverde/supporters/internal/middleware"
	"github.com/rossoverde/supporters/internal/profile"
)

func withRole(role profile.Role) *profile.Profile {
	return &profile.Profile{ID: "u1", Email: "u1@example.com", Role: role}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		req  Requirement
		want State
	}{
		{
			name: "session still loading",
			snap: Snapshot{SessionLoading: true},
			req:  RequireAdmin,
			want: Checking,
		},
		{
			name: "no session",
			snap: Snapshot{},
			req:  RequireAdmin,
			want: Unauthenticated,
		},
		{
			name: "no session on member area",
			snap: Snapshot{},
			req:  RequireSession,
			want: Unauthenticated,
		},
		{
			name: "member area needs only a session",
			snap: Snapshot{UserID: "u1", ProfileLoading: true},
			req:  RequireSession,
			want: Authorized,
		},
		{
			name: "profile pending",
			snap: Snapshot{UserID: "u1", ProfileLoading: true},
			req:  RequireAdmin,
			want: Checking,
		},
		{
			name: "profile not requested yet",
			snap: Snapshot{UserID: "u1"},
			req:  RequireAdmin,
			want: Checking,
		},
		{
			name: "member on admin area",
			snap: Snapshot{UserID: "u1", Profile: withRole(profile.RoleMember)},
			req:  RequireAdmin,
			want: Unauthorized,
		},
		{
			name: "admin on admin area",
			snap: Snapshot{UserID: "u1", Profile: withRole(profile.RoleAdmin)},
			req:  RequireAdmin,
			want: Authorized,
		},
		{
			name: "missing profile",
			snap: Snapshot{UserID: "u1", ProfileErr: fmt.Errorf("load: %w", core.ErrNotFound)},
			req:  RequireAdmin,
			want: Unauthorized,
		},
		{
			name: "profile load failure",
			snap: Snapshot{UserID: "u1", ProfileErr: fmt.Errorf("load: %w", core.ErrUnavailable)},
			req:  RequireAdmin,
			want: Failed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.snap, tt.req))
		})
	}
}

func TestEvaluateAdminAfterLoadCompletes(t *testing.T) {
	snap := Snapshot{UserID: "u1", ProfileLoading: true}
	assert.Equal(t, Checking, Evaluate(snap, RequireAdmin))

	snap.ProfileLoading = false
	snap.Profile = withRole(profile.RoleAdmin)
	assert.Equal(t, Authorized, Evaluate(snap, RequireAdmin))
}

type stubProfiles struct {
	profile *profile.Profile
	err     error
	calls   int
}

func (s *stubProfiles) Load(_ context.Context, _ string) (*profile.Profile, error) {
	s.calls++
	return s.profile, s.err
}

type recordingObserver struct {
	seen []string
}

func (o *recordingObserver) ObserveGuard(requirement, state string) {
	o.seen = append(o.seen, requirement+":"+state)
}

type renderedPage struct {
	page  Page
	count int
}

func pageResponder(out *renderedPage) PageResponder {
	return PageResponder{
		SignInPath: "/auth",
		Render: func(w http.ResponseWriter, _ *http.Request, page Page) {
			out.page = page
			out.count++
			w.WriteHeader(page.Status)
			_, _ = w.Write([]byte(page.Title))
		},
	}
}

func serve(
	g *Guard,
	req Requirement,
	responder Responder,
	userID string,
	path string,
) (*httptest.ResponseRecorder, bool) {
	rendered := false
	h := g.Require(req, responder)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rendered = true
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, path, nil)
	if userID != "" {
		r = r.WithContext(middleware.WithClaims(r.Context(), &middleware.AccessTokenClaims{
			UserID: userID,
			Email:  userID + "@example.com",
		}))
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec, rendered
}

func TestPageGuardRedirectsAnonymousVisitor(t *testing.T) {
	profiles := &stubProfiles{}
	g := New(profiles, nil)

	var out renderedPage
	rec, rendered := serve(g, RequireAdmin, pageResponder(&out), "", "/admin/users")

	assert.False(t, rendered)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth?next=%2Fadmin%2Fusers", rec.Header().Get("Location"))
	assert.Zero(t, profiles.calls)
	assert.Zero(t, out.count)
}

func TestPageGuardShowsUnauthorizedWithoutRedirect(t *testing.T) {
	g := New(&stubProfiles{profile: withRole(profile.RoleMember)}, nil)

	for _, path := range []string{"/admin", "/admin/orders", "/admin/membership-tiers"} {
		var out renderedPage
		rec, rendered := serve(g, RequireAdmin, pageResponder(&out), "u1", path)

		assert.False(t, rendered, path)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
		assert.Empty(t, rec.Header().Get("Location"), path)
		assert.Equal(t, 1, out.count, path)
		assert.Equal(t, "Unauthorized Access", out.page.Title)
		assert.Equal(t, "You do not have permission to access the admin panel", out.page.Message)
	}
}

func TestPageGuardLocalizesUnauthorizedPage(t *testing.T) {
	g := New(&stubProfiles{profile: withRole(profile.RoleMember)}, nil)

	var out renderedPage
	h := g.Require(RequireAdmin, pageResponder(&out))(http.NotFoundHandler())

	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	ctx := middleware.WithClaims(r.Context(), &middleware.AccessTokenClaims{UserID: "u1"})
	ctx = i18n.WithLanguage(ctx, i18n.French)

	h.ServeHTTP(httptest.NewRecorder(), r.WithContext(ctx))

	assert.Equal(t, "Accès non autorisé", out.page.Title)
}

func TestPageGuardRendersChildrenForAdmin(t *testing.T) {
	admin := withRole(profile.RoleAdmin)
	g := New(&stubProfiles{profile: admin}, nil)

	var seen *profile.Profile
	h := g.Require(RequireAdmin, pageResponder(&renderedPage{}))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = ProfileFrom(r.Context())
		}),
	)

	r := httptest.NewRequest(http.MethodGet, "/admin/cms", nil)
	r = r.WithContext(middleware.WithClaims(r.Context(), &middleware.AccessTokenClaims{UserID: "u1"}))
	h.ServeHTTP(httptest.NewRecorder(), r)

	require.NotNil(t, seen)
	assert.Equal(t, profile.RoleAdmin, seen.Role)
}

func TestPageGuardFailedShowsRetry(t *testing.T) {
	g := New(&stubProfiles{err: fmt.Errorf("load: %w", core.ErrUnavailable)}, nil)

	var out renderedPage
	rec, rendered := serve(g, RequireAdmin, pageResponder(&out), "u1", "/admin/posts")

	assert.False(t, rendered)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "/admin/posts", out.page.Retry)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestSessionRequirementIgnoresRole(t *testing.T) {
	g := New(&stubProfiles{profile: withRole(profile.RoleMember)}, nil)

	_, rendered := serve(g, RequireSession, pageResponder(&renderedPage{}), "u1", "/member")
	assert.True(t, rendered)
}

func TestSessionRequirementFailsWhenProfileLoadFails(t *testing.T) {
	tests := []struct {
		name      string
		responder func(*renderedPage) Responder
	}{
		{"page", func(out *renderedPage) Responder { return pageResponder(out) }},
		{"api", func(*renderedPage) Responder { return APIResponder{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(&stubProfiles{err: fmt.Errorf("load: %w", errors.New("connection refused"))}, nil)

			var out renderedPage
			rec, rendered := serve(g, RequireSession, tt.responder(&out), "u1", "/member")

			assert.False(t, rendered)
			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("Retry-After"))
		})
	}
}

func TestSessionRequirementPassesMissingProfileThrough(t *testing.T) {
	g := New(&stubProfiles{err: core.ErrNotFound}, nil)

	_, rendered := serve(g, RequireSession, APIResponder{}, "u1", "/v1/orders")
	assert.True(t, rendered)
}

func TestAPIGuardStatuses(t *testing.T) {
	tests := []struct {
		name     string
		profiles *stubProfiles
		userID   string
		want     int
	}{
		{name: "anonymous", profiles: &stubProfiles{}, want: http.StatusUnauthorized},
		{
			name:     "member",
			profiles: &stubProfiles{profile: withRole(profile.RoleMember)},
			userID:   "u1",
			want:     http.StatusForbidden,
		},
		{
			name:     "admin",
			profiles: &stubProfiles{profile: withRole(profile.RoleAdmin)},
			userID:   "u1",
			want:     http.StatusOK,
		},
		{
			name:     "backend down",
			profiles: &stubProfiles{err: core.ErrUnavailable},
			userID:   "u1",
			want:     http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := serve(New(tt.profiles, nil), RequireAdmin, APIResponder{}, tt.userID, "/v1/admin/users")
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestGuardReportsDecisions(t *testing.T) {
	obs := &recordingObserver{}
	g := New(&stubProfiles{profile: withRole(profile.RoleMember)}, obs)

	serve(g, RequireAdmin, APIResponder{}, "u1", "/v1/admin/users")
	serve(g, RequireSession, APIResponder{}, "u1", "/v1/orders")

	assert.Equal(t, []string{"admin:unauthorized", "session:authorized"}, obs.seen)
}
