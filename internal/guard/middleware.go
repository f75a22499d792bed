// AngelaMos | 2026
// middleware.go

package guard

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/rossoverde/supporters/internal/core"
	"github.com/rossoverde/supporters/internal/i18n"
	"github.com/rossoverde/supporters/internal/middleware"
	"github.com/rossoverde/supporters/internal/profile"
)

type ProfileSource interface {
	Load(ctx context.Context, userID string) (*profile.Profile, error)
}

type Observer interface {
	ObserveGuard(requirement, state string)
}

// Responder writes the response for every state that does not let the
// request through.
type Responder interface {
	Unauthenticated(w http.ResponseWriter, r *http.Request)
	Unauthorized(w http.ResponseWriter, r *http.Request)
	Failed(w http.ResponseWriter, r *http.Request, err error)
}

type Guard struct {
	profiles ProfileSource
	observer Observer
}

func New(profiles ProfileSource, observer Observer) *Guard {
	return &Guard{profiles: profiles, observer: observer}
}

type profileKey struct{}

// ProfileFrom returns the profile the guard loaded for this request.
func ProfileFrom(ctx context.Context) *profile.Profile {
	p, _ := ctx.Value(profileKey{}).(*profile.Profile)
	return p
}

func WithProfile(ctx context.Context, p *profile.Profile) context.Context {
	return context.WithValue(ctx, profileKey{}, p)
}

// Check loads whatever the requirement needs and returns the settled state.
// It never returns Checking because the load completes before evaluation.
func (g *Guard) Check(
	ctx context.Context,
	req Requirement,
) (State, *profile.Profile, error) {
	snap := Snapshot{UserID: middleware.GetUserID(ctx)}

	if snap.UserID != "" {
		snap.Profile, snap.ProfileErr = g.profiles.Load(ctx, snap.UserID)
	}

	state := Evaluate(snap, req)
	// A session route does not need the role, but its handlers read the
	// profile loaded here. A backend failure must not reach them as a nil.
	if state == Authorized && snap.ProfileErr != nil && !errors.Is(snap.ProfileErr, core.ErrNotFound) {
		state = Failed
	}
	if g.observer != nil {
		g.observer.ObserveGuard(req.String(), state.String())
	}

	return state, snap.Profile, snap.ProfileErr
}

// Require only runs next once the requirement is met.
func (g *Guard) Require(
	req Requirement,
	responder Responder,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state, p, err := g.Check(r.Context(), req)

			switch state {
			case Authorized:
				ctx := r.Context()
				if p != nil {
					ctx = WithProfile(ctx, p)
				}
				next.ServeHTTP(w, r.WithContext(ctx))
			case Unauthenticated:
				responder.Unauthenticated(w, r)
			case Unauthorized:
				responder.Unauthorized(w, r)
			default:
				slog.ErrorContext(r.Context(), "route guard failed",
					"requirement", req.String(),
					"user_id", middleware.GetUserID(r.Context()),
					"error", err,
				)
				responder.Failed(w, r, err)
			}
		})
	}
}

// APIResponder answers with the JSON envelope.
type APIResponder struct{}

func (APIResponder) Unauthenticated(w http.ResponseWriter, _ *http.Request) {
	core.Unauthorized(w, "")
}

func (APIResponder) Unauthorized(w http.ResponseWriter, r *http.Request) {
	core.Forbidden(w, i18n.T(i18n.FromContext(r.Context()), "guard.unauthorized"))
}

func (APIResponder) Failed(w http.ResponseWriter, r *http.Request, _ error) {
	w.Header().Set("Retry-After", "5")
	core.JSONError(
		w,
		core.UnavailableError(i18n.T(i18n.FromContext(r.Context()), "guard.failed")),
	)
}

// Page is the data the page responder hands to its renderer.
type Page struct {
	Status  int
	Title   string
	Message string
	Retry   string
}

// PageResponder sends anonymous visitors to the sign-in page and renders the
// unauthorized and failure pages in place, so there is nothing to loop on.
type PageResponder struct {
	SignInPath string
	Render     func(w http.ResponseWriter, r *http.Request, page Page)
}

func (p PageResponder) Unauthenticated(w http.ResponseWriter, r *http.Request) {
	signIn := p.SignInPath
	if signIn == "" {
		signIn = "/auth"
	}
	target := signIn + "?next=" + url.QueryEscape(r.URL.RequestURI())
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (p PageResponder) Unauthorized(w http.ResponseWriter, r *http.Request) {
	lang := i18n.FromContext(r.Context())
	p.Render(w, r, Page{
		Status:  http.StatusForbidden,
		Title:   i18n.T(lang, "guard.unauthorized_title"),
		Message: i18n.T(lang, "guard.unauthorized"),
	})
}

func (p PageResponder) Failed(w http.ResponseWriter, r *http.Request, _ error) {
	lang := i18n.FromContext(r.Context())
	w.Header().Set("Retry-After", "5")
	p.Render(w, r, Page{
		Status:  http.StatusServiceUnavailable,
		Title:   i18n.T(lang, "guard.failed_title"),
		Message: i18n.T(lang, "guard.failed"),
		Retry:   r.URL.RequestURI(),
	})
}
