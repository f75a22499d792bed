// AngelaMos | 2026
// web.go

// Package web serves the localized HTML routing surface. Member and admin
// pages sit behind the route guard in page mode.
package web

import (
	"context"
	"html/template"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/rossoverde/supporters/internal/auth"
	"github.com/rossoverde/supporters/internal/charter"
	"github.com/rossoverde/supporters/internal/cms"
	"github.com/rossoverde/supporters/internal/gallery"
	"github.com/rossoverde/supporters/internal/guard"
	"github.com/rossoverde/supporters/internal/i18n"
	"github.com/rossoverde/supporters/internal/middleware"
	"github.com/rossoverde/supporters/internal/news"
	"github.com/rossoverde/supporters/internal/product"
	"github.com/rossoverde/supporters/internal/tier"
)

type TierSource interface {
	ListActive(ctx context.Context) ([]tier.Tier, error)
}

type ProductSource interface {
	ListActive(ctx context.Context) ([]product.Product, error)
}

type NewsSource interface {
	ListPublished(ctx context.Context) ([]news.Post, error)
	Get(ctx context.Context, id string, lang i18n.Language) (*news.Rendered, error)
}

type GallerySource interface {
	List(ctx context.Context) ([]gallery.Item, error)
}

type ContentSource interface {
	Get(ctx context.Context, pageKey string) (*cms.Content, error)
}

type CharterSource interface {
	Active(ctx context.Context) (*charter.Charter, error)
}

// Sessions is the part of the session provider the sign-in forms use.
type Sessions interface {
	SignIn(ctx context.Context, req auth.SignInRequest, userAgent, ipAddress string) (*auth.SessionResponse, error)
	SignUp(ctx context.Context, req auth.SignUpRequest, userAgent, ipAddress string) (*auth.SessionResponse, error)
	SignOut(ctx context.Context, claims *middleware.AccessTokenClaims, refreshToken string) error
}

type Config struct {
	Tiers       TierSource
	Products    ProductSource
	News        NewsSource
	Gallery     GallerySource
	Content     ContentSource
	Charter     CharterSource
	Sessions    Sessions
	Guard       *guard.Guard
	Preferences *i18n.Preferences
	Cookie      auth.CookieConfig
}

type Handler struct {
	cfg       Config
	templates map[string]*template.Template
	pages     guard.PageResponder
	validator *validator.Validate
}

func NewHandler(cfg Config) (*Handler, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	h := &Handler{
		cfg:       cfg,
		templates: templates,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
	h.pages = guard.PageResponder{SignInPath: "/auth", Render: h.renderPage}
	return h, nil
}

// RegisterRoutes mounts every page. r must already resolve the request
// language and attach the session when one is present.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Home)
	r.Get("/about", h.About)
	r.Get("/membership", h.Membership)
	r.Get("/store", h.Store)
	r.Get("/gallery", h.Gallery)
	r.Get("/news", h.News)
	r.Get("/news/{postID}", h.Article)

	r.Get("/auth", h.AuthPage)
	r.Post("/auth/signin", h.SignIn)
	r.Post("/auth/signup", h.SignUp)
	r.Post("/auth/signout", h.SignOut)
	r.Post("/language", h.cfg.Preferences.Switch)

	r.Group(func(r chi.Router) {
		r.Use(h.cfg.Guard.Require(guard.RequireSession, h.pages))
		r.Get("/member", h.Member)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(h.cfg.Guard.Require(guard.RequireAdmin, h.pages))
		r.Get("/", h.AdminHome)
		r.Get("/{section}", h.AdminSection)
	})
}
