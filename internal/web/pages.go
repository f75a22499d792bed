// AngelaMos | 2026
// pages.go

package web

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rossoverde/supporters/internal/core"
	"github.com/rossoverde/supporters/internal/gallery"
	"github.com/rossoverde/supporters/internal/guard"
	"github.com/rossoverde/supporters/internal/i18n"
)

// AdminSections lists the back-office areas in menu order.
var AdminSections = []string{
	"users",
	"memberships",
	"store",
	"orders",
	"posts",
	"gallery",
	"cms",
	"membership-tiers",
}

const homeNewsCount = 3

type tierCard struct {
	Name        string
	Description string
	Price       string
	Features    []string
}

type productCard struct {
	Name        string
	Description string
	Category    string
	Price       string
	Original    string
	Image       string
	InStock     bool
}

type galleryCard struct {
	Title       string
	Description string
	Thumbnail   string
	MediaURL    string
	Video       bool
}

type newsCard struct {
	ID       string
	Title    string
	Excerpt  string
	Category string
	Date     string
}

type homeData struct {
	Intro template.HTML
	Tiers []tierCard
	News  []newsCard
}

type aboutData struct {
	Content      template.HTML
	CharterTitle string
	Charter      template.HTML
}

type articleData struct {
	HTML     template.HTML
	Date     string
	ReadTime int
}

type memberData struct {
	Name            string
	Email           string
	CharterAccepted bool
	CharterTitle    string
}

type adminLink struct {
	Key     string
	Label   string
	Current bool
}

type adminData struct {
	Sections []adminLink
}

func money(amount float64, currency string) string {
	return fmt.Sprintf("%.2f %s", amount, currency)
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := i18n.FromContext(ctx)
	data := homeData{}

	if c, err := h.cfg.Content.Get(ctx, "home"); err == nil {
		data.Intro = c.HTML(lang)
	} else if !errors.Is(err, core.ErrNotFound) {
		h.serverError(w, r, err)
		return
	}

	tiers, err := h.tierCards(r)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	data.Tiers = tiers

	posts, err := h.newsCards(r)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	if len(posts) > homeNewsCount {
		posts = posts[:homeNewsCount]
	}
	data.News = posts

	h.render(w, r, http.StatusOK, "home", i18n.T(lang, "nav.home"), data)
}

func (h *Handler) About(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := i18n.FromContext(ctx)
	title := i18n.T(lang, "nav.about")
	data := aboutData{}

	if c, err := h.cfg.Content.Get(ctx, "about"); err == nil {
		data.Content = c.HTML(lang)
		if t := c.Title(lang); t != "" {
			title = t
		}
	} else if !errors.Is(err, core.ErrNotFound) {
		h.serverError(w, r, err)
		return
	}

	if c, err := h.cfg.Charter.Active(ctx); err == nil {
		data.CharterTitle = c.Title(lang)
		data.Charter = c.HTML(lang)
	} else if !errors.Is(err, core.ErrNotFound) {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "about", title, data)
}

func (h *Handler) Membership(w http.ResponseWriter, r *http.Request) {
	cards, err := h.tierCards(r)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	lang := i18n.FromContext(r.Context())
	h.render(w, r, http.StatusOK, "membership", i18n.T(lang, "nav.membership"), cards)
}

func (h *Handler) Store(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := i18n.FromContext(ctx)

	products, err := h.cfg.Products.ListActive(ctx)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	cards := make([]productCard, 0, len(products))
	for i := range products {
		p := &products[i]
		card := productCard{
			Name:        p.Name(lang),
			Description: p.Description(lang),
			Category:    p.Category(lang),
			Price:       money(p.Price, p.Currency),
			InStock:     p.InStock(),
		}
		if p.OnSale() {
			card.Original = money(*p.OriginalPrice, p.Currency)
		}
		if p.ImageURL != nil {
			card.Image = *p.ImageURL
		}
		cards = append(cards, card)
	}

	h.render(w, r, http.StatusOK, "store", i18n.T(lang, "nav.store"), cards)
}

func (h *Handler) Gallery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := i18n.FromContext(ctx)

	items, err := h.cfg.Gallery.List(ctx)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	cards := make([]galleryCard, 0, len(items))
	for i := range items {
		it := &items[i]
		cards = append(cards, galleryCard{
			Title:       it.Title(lang),
			Description: it.Description(lang),
			Thumbnail:   it.Thumbnail(),
			MediaURL:    it.MediaURL,
			Video:       it.MediaType == gallery.MediaVideo,
		})
	}

	h.render(w, r, http.StatusOK, "gallery", i18n.T(lang, "nav.gallery"), cards)
}

func (h *Handler) News(w http.ResponseWriter, r *http.Request) {
	cards, err := h.newsCards(r)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	lang := i18n.FromContext(r.Context())
	h.render(w, r, http.StatusOK, "news", i18n.T(lang, "nav.news"), cards)
}

func (h *Handler) Article(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := i18n.FromContext(ctx)

	post, err := h.cfg.News.Get(ctx, chi.URLParam(r, "postID"), lang)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "article", post.Title(lang), articleData{
		HTML:     post.HTML,
		Date:     post.PublishedAt.Format("2006-01-02"),
		ReadTime: post.ReadTime,
	})
}

// Member only runs once the guard has loaded the profile.
func (h *Handler) Member(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := i18n.FromContext(ctx)
	p := guard.ProfileFrom(ctx)
	if p == nil {
		h.pages.Failed(w, r, errors.New("member page reached without a profile"))
		return
	}

	data := memberData{
		Name:            p.DisplayName(),
		Email:           p.Email,
		CharterAccepted: p.CharterAccepted,
	}
	if !p.CharterAccepted {
		if c, err := h.cfg.Charter.Active(ctx); err == nil {
			data.CharterTitle = c.Title(lang)
		}
	}

	h.render(w, r, http.StatusOK, "member", i18n.T(lang, "nav.member"), data)
}

func (h *Handler) AdminHome(w http.ResponseWriter, r *http.Request) {
	lang := i18n.FromContext(r.Context())
	h.render(w, r, http.StatusOK, "admin", i18n.T(lang, "nav.admin"), adminData{
		Sections: adminLinks(lang, ""),
	})
}

func (h *Handler) AdminSection(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	if !isAdminSection(section) {
		h.notFound(w, r)
		return
	}

	lang := i18n.FromContext(r.Context())
	h.render(w, r, http.StatusOK, "admin", i18n.T(lang, "admin."+section), adminData{
		Sections: adminLinks(lang, section),
	})
}

func isAdminSection(s string) bool {
	for _, known := range AdminSections {
		if s == known {
			return true
		}
	}
	return false
}

func adminLinks(lang i18n.Language, current string) []adminLink {
	out := make([]adminLink, 0, len(AdminSections))
	for _, s := range AdminSections {
		out = append(out, adminLink{
			Key:     s,
			Label:   i18n.T(lang, "admin."+s),
			Current: s == current,
		})
	}
	return out
}

func (h *Handler) tierCards(r *http.Request) ([]tierCard, error) {
	lang := i18n.FromContext(r.Context())

	tiers, err := h.cfg.Tiers.ListActive(r.Context())
	if err != nil {
		return nil, err
	}

	out := make([]tierCard, 0, len(tiers))
	for i := range tiers {
		t := &tiers[i]
		out = append(out, tierCard{
			Name:        t.Name(lang),
			Description: t.Description(lang),
			Price:       money(t.Price, t.Currency),
			Features:    t.Features(lang),
		})
	}
	return out, nil
}

func (h *Handler) newsCards(r *http.Request) ([]newsCard, error) {
	lang := i18n.FromContext(r.Context())

	posts, err := h.cfg.News.ListPublished(r.Context())
	if err != nil {
		return nil, err
	}

	out := make([]newsCard, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		out = append(out, newsCard{
			ID:       p.ID,
			Title:    p.Title(lang),
			Excerpt:  p.Excerpt(lang),
			Category: p.Category(lang),
			Date:     p.PublishedAt.Format("2006-01-02"),
		})
	}
	return out, nil
}
