// AngelaMos | 2026
// handler_test.go

package charter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rossoverde/supporters/internal/core"
	"github.com/rossoverde/supporters/internal/i18n"
)

type fakeRepo struct {
	versions []*Charter
}

func (f *fakeRepo) GetActive(context.Context) (*Charter, error) {
	for _, c := range f.versions {
		if c.IsActive {
			return c, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeRepo) List(context.Context) ([]Charter, error) {
	out := []Charter{}
	for _, c := range f.versions {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeRepo) Publish(_ context.Context, req PublishRequest) (*Charter, error) {
	for _, c := range f.versions {
		c.IsActive = false
	}
	c := &Charter{
		ID:            req.Version,
		Version:       req.Version,
		TitleEN:       req.TitleEN,
		ContentEN:     req.ContentEN,
		IsActive:      true,
		EffectiveDate: time.Now(),
	}
	f.versions = append(f.versions, c)
	return c, nil
}

func router(repo Repository) chi.Router {
	h := NewHandler(NewService(repo))
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	r.Route("/admin", h.RegisterAdminRoutes)
	return r
}

func TestNoActiveCharter(t *testing.T) {
	rec := httptest.NewRecorder()
	router(&fakeRepo{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/charter", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPublishReplacesActiveVersion(t *testing.T) {
	repo := &fakeRepo{versions: []*Charter{{ID: "v1", Version: "1.0", IsActive: true}}}
	r := router(repo)

	body := `{"version":"2.0","title_en":"Charter","title_fr":"Charte","title_ar":"الميثاق",
		"content_en":"Respect","content_fr":"Respect","content_ar":"احترام"}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/charter", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	active := 0
	for _, c := range repo.versions {
		if c.IsActive {
			active++
		}
	}
	assert.Equal(t, 1, active)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/charter", nil))
	assert.Contains(t, rec.Body.String(), `"version":"2.0"`)
}

func TestPublishRequiresAllLanguages(t *testing.T) {
	repo := &fakeRepo{}
	rec := httptest.NewRecorder()
	router(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/charter",
		strings.NewReader(`{"version":"1.0","title_en":"Charter","content_en":"Respect"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, repo.versions)
}

func TestCharterHTML(t *testing.T) {
	c := Charter{ContentEN: "1. Respect", ContentFR: "1. **Respect**"}
	assert.Contains(t, string(c.HTML(i18n.French)), "<strong>Respect</strong>")
	assert.Contains(t, string(c.HTML(i18n.Arabic)), "<ol>")
}
