// AngelaMos | 2026
// handler_test.go

package gallery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/rossoverde/supporters/internal/core"
)

type fakeRepo struct {
	items map[string]*Item
}

func (f *fakeRepo) List(context.Context) ([]Item, error) {
	out := []Item{}
	for _, it := range f.items {
		out = append(out, *it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (f *fakeRepo) Create(_ context.Context, req CreateRequest) (*Item, error) {
	it := &Item{ID: "new", TitleEN: req.TitleEN, MediaURL: req.MediaURL, MediaType: MediaType(req.MediaType)}
	f.items[it.ID] = it
	return it, nil
}

func (f *fakeRepo) Update(_ context.Context, id string, _ UpdateRequest) (*Item, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return it, nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func router(repo Repository) chi.Router {
	h := NewHandler(NewService(repo))
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	r.Route("/admin", h.RegisterAdminRoutes)
	return r
}

func TestListOrdersBySortOrder(t *testing.T) {
	repo := &fakeRepo{items: map[string]*Item{
		"b": {ID: "b", SortOrder: 2},
		"a": {ID: "a", SortOrder: 1},
	}}

	rec := httptest.NewRecorder()
	router(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/gallery", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Less(t, strings.Index(body, `"id":"a"`), strings.Index(body, `"id":"b"`))
}

func TestCreateRequiresMediaURL(t *testing.T) {
	repo := &fakeRepo{items: map[string]*Item{}}
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/admin/gallery",
		strings.NewReader(`{"title_en":"Tifo","title_fr":"Tifo","title_ar":"تيفو","media_type":"gif"}`))

	router(repo).ServeHTTP(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, repo.items)
}

func TestDeleteUnknownItem(t *testing.T) {
	rec := httptest.NewRecorder()
	router(&fakeRepo{items: map[string]*Item{}}).ServeHTTP(rec,
		httptest.NewRequest(http.MethodDelete, "/admin/gallery/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestThumbnail(t *testing.T) {
	thumb := "https://cdn.example.com/t.jpg"
	assert.Equal(t, "https://cdn.example.com/a.jpg", (&Item{MediaType: MediaImage, MediaURL: "https://cdn.example.com/a.jpg"}).Thumbnail())
	assert.Equal(t, "", (&Item{MediaType: MediaVideo, MediaURL: "https://cdn.example.com/v.mp4"}).Thumbnail())
	assert.Equal(t, thumb, (&Item{MediaType: MediaVideo, ThumbnailURL: &thumb}).Thumbnail())
}
