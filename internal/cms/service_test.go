// AngelaMos | 2026
// service_test.go

package cms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rossoverde/supporters/internal/core"
	"github.com/rossoverde/supporters/internal/i18n"
)

type fakeRepo struct {
	blocks map[string]*Content
}

func (f *fakeRepo) ListPublished(context.Context) ([]Content, error) {
	out := []Content{}
	for _, c := range f.blocks {
		if c.IsPublished {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAll(context.Context) ([]Content, error) {
	out := []Content{}
	for _, c := range f.blocks {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeRepo) GetPublished(_ context.Context, key string) (*Content, error) {
	c, ok := f.blocks[key]
	if !ok || !c.IsPublished {
		return nil, core.ErrNotFound
	}
	return c, nil
}

func (f *fakeRepo) Upsert(_ context.Context, key string, req UpsertRequest) (*Content, error) {
	c, ok := f.blocks[key]
	if !ok {
		c = &Content{ID: key + "-id", PageKey: key}
		f.blocks[key] = c
	}
	c.TitleEN = req.TitleEN
	c.ContentEN = req.ContentEN
	c.ContentAR = req.ContentAR
	c.IsPublished = req.IsPublished
	return c, nil
}

func ptr(s string) *string { return &s }

func TestUpsertCreatesThenReplaces(t *testing.T) {
	repo := &fakeRepo{blocks: map[string]*Content{}}
	svc := NewService(repo)
	ctx := context.Background()

	first, err := svc.Upsert(ctx, "about", UpsertRequest{TitleEN: ptr("About"), IsPublished: false})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "about")
	assert.ErrorIs(t, err, core.ErrNotFound)

	second, err := svc.Upsert(ctx, "about", UpsertRequest{
		TitleEN:     ptr("About us"),
		ContentEN:   ptr("We are *RossoVerde*"),
		ContentAR:   ptr("نحن **روسوفيردي**"),
		IsPublished: true,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	got, err := svc.Get(ctx, "about")
	require.NoError(t, err)
	assert.Equal(t, "About us", got.Title(i18n.French))
	assert.Contains(t, string(got.HTML(i18n.Arabic)), "<strong>روسوفيردي</strong>")
	assert.Contains(t, string(got.HTML(i18n.French)), "<em>RossoVerde</em>")

	published, err := svc.Published(ctx)
	require.NoError(t, err)
	assert.Contains(t, published, "about")
}

func TestUpsertRejectsBadPageKey(t *testing.T) {
	repo := &fakeRepo{blocks: map[string]*Content{}}

	_, err := NewService(repo).Upsert(context.Background(), "../etc", UpsertRequest{})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Empty(t, repo.blocks)
}
