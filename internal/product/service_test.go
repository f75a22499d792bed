// AngelaMos | 2026
// service_test.go

package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rossoverde/supporters/internal/core"
	"github.com/rossoverde/supporters/internal/i18n"
)

type fakeRepo struct {
	products map[string]*Product
	creates  int
}

func (f *fakeRepo) ListActive(context.Context) ([]Product, error) {
	out := []Product{}
	for _, p := range f.products {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAll(context.Context) ([]Product, error) {
	out := []Product{}
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeRepo) GetActive(_ context.Context, id string) (*Product, error) {
	p, ok := f.products[id]
	if !ok || !p.IsActive {
		return nil, core.ErrNotFound
	}
	return p, nil
}

func (f *fakeRepo) Create(_ context.Context, req CreateRequest) (*Product, error) {
	f.creates++
	p := &Product{ID: "new", NameEN: req.NameEN, Price: req.Price, IsActive: true}
	f.products[p.ID] = p
	return p, nil
}

func (f *fakeRepo) Update(_ context.Context, id string, req UpdateRequest) (*Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	return p, nil
}

func (f *fakeRepo) Deactivate(_ context.Context, id string) error {
	p, ok := f.products[id]
	if !ok {
		return core.ErrNotFound
	}
	p.IsActive = false
	return nil
}

func TestDeletedProductLeavesStore(t *testing.T) {
	repo := &fakeRepo{products: map[string]*Product{
		"scarf": {ID: "scarf", NameEN: "Scarf", Price: 120, IsActive: true},
	}}
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "scarf"))

	_, err := svc.Get(ctx, "scarf")
	assert.ErrorIs(t, err, core.ErrNotFound)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateRejectsOriginalPriceBelowPrice(t *testing.T) {
	repo := &fakeRepo{products: map[string]*Product{}}
	original := 50.0

	_, err := NewService(repo).Create(context.Background(), CreateRequest{
		NameEN:        "Jersey",
		Price:         80,
		OriginalPrice: &original,
	})

	assert.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Zero(t, repo.creates)
}

func TestProductHelpers(t *testing.T) {
	original := 300.0
	cat := "Vêtements"
	p := Product{
		NameEN:        "Jersey",
		NameFR:        "Maillot",
		NameAR:        "قميص",
		Price:         250,
		OriginalPrice: &original,
		CategoryFR:    &cat,
	}

	assert.True(t, p.OnSale())
	assert.False(t, p.InStock())
	assert.Equal(t, "قميص", p.Name(i18n.Arabic))
	assert.Equal(t, cat, p.Category(i18n.French))
	assert.Equal(t, "", p.Category(i18n.English))
}
