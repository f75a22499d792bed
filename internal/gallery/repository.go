// AngelaMos | 2026
// repository.go

package gallery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rossoverde/supporters/internal/core"
)

type Repository interface {
	List(ctx context.Context) ([]Item, error)
	Create(ctx context.Context, req CreateRequest) (*Item, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Item, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const itemColumns = `id, title_en, title_fr, title_ar, description_en,
	description_fr, description_ar, media_url, thumbnail_url, media_type,
	category_en, category_fr, category_ar, duration, is_featured, sort_order,
	created_at, updated_at`

func (r *repository) List(ctx context.Context) ([]Item, error) {
	query := `SELECT ` + itemColumns + `
		FROM gallery_items
		ORDER BY sort_order ASC, created_at DESC`

	out := []Item{}
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("list gallery: %w", err)
	}
	return out, nil
}

func (r *repository) Create(ctx context.Context, req CreateRequest) (*Item, error) {
	query := `
		INSERT INTO gallery_items (
			title_en, title_fr, title_ar, description_en, description_fr,
			description_ar, media_url, thumbnail_url, media_type, category_en,
			category_fr, category_ar, duration, is_featured, sort_order
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + itemColumns

	mediaType := req.MediaType
	if mediaType == "" {
		mediaType = string(MediaImage)
	}

	var it Item
	err := r.db.GetContext(ctx, &it, query,
		req.TitleEN,
		req.TitleFR,
		req.TitleAR,
		req.DescriptionEN,
		req.DescriptionFR,
		req.DescriptionAR,
		req.MediaURL,
		req.ThumbnailURL,
		mediaType,
		req.CategoryEN,
		req.CategoryFR,
		req.CategoryAR,
		req.Duration,
		req.IsFeatured,
		req.SortOrder,
	)
	if err != nil {
		return nil, fmt.Errorf("create gallery item: %w", err)
	}
	return &it, nil
}

func (r *repository) Update(
	ctx context.Context,
	id string,
	req UpdateRequest,
) (*Item, error) {
	a := core.NewAssignments(id)
	core.SetIf(a, "title_en", req.TitleEN)
	core.SetIf(a, "title_fr", req.TitleFR)
	core.SetIf(a, "title_ar", req.TitleAR)
	core.SetIf(a, "description_en", req.DescriptionEN)
	core.SetIf(a, "description_fr", req.DescriptionFR)
	core.SetIf(a, "description_ar", req.DescriptionAR)
	core.SetIf(a, "media_url", req.MediaURL)
	core.SetIf(a, "thumbnail_url", req.ThumbnailURL)
	core.SetIf(a, "media_type", req.MediaType)
	core.SetIf(a, "category_en", req.CategoryEN)
	core.SetIf(a, "category_fr", req.CategoryFR)
	core.SetIf(a, "category_ar", req.CategoryAR)
	core.SetIf(a, "duration", req.Duration)
	core.SetIf(a, "is_featured", req.IsFeatured)
	core.SetIf(a, "sort_order", req.SortOrder)
	a.Raw("updated_at = NOW()")

	query := `UPDATE gallery_items SET ` + a.Clause() +
		` WHERE id = $1 RETURNING ` + itemColumns

	var it Item
	err := r.db.GetContext(ctx, &it, query, a.Args()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update gallery item: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update gallery item: %w", err)
	}
	return &it, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM gallery_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete gallery item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete gallery item: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete gallery item: %w", core.ErrNotFound)
	}
	return nil
}
