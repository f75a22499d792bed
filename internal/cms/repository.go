// AngelaMos | 2026
// repository.go

package cms

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rossoverde/supporters/internal/core"
)

type Repository interface {
	ListPublished(ctx context.Context) ([]Content, error)
	ListAll(ctx context.Context) ([]Content, error)
	GetPublished(ctx context.Context, pageKey string) (*Content, error)
	Upsert(ctx context.Context, pageKey string, req UpsertRequest) (*Content, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const contentColumns = `id, page_key, title_en, title_fr, title_ar,
	content_en, content_fr, content_ar, meta_description_en,
	meta_description_fr, meta_description_ar, is_published, created_at,
	updated_at`

func (r *repository) ListPublished(ctx context.Context) ([]Content, error) {
	query := `SELECT ` + contentColumns + `
		FROM cms_content
		WHERE is_published = TRUE
		ORDER BY page_key ASC`

	out := []Content{}
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("list cms content: %w", err)
	}
	return out, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Content, error) {
	query := `SELECT ` + contentColumns + ` FROM cms_content ORDER BY page_key ASC`

	out := []Content{}
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("list all cms content: %w", err)
	}
	return out, nil
}

func (r *repository) GetPublished(ctx context.Context, pageKey string) (*Content, error) {
	query := `SELECT ` + contentColumns + `
		FROM cms_content
		WHERE page_key = $1 AND is_published = TRUE`

	var c Content
	err := r.db.GetContext(ctx, &c, query, pageKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get cms content: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get cms content: %w", err)
	}
	return &c, nil
}

func (r *repository) Upsert(
	ctx context.Context,
	pageKey string,
	req UpsertRequest,
) (*Content, error) {
	query := `
		INSERT INTO cms_content (
			page_key, title_en, title_fr, title_ar, content_en, content_fr,
			content_ar, meta_description_en, meta_description_fr,
			meta_description_ar, is_published
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (page_key) DO UPDATE SET
			title_en = EXCLUDED.title_en,
			title_fr = EXCLUDED.title_fr,
			title_ar = EXCLUDED.title_ar,
			content_en = EXCLUDED.content_en,
			content_fr = EXCLUDED.content_fr,
			content_ar = EXCLUDED.content_ar,
			meta_description_en = EXCLUDED.meta_description_en,
			meta_description_fr = EXCLUDED.meta_description_fr,
			meta_description_ar = EXCLUDED.meta_description_ar,
			is_published = EXCLUDED.is_published,
			updated_at = NOW()
		RETURNING ` + contentColumns

	var c Content
	err := r.db.GetContext(ctx, &c, query,
		pageKey,
		req.TitleEN,
		req.TitleFR,
		req.TitleAR,
		req.ContentEN,
		req.ContentFR,
		req.ContentAR,
		req.MetaDescriptionEN,
		req.MetaDescriptionFR,
		req.MetaDescriptionAR,
		req.IsPublished,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert cms content: %w", err)
	}
	return &c, nil
}
