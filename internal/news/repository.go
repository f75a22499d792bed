// AngelaMos | 2026
// repository.go

package news

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rossoverde/supporters/internal/core"
)

type Repository interface {
	ListPublished(ctx context.Context) ([]Post, error)
	ListAll(ctx context.Context) ([]Post, error)
	GetPublished(ctx context.Context, id string) (*Post, error)
	Create(ctx context.Context, authorID string, readTime int, req CreateRequest) (*Post, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Post, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const postColumns = `id, title_en, title_fr, title_ar, excerpt_en, excerpt_fr,
	excerpt_ar, content_en, content_fr, content_ar, category_en, category_fr,
	category_ar, featured_image_url, is_featured, is_published, read_time,
	author_id, published_at, created_at, updated_at`

func (r *repository) ListPublished(ctx context.Context) ([]Post, error) {
	query := `SELECT ` + postColumns + `
		FROM news_posts
		WHERE is_published = TRUE
		ORDER BY published_at DESC`

	out := []Post{}
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	return out, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Post, error) {
	query := `SELECT ` + postColumns + ` FROM news_posts ORDER BY created_at DESC`

	out := []Post{}
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return out, nil
}

func (r *repository) GetPublished(ctx context.Context, id string) (*Post, error) {
	query := `SELECT ` + postColumns + `
		FROM news_posts
		WHERE id = $1 AND is_published = TRUE`

	var p Post
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get post: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &p, nil
}

func (r *repository) Create(
	ctx context.Context,
	authorID string,
	readTime int,
	req CreateRequest,
) (*Post, error) {
	query := `
		INSERT INTO news_posts (
			title_en, title_fr, title_ar, excerpt_en, excerpt_fr, excerpt_ar,
			content_en, content_fr, content_ar, category_en, category_fr,
			category_ar, featured_image_url, is_featured, is_published,
			read_time, author_id, published_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, NULLIF($17, '')::uuid, NOW())
		RETURNING ` + postColumns

	var p Post
	err := r.db.GetContext(ctx, &p, query,
		req.TitleEN,
		req.TitleFR,
		req.TitleAR,
		req.ExcerptEN,
		req.ExcerptFR,
		req.ExcerptAR,
		req.ContentEN,
		req.ContentFR,
		req.ContentAR,
		req.CategoryEN,
		req.CategoryFR,
		req.CategoryAR,
		req.FeaturedImageURL,
		req.IsFeatured,
		req.IsPublished,
		readTime,
		authorID,
	)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &p, nil
}

func (r *repository) Update(
	ctx context.Context,
	id string,
	req UpdateRequest,
) (*Post, error) {
	a := core.NewAssignments(id)
	core.SetIf(a, "title_en", req.TitleEN)
	core.SetIf(a, "title_fr", req.TitleFR)
	core.SetIf(a, "title_ar", req.TitleAR)
	core.SetIf(a, "excerpt_en", req.ExcerptEN)
	core.SetIf(a, "excerpt_fr", req.ExcerptFR)
	core.SetIf(a, "excerpt_ar", req.ExcerptAR)
	core.SetIf(a, "content_en", req.ContentEN)
	core.SetIf(a, "content_fr", req.ContentFR)
	core.SetIf(a, "content_ar", req.ContentAR)
	core.SetIf(a, "category_en", req.CategoryEN)
	core.SetIf(a, "category_fr", req.CategoryFR)
	core.SetIf(a, "category_ar", req.CategoryAR)
	core.SetIf(a, "featured_image_url", req.FeaturedImageURL)
	core.SetIf(a, "is_featured", req.IsFeatured)
	core.SetIf(a, "is_published", req.IsPublished)
	core.SetIf(a, "read_time", req.ReadTime)
	a.Raw("updated_at = NOW()")

	query := `UPDATE news_posts SET ` + a.Clause() +
		` WHERE id = $1 RETURNING ` + postColumns

	var p Post
	err := r.db.GetContext(ctx, &p, query, a.Args()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update post: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return &p, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM news_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete post: %w", core.ErrNotFound)
	}
	return nil
}
