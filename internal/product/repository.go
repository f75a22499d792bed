// AngelaMos | 2026
// repository.go

package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rossoverde/supporters/internal/core"
)

type Repository interface {
	ListActive(ctx context.Context) ([]Product, error)
	ListAll(ctx context.Context) ([]Product, error)
	GetActive(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, req CreateRequest) (*Product, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Product, error)
	Deactivate(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const productColumns = `id, name_en, name_fr, name_ar, description_en,
	description_fr, description_ar, price, original_price, currency,
	stock_quantity, category_en, category_fr, category_ar, image_url,
	is_active, created_at, updated_at`

func (r *repository) ListActive(ctx context.Context) ([]Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE is_active = TRUE
		ORDER BY created_at DESC`

	out := []Product{}
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("list active products: %w", err)
	}
	return out, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`

	out := []Product{}
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

func (r *repository) GetActive(ctx context.Context, id string) (*Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE id = $1 AND is_active = TRUE`

	var p Product
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get product: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, req CreateRequest) (*Product, error) {
	query := `
		INSERT INTO products (
			name_en, name_fr, name_ar, description_en, description_fr,
			description_ar, price, original_price, currency, stock_quantity,
			category_en, category_fr, category_ar, image_url, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + productColumns

	currency := req.Currency
	if currency == "" {
		currency = "MAD"
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	var p Product
	err := r.db.GetContext(ctx, &p, query,
		req.NameEN,
		req.NameFR,
		req.NameAR,
		req.DescriptionEN,
		req.DescriptionFR,
		req.DescriptionAR,
		req.Price,
		req.OriginalPrice,
		currency,
		req.StockQuantity,
		req.CategoryEN,
		req.CategoryFR,
		req.CategoryAR,
		req.ImageURL,
		isActive,
	)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &p, nil
}

func (r *repository) Update(
	ctx context.Context,
	id string,
	req UpdateRequest,
) (*Product, error) {
	a := core.NewAssignments(id)
	core.SetIf(a, "name_en", req.NameEN)
	core.SetIf(a, "name_fr", req.NameFR)
	core.SetIf(a, "name_ar", req.NameAR)
	core.SetIf(a, "description_en", req.DescriptionEN)
	core.SetIf(a, "description_fr", req.DescriptionFR)
	core.SetIf(a, "description_ar", req.DescriptionAR)
	core.SetIf(a, "price", req.Price)
	core.SetIf(a, "original_price", req.OriginalPrice)
	core.SetIf(a, "currency", req.Currency)
	core.SetIf(a, "stock_quantity", req.StockQuantity)
	core.SetIf(a, "category_en", req.CategoryEN)
	core.SetIf(a, "category_fr", req.CategoryFR)
	core.SetIf(a, "category_ar", req.CategoryAR)
	core.SetIf(a, "image_url", req.ImageURL)
	core.SetIf(a, "is_active", req.IsActive)
	a.Raw("updated_at = NOW()")

	query := `UPDATE products SET ` + a.Clause() +
		` WHERE id = $1 RETURNING ` + productColumns

	var p Product
	err := r.db.GetContext(ctx, &p, query, a.Args()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update product: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return &p, nil
}

func (r *repository) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE products SET is_active = FALSE, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("deactivate product: %w", core.ErrNotFound)
	}
	return nil
}
