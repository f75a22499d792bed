// AngelaMos | 2026
// repository.go

package tier

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/rossoverde/supporters/internal/core"
)

type Repository interface {
	ListActive(ctx context.Context) ([]Tier, error)
	ListAll(ctx context.Context) ([]Tier, error)
	GetByID(ctx context.Context, id string) (*Tier, error)
	Create(ctx context.Context, req CreateRequest) (*Tier, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Tier, error)
	Deactivate(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const tierColumns = `id, name_en, name_fr, name_ar, description_en,
	description_fr, description_ar, price, currency, features_en, features_fr,
	features_ar, is_active, sort_order, created_at, updated_at`

func (r *repository) ListActive(ctx context.Context) ([]Tier, error) {
	query := `SELECT ` + tierColumns + `
		FROM membership_tiers
		WHERE is_active = TRUE
		ORDER BY sort_order ASC`

	tiers := []Tier{}
	if err := r.db.SelectContext(ctx, &tiers, query); err != nil {
		return nil, fmt.Errorf("list active tiers: %w", err)
	}
	return tiers, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Tier, error) {
	query := `SELECT ` + tierColumns + `
		FROM membership_tiers
		ORDER BY sort_order ASC, created_at ASC`

	tiers := []Tier{}
	if err := r.db.SelectContext(ctx, &tiers, query); err != nil {
		return nil, fmt.Errorf("list tiers: %w", err)
	}
	return tiers, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Tier, error) {
	query := `SELECT ` + tierColumns + ` FROM membership_tiers WHERE id = $1`

	var t Tier
	err := r.db.GetContext(ctx, &t, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get tier: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get tier: %w", err)
	}
	return &t, nil
}

func (r *repository) Create(ctx context.Context, req CreateRequest) (*Tier, error) {
	query := `
		INSERT INTO membership_tiers (
			name_en, name_fr, name_ar, description_en, description_fr,
			description_ar, price, currency, features_en, features_fr,
			features_ar, sort_order, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + tierColumns

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	var t Tier
	err := r.db.GetContext(ctx, &t, query,
		req.NameEN,
		req.NameFR,
		req.NameAR,
		req.DescriptionEN,
		req.DescriptionFR,
		req.DescriptionAR,
		req.Price,
		currencyOrDefault(req.Currency),
		pq.StringArray(nonNil(req.FeaturesEN)),
		pq.StringArray(nonNil(req.FeaturesFR)),
		pq.StringArray(nonNil(req.FeaturesAR)),
		req.SortOrder,
		isActive,
	)
	if err != nil {
		return nil, fmt.Errorf("create tier: %w", err)
	}
	return &t, nil
}

func (r *repository) Update(
	ctx context.Context,
	id string,
	req UpdateRequest,
) (*Tier, error) {
	a := core.NewAssignments(id)
	core.SetIf(a, "name_en", req.NameEN)
	core.SetIf(a, "name_fr", req.NameFR)
	core.SetIf(a, "name_ar", req.NameAR)
	core.SetIf(a, "description_en", req.DescriptionEN)
	core.SetIf(a, "description_fr", req.DescriptionFR)
	core.SetIf(a, "description_ar", req.DescriptionAR)
	core.SetIf(a, "price", req.Price)
	core.SetIf(a, "currency", req.Currency)
	if req.FeaturesEN != nil {
		a.Add("features_en", pq.StringArray(nonNil(*req.FeaturesEN)))
	}
	if req.FeaturesFR != nil {
		a.Add("features_fr", pq.StringArray(nonNil(*req.FeaturesFR)))
	}
	if req.FeaturesAR != nil {
		a.Add("features_ar", pq.StringArray(nonNil(*req.FeaturesAR)))
	}
	core.SetIf(a, "sort_order", req.SortOrder)
	core.SetIf(a, "is_active", req.IsActive)
	a.Raw("updated_at = NOW()")

	query := `UPDATE membership_tiers SET ` + a.Clause() +
		` WHERE id = $1 RETURNING ` + tierColumns

	var t Tier
	err := r.db.GetContext(ctx, &t, query, a.Args()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update tier: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update tier: %w", err)
	}
	return &t, nil
}

func (r *repository) Deactivate(ctx context.Context, id string) error {
	query := `
		UPDATE membership_tiers
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate tier: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deactivate tier: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("deactivate tier: %w", core.ErrNotFound)
	}
	return nil
}

func currencyOrDefault(c string) string {
	if c == "" {
		return "MAD"
	}
	return c
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
