// AngelaMos | 2026
// repository.go

package charter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rossoverde/supporters/internal/core"
)

type Repository interface {
	GetActive(ctx context.Context) (*Charter, error)
	List(ctx context.Context) ([]Charter, error)
	Publish(ctx context.Context, req PublishRequest) (*Charter, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const charterColumns = `id, version, title_en, title_fr, title_ar, content_en,
	content_fr, content_ar, is_active, effective_date, created_at`

func (r *repository) GetActive(ctx context.Context) (*Charter, error) {
	query := `SELECT ` + charterColumns + `
		FROM supporter_charter
		WHERE is_active = TRUE
		ORDER BY effective_date DESC
		LIMIT 1`

	var c Charter
	err := r.db.GetContext(ctx, &c, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get active charter: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get active charter: %w", err)
	}
	return &c, nil
}

func (r *repository) List(ctx context.Context) ([]Charter, error) {
	query := `SELECT ` + charterColumns + `
		FROM supporter_charter
		ORDER BY effective_date DESC`

	out := []Charter{}
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("list charters: %w", err)
	}
	return out, nil
}

// Publish retires the active version and inserts the new one in a single
// transaction, so readers never see zero or two active versions.
func (r *repository) Publish(ctx context.Context, req PublishRequest) (*Charter, error) {
	var c Charter

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE supporter_charter SET is_active = FALSE WHERE is_active = TRUE`,
		); err != nil {
			return fmt.Errorf("retire charter: %w", err)
		}

		query := `
			INSERT INTO supporter_charter (
				version, title_en, title_fr, title_ar, content_en, content_fr,
				content_ar, is_active, effective_date
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, COALESCE($8, NOW()))
			RETURNING ` + charterColumns

		if err := tx.GetContext(ctx, &c, query,
			req.Version,
			req.TitleEN,
			req.TitleFR,
			req.TitleAR,
			req.ContentEN,
			req.ContentFR,
			req.ContentAR,
			req.EffectiveDate,
		); err != nil {
			return fmt.Errorf("insert charter: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("publish charter: %w", err)
	}

	return &c, nil
}
