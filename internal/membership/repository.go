// AngelaMos | 2026
// repository.go

package membership

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rossoverde/supporters/internal/core"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]Membership, error)
	ListAll(ctx context.Context) ([]Membership, error)
	CreatePending(ctx context.Context, db core.DBTX, req PendingRequest) (*Membership, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Membership, error)
	CountActive(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const selectWithTier = `
	SELECT m.id, m.user_id, m.tier_id, m.status, m.start_date, m.end_date,
	       m.auto_renew, m.payment_method, m.created_at, m.updated_at,
	       t.name_en AS "tier.name_en", t.name_fr AS "tier.name_fr",
	       t.name_ar AS "tier.name_ar", t.price AS "tier.price",
	       t.currency AS "tier.currency"
	FROM memberships m
	JOIN membership_tiers t ON t.id = m.tier_id`

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]Membership, error) {
	query := selectWithTier + `
		WHERE m.user_id = $1
		ORDER BY m.created_at DESC`

	out := []Membership{}
	if err := r.db.SelectContext(ctx, &out, query, userID); err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	return out, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Membership, error) {
	query := selectWithTier + ` ORDER BY m.created_at DESC`

	out := []Membership{}
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("list all memberships: %w", err)
	}
	return out, nil
}

// CreatePending runs on db so that order creation can include it in its
// transaction.
func (r *repository) CreatePending(
	ctx context.Context,
	db core.DBTX,
	req PendingRequest,
) (*Membership, error) {
	if db == nil {
		db = r.db
	}

	query := `
		WITH inserted AS (
			INSERT INTO memberships (user_id, tier_id, status, payment_method)
			VALUES ($1, $2, 'pending', $3)
			RETURNING *
		)
		SELECT m.id, m.user_id, m.tier_id, m.status, m.start_date, m.end_date,
		       m.auto_renew, m.payment_method, m.created_at, m.updated_at,
		       t.name_en AS "tier.name_en", t.name_fr AS "tier.name_fr",
		       t.name_ar AS "tier.name_ar", t.price AS "tier.price",
		       t.currency AS "tier.currency"
		FROM inserted m
		JOIN membership_tiers t ON t.id = m.tier_id`

	var m Membership
	err := db.GetContext(ctx, &m, query, req.UserID, req.TierID, req.PaymentMethod)
	if err != nil {
		if core.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("create membership: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("create membership: %w", err)
	}
	return &m, nil
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	id string,
	req UpdateStatusRequest,
) (*Membership, error) {
	a := core.NewAssignments(id)
	a.Add("status", req.Status)
	core.SetIf(a, "start_date", req.StartDate)
	core.SetIf(a, "end_date", req.EndDate)
	a.Raw("updated_at = NOW()")

	query := `
		WITH updated AS (
			UPDATE memberships SET ` + a.Clause() + `
			WHERE id = $1
			RETURNING *
		)
		SELECT m.id, m.user_id, m.tier_id, m.status, m.start_date, m.end_date,
		       m.auto_renew, m.payment_method, m.created_at, m.updated_at,
		       t.name_en AS "tier.name_en", t.name_fr AS "tier.name_fr",
		       t.name_ar AS "tier.name_ar", t.price AS "tier.price",
		       t.currency AS "tier.currency"
		FROM updated m
		JOIN membership_tiers t ON t.id = m.tier_id`

	var m Membership
	err := r.db.GetContext(ctx, &m, query, a.Args()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update membership: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update membership: %w", err)
	}
	return &m, nil
}

func (r *repository) CountActive(ctx context.Context) (int, error) {
	query := `
		SELECT COUNT(*) FROM memberships
		WHERE status = 'active' AND (end_date IS NULL OR end_date > NOW())`

	var n int
	if err := r.db.GetContext(ctx, &n, query); err != nil {
		return 0, fmt.Errorf("count active memberships: %w", err)
	}
	return n, nil
}
