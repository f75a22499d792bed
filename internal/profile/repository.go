// AngelaMos | 2026
// repository.go

package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rossoverde/supporters/internal/core"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Profile, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Profile, error)
	AcceptCharter(
		ctx context.Context,
		id, charterID, ipAddress, userAgent string,
	) (*Profile, error)
	SetRole(ctx context.Context, id string, role Role) (*Profile, error)
	SetRoleByEmail(ctx context.Context, email string, role Role) (*Profile, error)
	List(ctx context.Context, params ListParams) ([]Profile, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const profileColumns = `id, email, full_name, phone, address, city, country,
	postal_code, role, charter_accepted, charter_accepted_at, created_at, updated_at`

func (r *repository) GetByID(ctx context.Context, id string) (*Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	var p Profile
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return &p, nil
}

func (r *repository) Update(
	ctx context.Context,
	id string,
	req UpdateRequest,
) (*Profile, error) {
	a := core.NewAssignments(id)
	a.Raw("updated_at = NOW()")
	core.SetIf(a, "full_name", req.FullName)
	core.SetIf(a, "phone", req.Phone)
	core.SetIf(a, "address", req.Address)
	core.SetIf(a, "city", req.City)
	core.SetIf(a, "country", req.Country)
	core.SetIf(a, "postal_code", req.PostalCode)
	if req.CharterAccepted != nil {
		a.Add("charter_accepted", *req.CharterAccepted)
		a.Raw("charter_accepted_at = CASE WHEN " + a.Placeholder() +
			" THEN COALESCE(charter_accepted_at, NOW()) END")
	}

	query := `UPDATE profiles SET ` + a.Clause() +
		` WHERE id = $1 RETURNING ` + profileColumns

	var p Profile
	err := r.db.GetContext(ctx, &p, query, a.Args()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return &p, nil
}

// AcceptCharter records the acceptance and flips the profile flag in one
// statement. No row comes back when the charter is unknown or inactive.
func (r *repository) AcceptCharter(
	ctx context.Context,
	id, charterID, ipAddress, userAgent string,
) (*Profile, error) {
	query := `
		WITH charter AS (
			SELECT id FROM supporter_charter
			WHERE id = $2 AND is_active = TRUE
		), accepted AS (
			INSERT INTO charter_acceptances (user_id, charter_id, ip_address, user_agent)
			SELECT $1, charter.id, $3, $4 FROM charter
			ON CONFLICT (user_id, charter_id) DO UPDATE
				SET accepted_at = NOW(),
				    ip_address = EXCLUDED.ip_address,
				    user_agent = EXCLUDED.user_agent
			RETURNING accepted_at
		)
		UPDATE profiles AS p
		SET charter_accepted = TRUE,
		    charter_accepted_at = accepted.accepted_at,
		    updated_at = NOW()
		FROM accepted
		WHERE p.id = $1
		RETURNING p.id, p.email, p.full_name, p.phone, p.address, p.city,
		          p.country, p.postal_code, p.role, p.charter_accepted,
		          p.charter_accepted_at, p.created_at, p.updated_at`

	var p Profile
	err := r.db.GetContext(ctx, &p, query, id, charterID, ipAddress, userAgent)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("accept charter: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("accept charter: %w", err)
	}

	return &p, nil
}

func (r *repository) SetRole(
	ctx context.Context,
	id string,
	role Role,
) (*Profile, error) {
	query := `
		UPDATE profiles
		SET role = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + profileColumns

	var p Profile
	err := r.db.GetContext(ctx, &p, query, id, role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("set role: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("set role: %w", err)
	}

	return &p, nil
}

func (r *repository) SetRoleByEmail(
	ctx context.Context,
	email string,
	role Role,
) (*Profile, error) {
	query := `
		UPDATE profiles
		SET role = $2, updated_at = NOW()
		WHERE lower(email) = lower($1)
		RETURNING ` + profileColumns

	var p Profile
	err := r.db.GetContext(ctx, &p, query, email, role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("set role by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("set role by email: %w", err)
	}

	return &p, nil
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
) ([]Profile, int, error) {
	params.Normalize()

	conditions := []string{"TRUE"}
	var args []any

	if params.Search != "" {
		args = append(args, "%"+escapeLike(params.Search)+"%")
		conditions = append(conditions, fmt.Sprintf(
			"(email ILIKE $%d OR full_name ILIKE $%d)", len(args), len(args)))
	}

	if params.Role != "" {
		args = append(args, params.Role)
		conditions = append(conditions, fmt.Sprintf("role = $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM profiles WHERE " + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count profiles: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT `+profileColumns+`
		FROM profiles
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)

	args = append(args, params.PageSize, params.Offset())

	profiles := []Profile{}
	if err := r.db.SelectContext(ctx, &profiles, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list profiles: %w", err)
	}

	return profiles, total, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
