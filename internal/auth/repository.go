// AngelaMos | 2026
// repository.go

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rossoverde/supporters/internal/core"
)

type Repository interface {
	Create(ctx context.Context, token *RefreshToken) error
	FindByHash(ctx context.Context, tokenHash string) (*RefreshToken, error)
	FindByID(ctx context.Context, id string) (*RefreshToken, error)
	MarkAsUsed(ctx context.Context, id, replacedByID string) error
	RevokeByID(ctx context.Context, id string) error
	RevokeByFamilyID(ctx context.Context, familyID string) error
	RevokeAllForUser(ctx context.Context, userID string) error
	GetActiveSessionsForUser(
		ctx context.Context,
		userID string,
	) ([]RefreshToken, error)
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

type AccountRepository interface {
	Create(ctx context.Context, email, passwordHash string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
	IncrementTokenVersion(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type accountRepository struct {
	db core.DBTX
}

func NewAccountRepository(db core.DBTX) AccountRepository {
	return &accountRepository{db: db}
}

const accountColumns = `id, email, password_hash, token_version, created_at, updated_at`

const tokenColumns = `
	id, user_id, token_hash, family_id, expires_at, created_at,
	is_used, used_at, revoked_at, replaced_by_id, user_agent, ip_address`

// getOne runs a single-row query and maps sql.ErrNoRows to core.ErrNotFound.
func getOne[T any](
	ctx context.Context,
	db core.DBTX,
	op, query string,
	args ...any,
) (*T, error) {
	var dest T
	err := db.GetContext(ctx, &dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &dest, nil
}

// exec returns the affected row count. With mustHit set, zero rows is
// core.ErrNotFound.
func exec(
	ctx context.Context,
	db core.DBTX,
	mustHit bool,
	op, query string,
	args ...any,
) (int64, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if mustHit && rows == 0 {
		return 0, fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}
	return rows, nil
}

func (r *accountRepository) Create(
	ctx context.Context,
	email, passwordHash string,
) (*Account, error) {
	account, err := getOne[Account](ctx, r.db, "create account", `
		INSERT INTO accounts (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING `+accountColumns,
		uuid.NewString(), normalizeEmail(email), passwordHash,
	)
	if core.IsUniqueViolation(err) {
		return nil, fmt.Errorf("create account: %w", core.ErrDuplicateKey)
	}
	return account, err
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	return getOne[Account](ctx, r.db, "get account by email",
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1`,
		normalizeEmail(email),
	)
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*Account, error) {
	return getOne[Account](ctx, r.db, "get account",
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

// IncrementTokenVersion invalidates every access token issued so far.
func (r *accountRepository) IncrementTokenVersion(ctx context.Context, id string) error {
	_, err := exec(ctx, r.db, true, "increment token version", `
		UPDATE accounts
		SET token_version = token_version + 1, updated_at = NOW()
		WHERE id = $1`, id)
	return err
}

func (r *accountRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	_, err := exec(ctx, r.db, true, "update password", `
		UPDATE accounts
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1`, id, passwordHash)
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *repository) Create(ctx context.Context, token *RefreshToken) error {
	err := r.db.GetContext(ctx, &token.CreatedAt, `
		INSERT INTO refresh_tokens (
			id, user_id, token_hash, family_id, expires_at, user_agent, ip_address
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		token.ID, token.UserID, token.TokenHash, token.FamilyID,
		token.ExpiresAt, token.UserAgent, token.IPAddress,
	)
	if err != nil {
		return fmt.Errorf("create refresh token: %w", err)
	}
	return nil
}

func (r *repository) FindByHash(ctx context.Context, tokenHash string) (*RefreshToken, error) {
	return getOne[RefreshToken](ctx, r.db, "find refresh token by hash",
		`SELECT `+tokenColumns+` FROM refresh_tokens WHERE token_hash = $1`, tokenHash)
}

func (r *repository) FindByID(ctx context.Context, id string) (*RefreshToken, error) {
	return getOne[RefreshToken](ctx, r.db, "find refresh token",
		`SELECT `+tokenColumns+` FROM refresh_tokens WHERE id = $1`, id)
}

// MarkAsUsed fails with core.ErrNotFound when the token was already rotated,
// which is how concurrent refreshes of one token are detected.
func (r *repository) MarkAsUsed(ctx context.Context, id, replacedByID string) error {
	_, err := exec(ctx, r.db, true, "mark refresh token used", `
		UPDATE refresh_tokens
		SET is_used = true, used_at = NOW(), replaced_by_id = $2
		WHERE id = $1 AND is_used = false`, id, replacedByID)
	return err
}

const revokeWhere = `UPDATE refresh_tokens SET revoked_at = NOW() WHERE revoked_at IS NULL AND `

func (r *repository) RevokeByID(ctx context.Context, id string) error {
	_, err := exec(ctx, r.db, true, "revoke refresh token", revokeWhere+`id = $1`, id)
	return err
}

func (r *repository) RevokeByFamilyID(ctx context.Context, familyID string) error {
	_, err := exec(ctx, r.db, false, "revoke token family", revokeWhere+`family_id = $1`, familyID)
	return err
}

func (r *repository) RevokeAllForUser(ctx context.Context, userID string) error {
	_, err := exec(ctx, r.db, false, "revoke sessions", revokeWhere+`user_id = $1`, userID)
	return err
}

func (r *repository) GetActiveSessionsForUser(
	ctx context.Context,
	userID string,
) ([]RefreshToken, error) {
	var tokens []RefreshToken
	err := r.db.SelectContext(ctx, &tokens, `
		SELECT `+tokenColumns+`
		FROM refresh_tokens
		WHERE user_id = $1
			AND revoked_at IS NULL
			AND is_used = false
			AND expires_at > NOW()
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list active sessions: %w", err)
	}
	return tokens, nil
}

// DeleteExpired purges tokens that expired before cutoff.
func (r *repository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	return exec(ctx, r.db, false, "delete expired tokens",
		`DELETE FROM refresh_tokens WHERE expires_at < $1`, cutoff)
}
