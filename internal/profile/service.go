// AngelaMos | 2026
// service.go

package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/rossoverde/supporters/internal/core"
)

// Loader reads profiles through the cache and keeps the cache in step with
// every write it performs.
type Loader struct {
	repo  Repository
	cache Cache
}

func NewLoader(repo Repository, cache Cache) *Loader {
	return &Loader{repo: repo, cache: cache}
}

// Load returns core.ErrNotFound when the user has no profile and an error
// wrapping core.ErrUnavailable when the store could not be reached.
func (l *Loader) Load(ctx context.Context, userID string) (*Profile, error) {
	ctx, span := core.StartSpan(ctx, "profile.Load",
		attribute.String("user.id", userID),
	)
	defer span.End()

	if userID == "" {
		return nil, fmt.Errorf("load profile: %w", core.ErrUnauthorized)
	}

	if l.cache != nil {
		cached, err := l.cache.Get(ctx, userID)
		if err == nil {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return cached, nil
		}
		if !errors.Is(err, core.ErrCacheMiss) {
			slog.WarnContext(ctx, "profile cache read failed",
				"user_id", userID,
				"error", err,
			)
		}
	}

	p, err := l.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, err
		}
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("load profile: %w: %w", core.ErrUnavailable, err)
	}

	l.store(ctx, p)
	return p, nil
}

// Update writes the allowed fields and replaces the cached profile with the
// stored row, so the next Load is served without a database read.
func (l *Loader) Update(
	ctx context.Context,
	userID string,
	req UpdateRequest,
) (*Profile, error) {
	if req.IsEmpty() {
		return l.Load(ctx, userID)
	}

	p, err := l.repo.Update(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	l.store(ctx, p)
	return p, nil
}

func (l *Loader) AcceptCharter(
	ctx context.Context,
	userID, charterID, ipAddress, userAgent string,
) (*Profile, error) {
	p, err := l.repo.AcceptCharter(ctx, userID, charterID, ipAddress, userAgent)
	if err != nil {
		return nil, err
	}

	l.store(ctx, p)
	return p, nil
}

func (l *Loader) Get(ctx context.Context, userID string) (*Profile, error) {
	return l.repo.GetByID(ctx, userID)
}

func (l *Loader) List(
	ctx context.Context,
	params ListParams,
) ([]Profile, int, error) {
	return l.repo.List(ctx, params)
}

// Count is the number of supporter profiles, admins included.
func (l *Loader) Count(ctx context.Context) (int, error) {
	_, total, err := l.repo.List(ctx, ListParams{Page: 1, PageSize: 1})
	return total, err
}

// SetRole changes a user's role and drops the cached profile so the guard
// sees the new role on the next request.
func (l *Loader) SetRole(
	ctx context.Context,
	userID, role string,
) (*Profile, error) {
	parsed, err := ParseRole(role)
	if err != nil {
		return nil, err
	}

	p, err := l.repo.SetRole(ctx, userID, parsed)
	if err != nil {
		return nil, err
	}

	l.evict(ctx, p.ID)
	return p, nil
}

func (l *Loader) PromoteToAdmin(ctx context.Context, email string) (*Profile, error) {
	p, err := l.repo.SetRoleByEmail(ctx, email, RoleAdmin)
	if err != nil {
		return nil, err
	}

	l.evict(ctx, p.ID)
	return p, nil
}

func (l *Loader) store(ctx context.Context, p *Profile) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Set(ctx, p); err != nil {
		slog.WarnContext(ctx, "profile cache write failed",
			"user_id", p.ID,
			"error", err,
		)
	}
}

func (l *Loader) evict(ctx context.Context, userID string) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Delete(ctx, userID); err != nil {
		slog.WarnContext(ctx, "profile cache evict failed",
			"user_id", userID,
			"error", err,
		)
	}
}
