// AngelaMos | 2026
// cache.go

package profile

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rossoverde/supporters/internal/core"
)

// Cache holds loaded profiles keyed by user id. Get returns core.ErrCacheMiss
// when nothing is stored.
type Cache interface {
	Get(ctx context.Context, id string) (*Profile, error)
	Set(ctx context.Context, p *Profile) error
	Delete(ctx context.Context, id string) error
}

type redisCache struct {
	store *core.JSONCache
}

func NewRedisCache(client redis.Cmdable, ttl time.Duration) Cache {
	return &redisCache{store: core.NewJSONCache(client, "profile", ttl)}
}

func (c *redisCache) Get(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	if err := c.store.Get(ctx, id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *redisCache) Set(ctx context.Context, p *Profile) error {
	return c.store.Set(ctx, p.ID, p)
}

func (c *redisCache) Delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, id)
}
