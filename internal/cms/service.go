// AngelaMos | 2026
// service.go

package cms

import (
	"context"
	"fmt"
	"regexp"

	"github.com/rossoverde/supporters/internal/core"
)

var pageKeyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Published returns published blocks keyed by page_key.
func (s *Service) Published(ctx context.Context) (map[string]Content, error) {
	list, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]Content, len(list))
	for _, c := range list {
		byKey[c.PageKey] = c
	}
	return byKey, nil
}

func (s *Service) Get(ctx context.Context, pageKey string) (*Content, error) {
	return s.repo.GetPublished(ctx, pageKey)
}

func (s *Service) ListAll(ctx context.Context) ([]Content, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) Upsert(
	ctx context.Context,
	pageKey string,
	req UpsertRequest,
) (*Content, error) {
	if !pageKeyPattern.MatchString(pageKey) {
		return nil, fmt.Errorf("page key %q: %w", pageKey, core.ErrInvalidInput)
	}
	return s.repo.Upsert(ctx, pageKey, req)
}
