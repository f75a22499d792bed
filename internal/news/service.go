// AngelaMos | 2026
// service.go

package news

import (
	"context"

	"github.com/rossoverde/supporters/internal/i18n"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListPublished(ctx context.Context) ([]Post, error) {
	return s.repo.ListPublished(ctx)
}

func (s *Service) ListAll(ctx context.Context) ([]Post, error) {
	return s.repo.ListAll(ctx)
}

// Get returns a published post with its body rendered for lang.
func (s *Service) Get(ctx context.Context, id string, lang i18n.Language) (*Rendered, error) {
	p, err := s.repo.GetPublished(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Rendered{Post: p, Language: lang, HTML: p.ContentHTML(lang)}, nil
}

// Create stamps published_at with the current time. Without an explicit
// read time one is estimated from the English content.
func (s *Service) Create(
	ctx context.Context,
	authorID string,
	req CreateRequest,
) (*Post, error) {
	readTime := req.ReadTime
	if readTime == 0 {
		content := ""
		if req.ContentEN != nil {
			content = *req.ContentEN
		}
		readTime = EstimateReadTime(content)
	}
	return s.repo.Create(ctx, authorID, readTime, req)
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Post, error) {
	return s.repo.Update(ctx, id, req)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
