// AngelaMos | 2026
// service.go

package charter

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Active(ctx context.Context) (*Charter, error) {
	return s.repo.GetActive(ctx)
}

func (s *Service) List(ctx context.Context) ([]Charter, error) {
	return s.repo.List(ctx)
}

func (s *Service) Publish(ctx context.Context, req PublishRequest) (*Charter, error) {
	return s.repo.Publish(ctx, req)
}
