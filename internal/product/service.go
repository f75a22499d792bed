// AngelaMos | 2026
// service.go

package product

import (
	"context"
	"fmt"

	"github.com/rossoverde/supporters/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListActive(ctx context.Context) ([]Product, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) ListAll(ctx context.Context) ([]Product, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetActive(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Product, error) {
	if err := checkOriginalPrice(req.Price, req.OriginalPrice); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, req)
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateRequest,
) (*Product, error) {
	if req.Price != nil {
		if err := checkOriginalPrice(*req.Price, req.OriginalPrice); err != nil {
			return nil, err
		}
	}
	return s.repo.Update(ctx, id, req)
}

// Delete hides the product from the store. Past orders still reference it.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Deactivate(ctx, id)
}

func checkOriginalPrice(price float64, original *float64) error {
	if original != nil && *original < price {
		return fmt.Errorf(
			"original_price must not be below price: %w",
			core.ErrInvalidInput,
		)
	}
	return nil
}
