// AngelaMos | 2026
// service.go

package membership

import (
	"context"
	"fmt"
	"time"

	"github.com/rossoverde/supporters/internal/core"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]Membership, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]Membership, error) {
	return s.repo.ListAll(ctx)
}

// OpenPending starts a membership for a tier bought in an order. tx may be
// nil outside a transaction.
func (s *Service) OpenPending(
	ctx context.Context,
	tx core.DBTX,
	req PendingRequest,
) (*Membership, error) {
	return s.repo.CreatePending(ctx, tx, req)
}

// UpdateStatus stamps a start date when a membership is activated without
// one, and a one-year end date from that start.
func (s *Service) UpdateStatus(
	ctx context.Context,
	id string,
	req UpdateStatusRequest,
) (*Membership, error) {
	status, err := ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	if status == StatusActive && req.StartDate == nil {
		start := s.now().UTC()
		req.StartDate = &start
		if req.EndDate == nil {
			end := start.AddDate(1, 0, 0)
			req.EndDate = &end
		}
	}

	if req.StartDate != nil && req.EndDate != nil && !req.EndDate.After(*req.StartDate) {
		return nil, fmt.Errorf("end date before start date: %w", core.ErrInvalidInput)
	}

	return s.repo.UpdateStatus(ctx, id, req)
}

func (s *Service) CountActive(ctx context.Context) (int, error) {
	return s.repo.CountActive(ctx)
}
