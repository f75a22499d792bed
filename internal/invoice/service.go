// AngelaMos | 2026
// service.go

package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rossoverde/supporters/internal/core"
	"github.com/rossoverde/supporters/internal/order"
)

type OrderSource interface {
	GetMine(ctx context.Context, id, userID string) (*order.Order, error)
}

type Service struct {
	repo   Repository
	orders OrderSource
	now    func() time.Time
}

func NewService(repo Repository, orders OrderSource) *Service {
	return &Service{repo: repo, orders: orders, now: time.Now}
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]Invoice, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Generate issues an invoice for one of the user's own orders. The total is
// the order's total; a number collision is retried once.
func (s *Service) Generate(
	ctx context.Context,
	userID string,
	req GenerateRequest,
) (*Invoice, error) {
	o, err := s.orders.GetMine(ctx, req.OrderID, userID)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for range 2 {
		now := s.now().UTC()
		number, err := NewNumber(now)
		if err != nil {
			return nil, err
		}

		inv, err := s.repo.Create(ctx, &Invoice{
			OrderID:       o.ID,
			UserID:        userID,
			InvoiceNumber: number,
			IssueDate:     now,
			TotalAmount:   o.TotalAmount,
			Currency:      o.Currency,
			Status:        StatusIssued,
		})
		if err == nil {
			return inv, nil
		}
		if !errors.Is(err, core.ErrDuplicateKey) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("generate invoice: %w", lastErr)
}

// Document returns the invoice and, when still present, its order for
// rendering.
func (s *Service) Document(
	ctx context.Context,
	id, userID string,
) (*Invoice, *order.Order, error) {
	inv, err := s.repo.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, nil, err
	}

	o, err := s.orders.GetMine(ctx, inv.OrderID, userID)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		return nil, nil, err
	}
	return inv, o, nil
}
