// AngelaMos | 2026
// service.go

package order

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/rossoverde/supporters/internal/core"
	"github.com/rossoverde/supporters/internal/i18n"
	"github.com/rossoverde/supporters/internal/membership"
)

// MembershipOpener starts a pending membership inside the order transaction.
type MembershipOpener interface {
	OpenPending(
		ctx context.Context,
		tx core.DBTX,
		req membership.PendingRequest,
	) (*membership.Membership, error)
}

type ConfirmationMailer interface {
	SendOrderConfirmation(
		ctx context.Context,
		to string,
		lang i18n.Language,
		o *Order,
	) error
}

type Service struct {
	repo        Repository
	memberships MembershipOpener
	mailer      ConfirmationMailer
	now         func() time.Time
}

func NewService(
	repo Repository,
	memberships MembershipOpener,
	mailer ConfirmationMailer,
) *Service {
	return &Service{
		repo:        repo,
		memberships: memberships,
		mailer:      mailer,
		now:         time.Now,
	}
}

// Price turns the requested lines into a storable order. Each line must name
// exactly one of a product or a membership tier.
func Price(userID string, req CreateRequest) (NewOrder, error) {
	o := NewOrder{
		UserID:          userID,
		Currency:        req.Currency,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		Notes:           req.Notes,
		Items:           make([]NewItem, 0, len(req.Items)),
	}
	if o.Currency == "" {
		o.Currency = "MAD"
	}

	if len(req.Items) == 0 {
		return NewOrder{}, fmt.Errorf("order has no items: %w", core.ErrInvalidInput)
	}

	var total int64
	for i, it := range req.Items {
		if (it.ProductID == nil) == (it.MembershipTierID == nil) {
			return NewOrder{}, fmt.Errorf(
				"item %d must reference exactly one of product_id or membership_tier_id: %w",
				i, core.ErrInvalidInput,
			)
		}
		if it.Quantity < 1 {
			return NewOrder{}, fmt.Errorf(
				"item %d quantity must be at least 1: %w", i, core.ErrInvalidInput,
			)
		}

		line := cents(it.UnitPrice) * int64(it.Quantity)
		total += line

		o.Items = append(o.Items, NewItem{
			ProductID:        it.ProductID,
			MembershipTierID: it.MembershipTierID,
			Quantity:         it.Quantity,
			UnitPrice:        fromCents(cents(it.UnitPrice)),
			TotalPrice:       fromCents(line),
		})
	}

	o.TotalAmount = fromCents(total)
	return o, nil
}

// Create stores the order and its items in one transaction and opens a
// pending membership for every tier bought. The confirmation email is sent
// after commit and its failure does not fail the order.
func (s *Service) Create(
	ctx context.Context,
	userID, email string,
	req CreateRequest,
) (*Order, error) {
	ctx, span := core.StartSpan(ctx, "order.Create",
		attribute.String("user.id", userID),
		attribute.Int("order.items", len(req.Items)),
	)
	defer span.End()

	priced, err := Price(userID, req)
	if err != nil {
		return nil, err
	}

	o, err := s.repo.Create(ctx, priced, func(ctx context.Context, tx core.DBTX, o *Order) error {
		for _, it := range o.Items {
			if !it.IsMembership() {
				continue
			}
			if _, err := s.memberships.OpenPending(ctx, tx, membership.PendingRequest{
				UserID:        userID,
				TierID:        *it.MembershipTierID,
				PaymentMethod: o.PaymentMethod,
			}); err != nil {
				return fmt.Errorf("open membership: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("order.id", o.ID),
		attribute.Float64("order.total", o.TotalAmount),
	)

	if s.mailer != nil && email != "" {
		if err := s.mailer.SendOrderConfirmation(ctx, email, i18n.FromContext(ctx), o); err != nil {
			slog.WarnContext(ctx, "order confirmation email failed",
				"order_id", o.ID,
				"error", err,
			)
		}
	}

	return o, nil
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) GetMine(ctx context.Context, id, userID string) (*Order, error) {
	return s.repo.GetOwned(ctx, id, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]Order, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) UpdateStatus(
	ctx context.Context,
	id string,
	req UpdateStatusRequest,
) (*Order, error) {
	if _, err := ParseStatus(req.Status); err != nil {
		return nil, err
	}
	return s.repo.UpdateStatus(ctx, id, req)
}

// Summary covers the trailing window ending now.
func (s *Service) Summary(ctx context.Context, window time.Duration) (Summary, error) {
	return s.repo.Summary(ctx, s.now().Add(-window))
}
