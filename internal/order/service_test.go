// AngelaMos | 2026
// service_test.go

package order

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rossoverde/supporters/internal/core"
	"github.com/rossoverde/supporters/internal/i18n"
	"github.com/rossoverde/supporters/internal/membership"
	"github.com/rossoverde/supporters/internal/middleware"
)

const (
	scarfID = "6f1c2a8e-8c55-4f4e-9b53-0d1d0a4e6a01"
	goldID  = "0b7d3c1e-1f2a-4b5c-8d9e-0a1b2c3d4e5f"
)

type fakeRepo struct {
	orders    []*Order
	createErr error
	hookErr   error
}

func (f *fakeRepo) Create(ctx context.Context, o NewOrder, hook TxHook) (*Order, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}

	created := &Order{
		ID:            fmt.Sprintf("o%d", len(f.orders)+1),
		UserID:        o.UserID,
		Status:        StatusPending,
		TotalAmount:   o.TotalAmount,
		Currency:      o.Currency,
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     time.Now(),
	}
	for _, it := range o.Items {
		created.Items = append(created.Items, Item{
			OrderID:          created.ID,
			ProductID:        it.ProductID,
			MembershipTierID: it.MembershipTierID,
			Quantity:         it.Quantity,
			UnitPrice:        it.UnitPrice,
			TotalPrice:       it.TotalPrice,
		})
	}

	if hook != nil {
		if err := hook(ctx, nil, created); err != nil {
			f.hookErr = err
			return nil, fmt.Errorf("create order: %w", err)
		}
	}

	f.orders = append(f.orders, created)
	return created, nil
}

func (f *fakeRepo) ListByUser(_ context.Context, userID string) ([]Order, error) {
	out := []Order{}
	for i := len(f.orders) - 1; i >= 0; i-- {
		if f.orders[i].UserID == userID {
			out = append(out, *f.orders[i])
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAll(context.Context) ([]Order, error) {
	out := []Order{}
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeRepo) GetOwned(_ context.Context, id, userID string) (*Order, error) {
	for _, o := range f.orders {
		if o.ID == id && o.UserID == userID {
			return o, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id string, req UpdateStatusRequest) (*Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			o.Status = Status(req.Status)
			return o, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeRepo) Summary(context.Context, time.Time) (Summary, error) {
	s := Summary{Orders: len(f.orders)}
	for _, o := range f.orders {
		if o.Status == StatusCompleted {
			s.Revenue += o.TotalAmount
		}
	}
	return s, nil
}

type fakeMemberships struct {
	opened []membership.PendingRequest
	err    error
}

func (f *fakeMemberships) OpenPending(
	_ context.Context,
	_ core.DBTX,
	req membership.PendingRequest,
) (*membership.Membership, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.opened = append(f.opened, req)
	return &membership.Membership{UserID: req.UserID, TierID: req.TierID}, nil
}

type fakeMailer struct {
	sent []string
	lang i18n.Language
	err  error
}

func (m *fakeMailer) SendOrderConfirmation(_ context.Context, to string, lang i18n.Language, _ *Order) error {
	m.sent = append(m.sent, to)
	m.lang = lang
	return m.err
}

func ptr(s string) *string { return &s }

func TestPriceTotalsLines(t *testing.T) {
	o, err := Price("u1", CreateRequest{Items: []ItemRequest{
		{ProductID: ptr(scarfID), Quantity: 3, UnitPrice: 0.1},
		{MembershipTierID: ptr(goldID), Quantity: 1, UnitPrice: 499.99},
	}})
	require.NoError(t, err)

	assert.Equal(t, 500.29, o.TotalAmount)
	assert.Equal(t, 0.3, o.Items[0].TotalPrice)
	assert.Equal(t, "MAD", o.Currency)
}

func TestPriceRequiresExactlyOneReference(t *testing.T) {
	tests := []ItemRequest{
		{Quantity: 1, UnitPrice: 10},
		{ProductID: ptr(scarfID), MembershipTierID: ptr(goldID), Quantity: 1, UnitPrice: 10},
	}

	for _, it := range tests {
		_, err := Price("u1", CreateRequest{Items: []ItemRequest{it}})
		assert.ErrorIs(t, err, core.ErrInvalidInput)
	}
}

func TestCreateOpensMembershipAndSendsConfirmation(t *testing.T) {
	repo := &fakeRepo{}
	members := &fakeMemberships{}
	mailer := &fakeMailer{}
	svc := NewService(repo, members, mailer)

	ctx := i18n.WithLanguage(context.Background(), i18n.Arabic)
	o, err := svc.Create(ctx, "u1", "fan@example.com", CreateRequest{
		PaymentMethod: ptr("card"),
		Items: []ItemRequest{
			{ProductID: ptr(scarfID), Quantity: 2, UnitPrice: 120},
			{MembershipTierID: ptr(goldID), Quantity: 1, UnitPrice: 500},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, 740.0, o.TotalAmount)
	require.Len(t, members.opened, 1)
	assert.Equal(t, goldID, members.opened[0].TierID)
	assert.Equal(t, []string{"fan@example.com"}, mailer.sent)
	assert.Equal(t, i18n.Arabic, mailer.lang)
}

func TestCreateFailsWhenMembershipCannotOpen(t *testing.T) {
	repo := &fakeRepo{}
	members := &fakeMemberships{err: core.ErrNotFound}
	mailer := &fakeMailer{}

	_, err := NewService(repo, members, mailer).Create(context.Background(), "u1", "fan@example.com", CreateRequest{
		Items: []ItemRequest{{MembershipTierID: ptr(goldID), Quantity: 1, UnitPrice: 500}},
	})

	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Empty(t, repo.orders)
	assert.Empty(t, mailer.sent)
}

func TestCreateSurvivesMailFailure(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp down")}
	svc := NewService(&fakeRepo{}, &fakeMemberships{}, mailer)

	o, err := svc.Create(context.Background(), "u1", "fan@example.com", CreateRequest{
		Items: []ItemRequest{{ProductID: ptr(scarfID), Quantity: 1, UnitPrice: 120}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, o.ID)
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	_, err := NewService(&fakeRepo{}, nil, nil).UpdateStatus(context.Background(), "o1", UpdateStatusRequest{Status: "lost"})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestCreateHandler(t *testing.T) {
	repo := &fakeRepo{}
	h := NewHandler(NewService(repo, &fakeMemberships{}, nil))
	router := chi.NewRouter()
	h.RegisterRoutes(router)

	serve := func(body string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
		r = r.WithContext(middleware.WithClaims(r.Context(), &middleware.AccessTokenClaims{
			UserID: "u1",
			Email:  "fan@example.com",
		}))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, r)
		return rec
	}

	rec := serve(`{"items":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(`{"items":[{"quantity":1,"unit_price":10}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "exactly one")

	rec = serve(`{"items":[{"product_id":"` + scarfID + `","quantity":2,"unit_price":120}]}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_amount":240`)

	repo.createErr = fmt.Errorf("create order: %w", ErrPriceChanged)
	rec = serve(`{"items":[{"product_id":"` + scarfID + `","quantity":1,"unit_price":1}]}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
