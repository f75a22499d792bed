// AngelaMos | 2026
// sdk.go

package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rossoverde/supporters/internal/guard"
	"github.com/rossoverde/supporters/internal/invoice"
	"github.com/rossoverde/supporters/internal/membership"
	"github.com/rossoverde/supporters/internal/order"
	"github.com/rossoverde/supporters/internal/product"
	"github.com/rossoverde/supporters/internal/profile"
	"github.com/rossoverde/supporters/internal/tier"
)

// SDK wires the client pieces together over one Storage.
type SDK struct {
	Client      *Client
	Sessions    *SessionProvider
	Profiles    *ProfileLoader
	Preferences *Preferences
}

func Open(baseURL string, store Storage, opts ...Option) (*SDK, error) {
	prefs := NewPreferences(store, "")

	c := New(baseURL, append([]Option{WithLanguage(prefs.Language)}, opts...)...)

	sessions, err := NewSessionProvider(c, store)
	if err != nil {
		return nil, fmt.Errorf("open sdk: %w", err)
	}

	return &SDK{
		Client:      c,
		Sessions:    sessions,
		Profiles:    NewProfileLoader(c, sessions),
		Preferences: prefs,
	}, nil
}

func (s *SDK) MemberGate() *Gate {
	return NewGate(s.Sessions, s.Profiles, guard.RequireSession)
}

func (s *SDK) AdminGate() *Gate {
	return NewGate(s.Sessions, s.Profiles, guard.RequireAdmin)
}

func (s *SDK) Tiers() *Resource[tier.Tier] {
	return NewResource[tier.Tier](s.Client, Paths{Read: "/v1/tiers", Write: "/v1/admin/membership-tiers"})
}

func (s *SDK) Products() *Resource[product.Product] {
	return NewResource[product.Product](s.Client, Paths{Read: "/v1/products", Write: "/v1/admin/products"})
}

func (s *SDK) Orders() *Resource[order.Order] {
	return NewResource[order.Order](s.Client, Paths{Read: "/v1/orders"})
}

func (s *SDK) Memberships() *Resource[membership.Membership] {
	return NewResource[membership.Membership](s.Client, Paths{Read: "/v1/memberships"})
}

func (s *SDK) Invoices() *Resource[invoice.Invoice] {
	return NewResource[invoice.Invoice](s.Client, Paths{Read: "/v1/invoices"})
}

func (s *SDK) Users() *Resource[profile.Profile] {
	return NewResource[profile.Profile](s.Client, Paths{Read: "/v1/admin/users"})
}

// PromoteToAdmin calls the privileged promote_user_to_admin procedure.
func (s *SDK) PromoteToAdmin(ctx context.Context, email string) Result[profile.Profile] {
	var p profile.Profile
	err := s.Client.Do(ctx, http.MethodPost, "/v1/rpc/promote_user_to_admin", profile.PromoteRequest{
		UserEmail: email,
	}, &p)
	if err != nil {
		return Result[profile.Profile]{Error: Message(err)}
	}
	return Result[profile.Profile]{Data: &p}
}
