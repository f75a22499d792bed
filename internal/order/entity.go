// AngelaMos | 2026
// entity.go

package order

import (
	"fmt"
	"math"
	"time"

	"github.com/rossoverde/supporters/internal/core"
	"github.com/rossoverde/supporters/internal/i18n"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusRefunded  Status = "refunded"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusCompleted, StatusCancelled, StatusRefunded:
		return Status(s), nil
	}
	return "", fmt.Errorf("parse order status %q: %w", s, core.ErrInvalidInput)
}

type Order struct {
	ID              string    `db:"id"               json:"id"`
	UserID          string    `db:"user_id"          json:"user_id"`
	Status          Status    `db:"status"           json:"status"`
	TotalAmount     float64   `db:"total_amount"     json:"total_amount"`
	Currency        string    `db:"currency"         json:"currency"`
	PaymentMethod   *string   `db:"payment_method"   json:"payment_method"`
	PaymentID       *string   `db:"payment_id"       json:"payment_id"`
	ShippingAddress *string   `db:"shipping_address" json:"shipping_address"`
	BillingAddress  *string   `db:"billing_address"  json:"billing_address"`
	Notes           *string   `db:"notes"            json:"notes"`
	CreatedAt       time.Time `db:"created_at"       json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"       json:"updated_at"`
	Items           []Item    `db:"-"                json:"items"`
}

// Item references exactly one of a product or a membership tier. The name
// columns come from whichever one it references.
type Item struct {
	ID               string    `db:"id"                 json:"id"`
	OrderID          string    `db:"order_id"           json:"order_id"`
	ProductID        *string   `db:"product_id"         json:"product_id"`
	MembershipTierID *string   `db:"membership_tier_id" json:"membership_tier_id"`
	Quantity         int       `db:"quantity"           json:"quantity"`
	UnitPrice        float64   `db:"unit_price"         json:"unit_price"`
	TotalPrice       float64   `db:"total_price"        json:"total_price"`
	CreatedAt        time.Time `db:"created_at"         json:"created_at"`
	NameEN           *string   `db:"name_en"            json:"name_en"`
	NameFR           *string   `db:"name_fr"            json:"name_fr"`
	NameAR           *string   `db:"name_ar"            json:"name_ar"`
}

func (i *Item) Name(lang i18n.Language) string {
	return i18n.PickPtr(lang, i.NameEN, i.NameFR, i.NameAR)
}

func (i *Item) IsMembership() bool {
	return i.MembershipTierID != nil
}

// Summary is the order side of the admin dashboard.
type Summary struct {
	Orders  int     `db:"orders"  json:"orders"`
	Revenue float64 `db:"revenue" json:"revenue"`
}

// cents avoids float drift when adding up line totals.
func cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromCents(c int64) float64 {
	return float64(c) / 100
}
