// AngelaMos | 2026
// entity.go

package membership

import (
	"fmt"
	"time"

	"github.com/rossoverde/supporters/internal/core"
	"github.com/rossoverde/supporters/internal/i18n"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
	StatusPending   Status = "pending"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive, StatusExpired, StatusCancelled, StatusPending:
		return Status(s), nil
	}
	return "", fmt.Errorf("parse membership status %q: %w", s, core.ErrInvalidInput)
}

// TierSummary is the slice of the tier shown next to a membership.
type TierSummary struct {
	NameEN   string  `db:"name_en"  json:"name_en"`
	NameFR   string  `db:"name_fr"  json:"name_fr"`
	NameAR   string  `db:"name_ar"  json:"name_ar"`
	Price    float64 `db:"price"    json:"price"`
	Currency string  `db:"currency" json:"currency"`
}

func (t TierSummary) Name(lang i18n.Language) string {
	return i18n.Pick(lang, t.NameEN, t.NameFR, t.NameAR)
}

type Membership struct {
	ID            string      `db:"id"             json:"id"`
	UserID        string      `db:"user_id"        json:"user_id"`
	TierID        string      `db:"tier_id"        json:"tier_id"`
	Status        Status      `db:"status"         json:"status"`
	StartDate     *time.Time  `db:"start_date"     json:"start_date"`
	EndDate       *time.Time  `db:"end_date"       json:"end_date"`
	AutoRenew     bool        `db:"auto_renew"     json:"auto_renew"`
	PaymentMethod *string     `db:"payment_method" json:"payment_method"`
	CreatedAt     time.Time   `db:"created_at"     json:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at"     json:"updated_at"`
	Tier          TierSummary `db:"tier"           json:"tier"`
}

// IsCurrent reports whether the membership is active and not past its end
// date.
func (m *Membership) IsCurrent(now time.Time) bool {
	if m.Status != StatusActive {
		return false
	}
	return m.EndDate == nil || m.EndDate.After(now)
}
