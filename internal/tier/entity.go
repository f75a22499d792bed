// AngelaMos | 2026
// entity.go

package tier

import (
	"time"

	"github.com/lib/pq"

	"github.com/rossoverde/supporters/internal/i18n"
)

type Tier struct {
	ID            string         `db:"id"             json:"id"`
	NameEN        string         `db:"name_en"        json:"name_en"`
	NameFR        string         `db:"name_fr"        json:"name_fr"`
	NameAR        string         `db:"name_ar"        json:"name_ar"`
	DescriptionEN *string        `db:"description_en" json:"description_en"`
	DescriptionFR *string        `db:"description_fr" json:"description_fr"`
	DescriptionAR *string        `db:"description_ar" json:"description_ar"`
	Price         float64        `db:"price"          json:"price"`
	Currency      string         `db:"currency"       json:"currency"`
	FeaturesEN    pq.StringArray `db:"features_en"    json:"features_en"`
	FeaturesFR    pq.StringArray `db:"features_fr"    json:"features_fr"`
	FeaturesAR    pq.StringArray `db:"features_ar"    json:"features_ar"`
	IsActive      bool           `db:"is_active"      json:"is_active"`
	SortOrder     int            `db:"sort_order"     json:"sort_order"`
	CreatedAt     time.Time      `db:"created_at"     json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"     json:"updated_at"`
}

func (t *Tier) Name(lang i18n.Language) string {
	return i18n.Pick(lang, t.NameEN, t.NameFR, t.NameAR)
}

func (t *Tier) Description(lang i18n.Language) string {
	return i18n.PickPtr(lang, t.DescriptionEN, t.DescriptionFR, t.DescriptionAR)
}

// Features falls back to the English list when the localized one is empty.
func (t *Tier) Features(lang i18n.Language) []string {
	var list pq.StringArray
	switch lang {
	case i18n.French:
		list = t.FeaturesFR
	case i18n.Arabic:
		list = t.FeaturesAR
	default:
		list = t.FeaturesEN
	}
	if len(list) == 0 {
		return t.FeaturesEN
	}
	return list
}
