// AngelaMos | 2026
// entity.go

package product

import (
	"time"

	"github.com/rossoverde/supporters/internal/i18n"
)

type Product struct {
	ID            string    `db:"id"             json:"id"`
	NameEN        string    `db:"name_en"        json:"name_en"`
	NameFR        string    `db:"name_fr"        json:"name_fr"`
	NameAR        string    `db:"name_ar"        json:"name_ar"`
	DescriptionEN *string   `db:"description_en" json:"description_en"`
	DescriptionFR *string   `db:"description_fr" json:"description_fr"`
	DescriptionAR *string   `db:"description_ar" json:"description_ar"`
	Price         float64   `db:"price"          json:"price"`
	OriginalPrice *float64  `db:"original_price" json:"original_price"`
	Currency      string    `db:"currency"       json:"currency"`
	StockQuantity int       `db:"stock_quantity" json:"stock_quantity"`
	CategoryEN    *string   `db:"category_en"    json:"category_en"`
	CategoryFR    *string   `db:"category_fr"    json:"category_fr"`
	CategoryAR    *string   `db:"category_ar"    json:"category_ar"`
	ImageURL      *string   `db:"image_url"      json:"image_url"`
	IsActive      bool      `db:"is_active"      json:"is_active"`
	CreatedAt     time.Time `db:"created_at"     json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"     json:"updated_at"`
}

func (p *Product) Name(lang i18n.Language) string {
	return i18n.Pick(lang, p.NameEN, p.NameFR, p.NameAR)
}

func (p *Product) Description(lang i18n.Language) string {
	return i18n.PickPtr(lang, p.DescriptionEN, p.DescriptionFR, p.DescriptionAR)
}

func (p *Product) Category(lang i18n.Language) string {
	return i18n.PickPtr(lang, p.CategoryEN, p.CategoryFR, p.CategoryAR)
}

// OnSale reports whether a higher original price is shown struck through.
func (p *Product) OnSale() bool {
	return p.OriginalPrice != nil && *p.OriginalPrice > p.Price
}

func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}
