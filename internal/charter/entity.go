// AngelaMos | 2026
// entity.go

package charter

import (
	"html/template"
	"time"

	"github.com/rossoverde/supporters/internal/core"
	"github.com/rossoverde/supporters/internal/i18n"
)

// Charter is one published version of the supporter charter. Exactly one
// version is active at a time.
type Charter struct {
	ID            string    `db:"id"             json:"id"`
	Version       string    `db:"version"        json:"version"`
	TitleEN       string    `db:"title_en"       json:"title_en"`
	TitleFR       string    `db:"title_fr"       json:"title_fr"`
	TitleAR       string    `db:"title_ar"       json:"title_ar"`
	ContentEN     string    `db:"content_en"     json:"content_en"`
	ContentFR     string    `db:"content_fr"     json:"content_fr"`
	ContentAR     string    `db:"content_ar"     json:"content_ar"`
	IsActive      bool      `db:"is_active"      json:"is_active"`
	EffectiveDate time.Time `db:"effective_date" json:"effective_date"`
	CreatedAt     time.Time `db:"created_at"     json:"created_at"`
}

func (c *Charter) Title(lang i18n.Language) string {
	return i18n.Pick(lang, c.TitleEN, c.TitleFR, c.TitleAR)
}

func (c *Charter) HTML(lang i18n.Language) template.HTML {
	return core.Markdown(i18n.Pick(lang, c.ContentEN, c.ContentFR, c.ContentAR))
}
