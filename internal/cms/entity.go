// AngelaMos | 2026
// entity.go

package cms

import (
	"html/template"
	"time"

	"github.com/rossoverde/supporters/internal/core"
	"github.com/rossoverde/supporters/internal/i18n"
)

// Content is one editable page block addressed by a stable key such as
// "home_hero" or "about".
type Content struct {
	ID                string    `db:"id"                  json:"id"`
	PageKey           string    `db:"page_key"            json:"page_key"`
	TitleEN           *string   `db:"title_en"            json:"title_en"`
	TitleFR           *string   `db:"title_fr"            json:"title_fr"`
	TitleAR           *string   `db:"title_ar"            json:"title_ar"`
	ContentEN         *string   `db:"content_en"          json:"content_en"`
	ContentFR         *string   `db:"content_fr"          json:"content_fr"`
	ContentAR         *string   `db:"content_ar"          json:"content_ar"`
	MetaDescriptionEN *string   `db:"meta_description_en" json:"meta_description_en"`
	MetaDescriptionFR *string   `db:"meta_description_fr" json:"meta_description_fr"`
	MetaDescriptionAR *string   `db:"meta_description_ar" json:"meta_description_ar"`
	IsPublished       bool      `db:"is_published"        json:"is_published"`
	CreatedAt         time.Time `db:"created_at"          json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"          json:"updated_at"`
}

func (c *Content) Title(lang i18n.Language) string {
	return i18n.PickPtr(lang, c.TitleEN, c.TitleFR, c.TitleAR)
}

func (c *Content) MetaDescription(lang i18n.Language) string {
	return i18n.PickPtr(lang, c.MetaDescriptionEN, c.MetaDescriptionFR, c.MetaDescriptionAR)
}

func (c *Content) HTML(lang i18n.Language) template.HTML {
	return core.Markdown(i18n.PickPtr(lang, c.ContentEN, c.ContentFR, c.ContentAR))
}
