// AngelaMos | 2026
// entity.go

package gallery

import (
	"time"

	"github.com/rossoverde/supporters/internal/i18n"
)

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

type Item struct {
	ID            string    `db:"id"             json:"id"`
	TitleEN       string    `db:"title_en"       json:"title_en"`
	TitleFR       string    `db:"title_fr"       json:"title_fr"`
	TitleAR       string    `db:"title_ar"       json:"title_ar"`
	DescriptionEN *string   `db:"description_en" json:"description_en"`
	DescriptionFR *string   `db:"description_fr" json:"description_fr"`
	DescriptionAR *string   `db:"description_ar" json:"description_ar"`
	MediaURL      string    `db:"media_url"      json:"media_url"`
	ThumbnailURL  *string   `db:"thumbnail_url"  json:"thumbnail_url"`
	MediaType     MediaType `db:"media_type"     json:"media_type"`
	CategoryEN    *string   `db:"category_en"    json:"category_en"`
	CategoryFR    *string   `db:"category_fr"    json:"category_fr"`
	CategoryAR    *string   `db:"category_ar"    json:"category_ar"`
	Duration      *string   `db:"duration"       json:"duration"`
	IsFeatured    bool      `db:"is_featured"    json:"is_featured"`
	SortOrder     int       `db:"sort_order"     json:"sort_order"`
	CreatedAt     time.Time `db:"created_at"     json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"     json:"updated_at"`
}

func (i *Item) Title(lang i18n.Language) string {
	return i18n.Pick(lang, i.TitleEN, i.TitleFR, i.TitleAR)
}

func (i *Item) Description(lang i18n.Language) string {
	return i18n.PickPtr(lang, i.DescriptionEN, i.DescriptionFR, i.DescriptionAR)
}

// Thumbnail falls back to the media itself for images.
func (i *Item) Thumbnail() string {
	if i.ThumbnailURL != nil && *i.ThumbnailURL != "" {
		return *i.ThumbnailURL
	}
	if i.MediaType == MediaImage {
		return i.MediaURL
	}
	return ""
}
