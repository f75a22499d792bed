// AngelaMos | 2026
// entity.go

package news

import (
	"html/template"
	"time"

	"github.com/rossoverde/supporters/internal/core"
	"github.com/rossoverde/supporters/internal/i18n"
)

type Post struct {
	ID               string    `db:"id"                 json:"id"`
	TitleEN          string    `db:"title_en"           json:"title_en"`
	TitleFR          string    `db:"title_fr"           json:"title_fr"`
	TitleAR          string    `db:"title_ar"           json:"title_ar"`
	ExcerptEN        *string   `db:"excerpt_en"         json:"excerpt_en"`
	ExcerptFR        *string   `db:"excerpt_fr"         json:"excerpt_fr"`
	ExcerptAR        *string   `db:"excerpt_ar"         json:"excerpt_ar"`
	ContentEN        *string   `db:"content_en"         json:"content_en"`
	ContentFR        *string   `db:"content_fr"         json:"content_fr"`
	ContentAR        *string   `db:"content_ar"         json:"content_ar"`
	CategoryEN       *string   `db:"category_en"        json:"category_en"`
	CategoryFR       *string   `db:"category_fr"        json:"category_fr"`
	CategoryAR       *string   `db:"category_ar"        json:"category_ar"`
	FeaturedImageURL *string   `db:"featured_image_url" json:"featured_image_url"`
	IsFeatured       bool      `db:"is_featured"        json:"is_featured"`
	IsPublished      bool      `db:"is_published"       json:"is_published"`
	ReadTime         int       `db:"read_time"          json:"read_time"`
	AuthorID         *string   `db:"author_id"          json:"author_id"`
	PublishedAt      time.Time `db:"published_at"       json:"published_at"`
	CreatedAt        time.Time `db:"created_at"         json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"         json:"updated_at"`
}

func (p *Post) Title(lang i18n.Language) string {
	return i18n.Pick(lang, p.TitleEN, p.TitleFR, p.TitleAR)
}

func (p *Post) Excerpt(lang i18n.Language) string {
	return i18n.PickPtr(lang, p.ExcerptEN, p.ExcerptFR, p.ExcerptAR)
}

func (p *Post) Category(lang i18n.Language) string {
	return i18n.PickPtr(lang, p.CategoryEN, p.CategoryFR, p.CategoryAR)
}

func (p *Post) Content(lang i18n.Language) string {
	return i18n.PickPtr(lang, p.ContentEN, p.ContentFR, p.ContentAR)
}

func (p *Post) ContentHTML(lang i18n.Language) template.HTML {
	return core.Markdown(p.Content(lang))
}

// Rendered is a post with its body converted for one language.
type Rendered struct {
	*Post
	Language i18n.Language `json:"language"`
	HTML     template.HTML `json:"content_html"`
}

// wordsPerMinute sets the reading speed behind ReadTime.
const wordsPerMinute = 200

// EstimateReadTime rounds up to whole minutes, never below one.
func EstimateReadTime(content string) int {
	words := 0
	inWord := false
	for _, r := range content {
		space := r == ' ' || r == '\n' || r == '\t' || r == '\r'
		if !space && !inWord {
			words++
		}
		inWord = !space
	}

	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
