// AngelaMos | 2026
// dto.go

package news

type CreateRequest struct {
	TitleEN          string  `json:"title_en"           validate:"required,max=300"`
	TitleFR          string  `json:"title_fr"           validate:"required,max=300"`
	TitleAR          string  `json:"title_ar"           validate:"required,max=300"`
	ExcerptEN        *string `json:"excerpt_en"         validate:"omitempty,max=1000"`
	ExcerptFR        *string `json:"excerpt_fr"         validate:"omitempty,max=1000"`
	ExcerptAR        *string `json:"excerpt_ar"         validate:"omitempty,max=1000"`
	ContentEN        *string `json:"content_en"`
	ContentFR        *string `json:"content_fr"`
	ContentAR        *string `json:"content_ar"`
	CategoryEN       *string `json:"category_en"        validate:"omitempty,max=100"`
	CategoryFR       *string `json:"category_fr"        validate:"omitempty,max=100"`
	CategoryAR       *string `json:"category_ar"        validate:"omitempty,max=100"`
	FeaturedImageURL *string `json:"featured_image_url" validate:"omitempty,url"`
	IsFeatured       bool    `json:"is_featured"`
	IsPublished      bool    `json:"is_published"`
	ReadTime         int     `json:"read_time"          validate:"omitempty,min=1,max=120"`
}

type UpdateRequest struct {
	TitleEN          *string `json:"title_en"           validate:"omitempty,min=1,max=300"`
	TitleFR          *string `json:"title_fr"           validate:"omitempty,min=1,max=300"`
	TitleAR          *string `json:"title_ar"           validate:"omitempty,min=1,max=300"`
	ExcerptEN        *string `json:"excerpt_en"         validate:"omitempty,max=1000"`
	ExcerptFR        *string `json:"excerpt_fr"         validate:"omitempty,max=1000"`
	ExcerptAR        *string `json:"excerpt_ar"         validate:"omitempty,max=1000"`
	ContentEN        *string `json:"content_en"`
	ContentFR        *string `json:"content_fr"`
	ContentAR        *string `json:"content_ar"`
	CategoryEN       *string `json:"category_en"        validate:"omitempty,max=100"`
	CategoryFR       *string `json:"category_fr"        validate:"omitempty,max=100"`
	CategoryAR       *string `json:"category_ar"        validate:"omitempty,max=100"`
	FeaturedImageURL *string `json:"featured_image_url" validate:"omitempty,url"`
	IsFeatured       *bool   `json:"is_featured"`
	IsPublished      *bool   `json:"is_published"`
	ReadTime         *int    `json:"read_time"          validate:"omitempty,min=1,max=120"`
}
