// AngelaMos | 2026
// dto.go

package gallery

type CreateRequest struct {
	TitleEN       string  `json:"title_en"       validate:"required,max=200"`
	TitleFR       string  `json:"title_fr"       validate:"required,max=200"`
	TitleAR       string  `json:"title_ar"       validate:"required,max=200"`
	DescriptionEN *string `json:"description_en" validate:"omitempty,max=2000"`
	DescriptionFR *string `json:"description_fr" validate:"omitempty,max=2000"`
	DescriptionAR *string `json:"description_ar" validate:"omitempty,max=2000"`
	MediaURL      string  `json:"media_url"      validate:"required,url"`
	ThumbnailURL  *string `json:"thumbnail_url"  validate:"omitempty,url"`
	MediaType     string  `json:"media_type"     validate:"omitempty,oneof=image video"`
	CategoryEN    *string `json:"category_en"    validate:"omitempty,max=100"`
	CategoryFR    *string `json:"category_fr"    validate:"omitempty,max=100"`
	CategoryAR    *string `json:"category_ar"    validate:"omitempty,max=100"`
	Duration      *string `json:"duration"       validate:"omitempty,max=20"`
	IsFeatured    bool    `json:"is_featured"`
	SortOrder     int     `json:"sort_order"`
}

type UpdateRequest struct {
	TitleEN       *string `json:"title_en"       validate:"omitempty,min=1,max=200"`
	TitleFR       *string `json:"title_fr"       validate:"omitempty,min=1,max=200"`
	TitleAR       *string `json:"title_ar"       validate:"omitempty,min=1,max=200"`
	DescriptionEN *string `json:"description_en" validate:"omitempty,max=2000"`
	DescriptionFR *string `json:"description_fr" validate:"omitempty,max=2000"`
	DescriptionAR *string `json:"description_ar" validate:"omitempty,max=2000"`
	MediaURL      *string `json:"media_url"      validate:"omitempty,url"`
	ThumbnailURL  *string `json:"thumbnail_url"  validate:"omitempty,url"`
	MediaType     *string `json:"media_type"     validate:"omitempty,oneof=image video"`
	CategoryEN    *string `json:"category_en"    validate:"omitempty,max=100"`
	CategoryFR    *string `json:"category_fr"    validate:"omitempty,max=100"`
	CategoryAR    *string `json:"category_ar"    validate:"omitempty,max=100"`
	Duration      *string `json:"duration"       validate:"omitempty,max=20"`
	IsFeatured    *bool   `json:"is_featured"`
	SortOrder     *int    `json:"sort_order"`
}
