// AngelaMos | 2026
// dto.go

package cms

// UpsertRequest replaces every field of the block; omitted text fields
// become empty.
type UpsertRequest struct {
	TitleEN           *string `json:"title_en"            validate:"omitempty,max=300"`
	TitleFR           *string `json:"title_fr"            validate:"omitempty,max=300"`
	TitleAR           *string `json:"title_ar"            validate:"omitempty,max=300"`
	ContentEN         *string `json:"content_en"`
	ContentFR         *string `json:"content_fr"`
	ContentAR         *string `json:"content_ar"`
	MetaDescriptionEN *string `json:"meta_description_en" validate:"omitempty,max=300"`
	MetaDescriptionFR *string `json:"meta_description_fr" validate:"omitempty,max=300"`
	MetaDescriptionAR *string `json:"meta_description_ar" validate:"omitempty,max=300"`
	IsPublished       bool    `json:"is_published"`
}
