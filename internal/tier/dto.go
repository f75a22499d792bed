// AngelaMos | 2026
// dto.go

package tier

type CreateRequest struct {
	NameEN        string   `json:"name_en"        validate:"required,max=100"`
	NameFR        string   `json:"name_fr"        validate:"required,max=100"`
	NameAR        string   `json:"name_ar"        validate:"required,max=100"`
	DescriptionEN *string  `json:"description_en" validate:"omitempty,max=2000"`
	DescriptionFR *string  `json:"description_fr" validate:"omitempty,max=2000"`
	DescriptionAR *string  `json:"description_ar" validate:"omitempty,max=2000"`
	Price         float64  `json:"price"          validate:"gte=0"`
	Currency      string   `json:"currency"       validate:"omitempty,len=3,uppercase"`
	FeaturesEN    []string `json:"features_en"    validate:"omitempty,dive,max=200"`
	FeaturesFR    []string `json:"features_fr"    validate:"omitempty,dive,max=200"`
	FeaturesAR    []string `json:"features_ar"    validate:"omitempty,dive,max=200"`
	SortOrder     int      `json:"sort_order"`
	IsActive      *bool    `json:"is_active"`
}

// UpdateRequest leaves nil fields unchanged.
type UpdateRequest struct {
	NameEN        *string   `json:"name_en"        validate:"omitempty,min=1,max=100"`
	NameFR        *string   `json:"name_fr"        validate:"omitempty,min=1,max=100"`
	NameAR        *string   `json:"name_ar"        validate:"omitempty,min=1,max=100"`
	DescriptionEN *string   `json:"description_en" validate:"omitempty,max=2000"`
	DescriptionFR *string   `json:"description_fr" validate:"omitempty,max=2000"`
	DescriptionAR *string   `json:"description_ar" validate:"omitempty,max=2000"`
	Price         *float64  `json:"price"          validate:"omitempty,gte=0"`
	Currency      *string   `json:"currency"       validate:"omitempty,len=3,uppercase"`
	FeaturesEN    *[]string `json:"features_en"`
	FeaturesFR    *[]string `json:"features_fr"`
	FeaturesAR    *[]string `json:"features_ar"`
	SortOrder     *int      `json:"sort_order"`
	IsActive      *bool     `json:"is_active"`
}
