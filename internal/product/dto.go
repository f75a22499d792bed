// AngelaMos | 2026
// dto.go

package product

type CreateRequest struct {
	NameEN        string   `json:"name_en"        validate:"required,max=200"`
	NameFR        string   `json:"name_fr"        validate:"required,max=200"`
	NameAR        string   `json:"name_ar"        validate:"required,max=200"`
	DescriptionEN *string  `json:"description_en" validate:"omitempty,max=5000"`
	DescriptionFR *string  `json:"description_fr" validate:"omitempty,max=5000"`
	DescriptionAR *string  `json:"description_ar" validate:"omitempty,max=5000"`
	Price         float64  `json:"price"          validate:"gte=0"`
	OriginalPrice *float64 `json:"original_price" validate:"omitempty,gte=0"`
	Currency      string   `json:"currency"       validate:"omitempty,len=3,uppercase"`
	StockQuantity int      `json:"stock_quantity" validate:"gte=0"`
	CategoryEN    *string  `json:"category_en"    validate:"omitempty,max=100"`
	CategoryFR    *string  `json:"category_fr"    validate:"omitempty,max=100"`
	CategoryAR    *string  `json:"category_ar"    validate:"omitempty,max=100"`
	ImageURL      *string  `json:"image_url"      validate:"omitempty,url"`
	IsActive      *bool    `json:"is_active"`
}

type UpdateRequest struct {
	NameEN        *string  `json:"name_en"        validate:"omitempty,min=1,max=200"`
	NameFR        *string  `json:"name_fr"        validate:"omitempty,min=1,max=200"`
	NameAR        *string  `json:"name_ar"        validate:"omitempty,min=1,max=200"`
	DescriptionEN *string  `json:"description_en" validate:"omitempty,max=5000"`
	DescriptionFR *string  `json:"description_fr" validate:"omitempty,max=5000"`
	DescriptionAR *string  `json:"description_ar" validate:"omitempty,max=5000"`
	Price         *float64 `json:"price"          validate:"omitempty,gte=0"`
	OriginalPrice *float64 `json:"original_price" validate:"omitempty,gte=0"`
	Currency      *string  `json:"currency"       validate:"omitempty,len=3,uppercase"`
	StockQuantity *int     `json:"stock_quantity" validate:"omitempty,gte=0"`
	CategoryEN    *string  `json:"category_en"    validate:"omitempty,max=100"`
	CategoryFR    *string  `json:"category_fr"    validate:"omitempty,max=100"`
	CategoryAR    *string  `json:"category_ar"    validate:"omitempty,max=100"`
	ImageURL      *string  `json:"image_url"      validate:"omitempty,url"`
	IsActive      *bool    `json:"is_active"`
}
