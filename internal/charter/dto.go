// AngelaMos | 2026
// dto.go

package charter

import "time"

type PublishRequest struct {
	Version       string     `json:"version"        validate:"required,max=20"`
	TitleEN       string     `json:"title_en"       validate:"required,max=300"`
	TitleFR       string     `json:"title_fr"       validate:"required,max=300"`
	TitleAR       string     `json:"title_ar"       validate:"required,max=300"`
	ContentEN     string     `json:"content_en"     validate:"required"`
	ContentFR     string     `json:"content_fr"     validate:"required"`
	ContentAR     string     `json:"content_ar"     validate:"required"`
	EffectiveDate *time.Time `json:"effective_date"`
}
