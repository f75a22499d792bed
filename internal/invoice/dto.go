// AngelaMos | 2026
// dto.go

package invoice

type GenerateRequest struct {
	OrderID string `json:"order_id" validate:"required,uuid"`
}
