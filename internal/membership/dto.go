// AngelaMos | 2026
// dto.go

package membership

import "time"

type UpdateStatusRequest struct {
	Status    string     `json:"status"     validate:"required,oneof=active expired cancelled pending"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// PendingRequest opens a membership that waits for payment confirmation.
type PendingRequest struct {
	UserID        string
	TierID        string
	PaymentMethod *string
}
