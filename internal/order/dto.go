// AngelaMos | 2026
// dto.go

package order

type ItemRequest struct {
	ProductID        *string `json:"product_id"         validate:"omitempty,uuid"`
	MembershipTierID *string `json:"membership_tier_id" validate:"omitempty,uuid"`
	Quantity         int     `json:"quantity"           validate:"required,min=1,max=100"`
	UnitPrice        float64 `json:"unit_price"         validate:"gte=0"`
}

type CreateRequest struct {
	Items           []ItemRequest `json:"items"            validate:"required,min=1,max=50,dive"`
	Currency        string        `json:"currency"         validate:"omitempty,len=3,uppercase"`
	PaymentMethod   *string       `json:"payment_method"   validate:"omitempty,max=50"`
	ShippingAddress *string       `json:"shipping_address" validate:"omitempty,max=500"`
	BillingAddress  *string       `json:"billing_address"  validate:"omitempty,max=500"`
	Notes           *string       `json:"notes"            validate:"omitempty,max=1000"`
}

type UpdateStatusRequest struct {
	Status    string  `json:"status"     validate:"required,oneof=pending completed cancelled refunded"`
	PaymentID *string `json:"payment_id" validate:"omitempty,max=200"`
}

// NewOrder is a priced order ready to be stored.
type NewOrder struct {
	UserID          string
	Currency        string
	TotalAmount     float64
	PaymentMethod   *string
	ShippingAddress *string
	BillingAddress  *string
	Notes           *string
	Items           []NewItem
}

type NewItem struct {
	ProductID        *string
	MembershipTierID *string
	Quantity         int
	UnitPrice        float64
	TotalPrice       float64
}
