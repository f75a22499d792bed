// AngelaMos | 2026
// dto.go

package profile

// UpdateRequest carries the member-editable fields. Nil means unchanged.
type UpdateRequest struct {
	FullName        *string `json:"full_name,omitempty"        validate:"omitempty,max=200"`
	Phone           *string `json:"phone,omitempty"            validate:"omitempty,max=50"`
	Address         *string `json:"address,omitempty"          validate:"omitempty,max=500"`
	City            *string `json:"city,omitempty"             validate:"omitempty,max=100"`
	Country         *string `json:"country,omitempty"          validate:"omitempty,max=100"`
	PostalCode      *string `json:"postal_code,omitempty"      validate:"omitempty,max=20"`
	CharterAccepted *bool   `json:"charter_accepted,omitempty"`
}

func (u UpdateRequest) IsEmpty() bool {
	return u.FullName == nil &&
		u.Phone == nil &&
		u.Address == nil &&
		u.City == nil &&
		u.Country == nil &&
		u.PostalCode == nil &&
		u.CharterAccepted == nil
}

type AcceptCharterRequest struct {
	CharterID string `json:"charter_id" validate:"required,uuid"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=member admin"`
}

type PromoteRequest struct {
	UserEmail string `json:"user_email" validate:"required,email"`
}

type ListParams struct {
	Page     int
	PageSize int
	Search   string
	Role     string
}

func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}
