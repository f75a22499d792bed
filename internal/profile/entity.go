// AngelaMos | 2026
// entity.go

package profile

import (
	"fmt"
	"time"

	"github.com/rossoverde/supporters/internal/core"
)

// Role is closed: every switch over it lists both values.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleMember:
		return RoleMember, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("parse role %q: %w", s, core.ErrInvalidInput)
}

// Satisfies reports whether a holder of r may enter an area that requires
// the given role.
func (r Role) Satisfies(required Role) bool {
	switch required {
	case RoleMember:
		return r == RoleMember || r == RoleAdmin
	case RoleAdmin:
		return r == RoleAdmin
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

type Profile struct {
	ID                string     `db:"id"                  json:"id"`
	Email             string     `db:"email"               json:"email"`
	FullName          *string    `db:"full_name"           json:"full_name"`
	Phone             *string    `db:"phone"               json:"phone"`
	Address           *string    `db:"address"             json:"address"`
	City              *string    `db:"city"                json:"city"`
	Country           *string    `db:"country"             json:"country"`
	PostalCode        *string    `db:"postal_code"         json:"postal_code"`
	Role              Role       `db:"role"                json:"role"`
	CharterAccepted   bool       `db:"charter_accepted"    json:"charter_accepted"`
	CharterAcceptedAt *time.Time `db:"charter_accepted_at" json:"charter_accepted_at"`
	CreatedAt         time.Time  `db:"created_at"          json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"          json:"updated_at"`
}

func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// DisplayName falls back to the email when no name was given.
func (p *Profile) DisplayName() string {
	if p.FullName != nil && *p.FullName != "" {
		return *p.FullName
	}
	return p.Email
}
