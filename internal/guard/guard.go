// AngelaMos | 2026
// guard.go

// Package guard decides whether a visitor may enter a member or admin area
// from the session and the loaded profile, and enforces that decision on
// HTTP routes.
package guard

import (
	"errors"

	"github.com/rossoverde/supporters/internal/core"
	"github.com/rossoverde/supporters/internal/profile"
)

type State int

const (
	Checking State = iota
	Unauthenticated
	Unauthorized
	Authorized
	Failed
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Unauthenticated:
		return "unauthenticated"
	case Unauthorized:
		return "unauthorized"
	case Authorized:
		return "authorized"
	case Failed:
		return "failed"
	}
	return "unknown"
}

type Requirement int

const (
	RequireSession Requirement = iota
	RequireAdmin
)

func (r Requirement) String() string {
	switch r {
	case RequireSession:
		return "session"
	case RequireAdmin:
		return "admin"
	}
	return "unknown"
}

// Snapshot is everything the guard looks at. UserID is empty when there is
// no session.
type Snapshot struct {
	SessionLoading bool
	UserID         string
	ProfileLoading bool
	Profile        *profile.Profile
	ProfileErr     error
}

// Evaluate is pure: the same snapshot always yields the same state. Callers
// re-run it whenever the session or the profile changes.
func Evaluate(s Snapshot, req Requirement) State {
	if s.SessionLoading {
		return Checking
	}
	if s.UserID == "" {
		return Unauthenticated
	}
	if req == RequireSession {
		return Authorized
	}

	if s.ProfileErr != nil {
		if errors.Is(s.ProfileErr, core.ErrNotFound) {
			return Unauthorized
		}
		return Failed
	}
	if s.ProfileLoading || s.Profile == nil {
		return Checking
	}

	if !s.Profile.Role.Satisfies(profile.RoleAdmin) {
		return Unauthorized
	}
	return Authorized
}
