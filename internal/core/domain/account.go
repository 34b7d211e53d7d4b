package domain

import "time"

// Role is the closed set of access roles. The zero value (RoleUnspecified)
// marks legacy accounts and tokens created before role tracking existed.
type Role string

const (
	RoleUnspecified  Role = ""
	RoleAdmin        Role = "ADMIN"
	RoleDoctor       Role = "DOCTOR"
	RoleReceptionist Role = "RECEPTIONIST"
)

// ParseRole maps a wire value onto the closed role set. Anything outside the
// set is an error; an empty string parses to RoleUnspecified so legacy data
// stays loadable.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUnspecified, RoleAdmin, RoleDoctor, RoleReceptionist:
		return Role(s), nil
	}
	return RoleUnspecified, ErrInvalidRole
}

// Resolve applies the legacy-account fallback: an unspecified role resolves
// to ADMIN. Accounts and tokens minted before roles existed are implicitly
// administrative; every call site that needs an effective role must go
// through here rather than re-deciding the fallback.
func (r Role) Resolve() Role {
	if r == RoleUnspecified {
		return RoleAdmin
	}
	return r
}

// IsAdmin reports whether the resolved role is administrative.
func (r Role) IsAdmin() bool {
	return r.Resolve() == RoleAdmin
}

// Account is an identity record owned by the token authority.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
