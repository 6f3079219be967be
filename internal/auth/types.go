package auth

import "strings"

// Role is one of the fixed set of administrative roles, ordered from least
// to most privileged.
type Role string

const (
	RoleViewer     Role = "viewer"
	RoleEditor     Role = "editor"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// Roles lists all valid roles in ascending privilege order.
var Roles = []Role{RoleViewer, RoleEditor, RoleAdmin, RoleSuperadmin}

// ParseRole normalizes and validates a role name.
func ParseRole(raw string) (Role, bool) {
	role := Role(strings.TrimSpace(strings.ToLower(raw)))
	for _, r := range Roles {
		if role == r {
			return r, true
		}
	}
	return "", false
}

// In reports whether the role is a member of the allowed set.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// Credential is a stored admin identity record. Username is the natural key
// and must stay unique across the store.
type Credential struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash,omitempty"`
	Role         Role   `json:"role"`
}

// Public returns a copy safe for serialization, with the password hash
// stripped.
func (c Credential) Public() Credential {
	c.PasswordHash = ""
	return c
}

// Identity is the caller identity decoded from an access token. The role is
// a snapshot taken at issuance time and may be stale; authorization
// decisions re-resolve the current role from the credential store.
type Identity struct {
	Username string
	Role     Role
}
