package profilesync

import "fmt"

// Role identifies which profile schema applies to a user.
type Role string

const (
	RoleVenture  Role = "venture"
	RoleInvestor Role = "investor"
	RoleMentor   Role = "mentor"
	RoleAdmin    Role = "admin"
)

// SessionUser is the lightweight account record the hosting page already
// holds before any profile fetch completes. It seeds form defaults.
type SessionUser struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// schemaFor resolves the schema for an editable role. Admins have no
// editable profile, so they are rejected here along with unknown roles.
func schemaFor(role Role) (*Schema, error) {
	s, ok := schemas[role]
	if !ok {
		return nil, fmt.Errorf("no profile schema for role %q", role)
	}
	return s, nil
}
