package model

import "fmt"

// Role is the closed set of admin authorization levels. The numeric values
// are part of the wire and storage format: 0 is the single top-level
// super-admin, 1 is a subordinate admin.
type Role int

const (
	RoleSuperAdmin Role = 0
	RoleAdmin      Role = 1
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}

// String returns the symbolic name of the role.
func (r Role) String() string {
	switch r {
	case RoleSuperAdmin:
		return "SUPER_ADMIN"
	case RoleAdmin:
		return "ADMIN"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}
