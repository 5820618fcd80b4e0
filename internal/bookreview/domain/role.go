package domain

import "slices"

// Role is the authorisation level embedded in every token.
type Role string

const (
	RoleUser       Role = "user"
	RoleManager    Role = "manager"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

var (
	// ReaderRoles may browse and write books and reviews.
	ReaderRoles = []Role{RoleUser, RoleManager, RoleAdmin, RoleSuperAdmin}

	// AdminRoles may moderate content and manage users.
	AdminRoles = []Role{RoleAdmin, RoleSuperAdmin}
)

// ParseRole returns the Role named s.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, slices.Contains(ReaderRoles, r)
}

// IsAdmin reports whether r is admin or superadmin.
func (r Role) IsAdmin() bool {
	return slices.Contains(AdminRoles, r)
}

func (r Role) String() string { return string(r) }
