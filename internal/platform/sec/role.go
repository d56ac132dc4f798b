// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package sec

// # Admin Roles

// AdminRole represents the authorization level granted to a back-office account.
type AdminRole string

const (
	// Unrestricted back-office access, including admin user management
	RoleAdmin AdminRole = "admin"

	// Can review applications and manage content, but not other admins
	RoleModerator AdminRole = "moderator"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r AdminRole) AtLeast(target AdminRole) bool {
	return r.level() >= target.level()
}

// IsValid reports whether r is one of the known roles.
func (r AdminRole) IsValid() bool {
	return r == RoleAdmin || r == RoleModerator
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r AdminRole) level() int {

	// Gapped scale allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 20
	case RoleModerator:
		return 10
	default:
		return 0
	}
}
