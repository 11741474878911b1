// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

package sec

// # Principal Roles

// Role represents the authorization level granted to a principal.
//
// Shipora has exactly two principal kinds, held in disjoint stores. The role
// embedded in a session token reflects the store that issued it.
type Role string

const (
	// Full dashboard and shipment management access
	RoleAdmin Role = "admin"

	// Default role for registered customers
	RoleUser Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r Role) level() int {

	// Sparse scale leaves room for intermediate roles (e.g. dispatcher)
	switch r {
	case RoleAdmin:
		return 40
	case RoleUser:
		return 10
	default:
		return 0
	}
}
