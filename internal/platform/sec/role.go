// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "fmt"

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Can edit the anime catalog
	RoleAdmin UserRole = "admin"

	// Default role for standard registered users
	RoleMember UserRole = "member"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 40
	case RoleMember:
		return 10
	default:
		return 0
	}
}

// ParseRole converts a raw claim or flag value into a known [UserRole].
func ParseRole(raw string) (UserRole, error) {
	switch role := UserRole(raw); role {
	case RoleAdmin, RoleMember:
		return role, nil
	default:
		return "", fmt.Errorf("auth: unknown role %q", raw)
	}
}
