// Copyright (c) 2026 Byfest. All rights reserved.
// Author: kontakt@byfest.dk

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access
	RoleAdmin UserRole = "admin"

	// Can review, approve, reject and archive submitted events
	RoleModerator UserRole = "moderator"

	// Can submit and manage their own event listings
	RoleOrganizer UserRole = "organizer"

	// Default role for anonymous and registered visitors
	RoleVisitor UserRole = "visitor"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-40) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 40
	case RoleModerator:
		return 30
	case RoleOrganizer:
		return 20
	case RoleVisitor:
		return 10
	default:
		return 0
	}
}
