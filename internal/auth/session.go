// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"slices"

	"taskdeck/cli/internal/backend"
)

// Role tags the backend grants. They are opaque; only membership is ever tested.
const (
	RoleAdmin          = "admin"
	RoleProjectManager = "project_manager"
	RoleTeamMember     = "team_member"
)

// User is the signed-in user's profile merged with their roles and permissions.
type User struct {
	ID          int64
	Name        string
	Email       string
	Position    string
	Department  string
	Roles       []string
	Permissions []string
}

// HasRole reports whether the user holds role.
func (u *User) HasRole(role string) bool {
	return u != nil && slices.Contains(u.Roles, role)
}

// HasPermission reports whether the user holds permission.
func (u *User) HasPermission(permission string) bool {
	return u != nil && slices.Contains(u.Permissions, permission)
}

func (u *User) clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Roles = slices.Clone(u.Roles)
	c.Permissions = slices.Clone(u.Permissions)
	return &c
}

func mergeUser(u backend.User, roles, permissions []string) *User {
	return &User{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Position:    u.Position,
		Department:  u.Department,
		Roles:       slices.Clone(roles),
		Permissions: slices.Clone(permissions),
	}
}

// Session is a point-in-time copy of the store's state.
//
// IsAuthenticated is true exactly when Token is non-empty. User may be nil while
// Token is set (profile not fetched yet) but is never set without a Token.
type Session struct {
	Token           string
	User            *User
	IsAuthenticated bool
	Loading         bool
	LastError       string
	// FieldErrors holds per-field messages of the last validation failure.
	FieldErrors map[string][]string
}

// Phase is the externally observable lifecycle state of a session.
type Phase int

const (
	Anonymous Phase = iota
	Authenticating
	Authenticated
	// AuthenticatedStale means a token is held but the profile has not been fetched.
	// The route guard treats it exactly like Authenticated.
	AuthenticatedStale
)

func (p Phase) String() string {
	switch p {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case AuthenticatedStale:
		return "authenticated (profile pending)"
	default:
		return "anonymous"
	}
}
