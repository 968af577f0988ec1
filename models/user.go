package models

import (
	"strings"
	"time"
)

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the immutable UUID of the user, also used as the token subject.
	ID string `json:"id"`

	// Email is the unique login identifier of the user.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password. Never empty
	// for a persisted user and never serialized.
	PasswordHash string `json:"-"`

	// IsActive is false until the e-mail address is confirmed and after the
	// account is deactivated.
	IsActive bool `json:"is_active"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`

	// LastLogin is set on every successful login; nil before the first one.
	LastLogin *time.Time `json:"last_login,omitempty"`

	// Roles is the set of roles assigned to the user.
	Roles []Role `json:"roles"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// RoleNames returns the names of the user's roles.
func (u User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// HasRole reports whether the user holds the named role, ignoring case.
func (u User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if strings.EqualFold(r.Name, name) {
			return true
		}
	}
	return false
}

// UserState is the lifecycle state of an account as reported by metrics.
type UserState string

const (
	UserStateUnverified  UserState = "unverified"
	UserStateActive      UserState = "active"
	UserStateDeactivated UserState = "deactivated"
)

// UserStats holds per-state account counters.
type UserStats map[UserState]int64
