package models

import "strings"

// Well-known role names. Names are stored and compared lower-cased.
const (
	RoleAdmin  = "admin"
	RoleUser   = "user"
	RoleEditor = "editor"
	RoleViewer = "viewer"

	// RoleUnverified is carried only by registration tokens and marks the
	// bearer as someone who has not confirmed the e-mail address yet.
	// It is never stored in the roles table.
	RoleUnverified = "unverified"
)

// Role is a named permission group. The JSON shape matches the role
// entries embedded in token claims.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"rol"`
}

// NormalizeRoleName lower-cases and trims a role name.
func NormalizeRoleName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
