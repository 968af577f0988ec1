package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-repa/models"
)

func principalWithRoles(names ...string) Principal {
	roles := make([]models.Role, 0, len(names))
	for i, n := range names {
		roles = append(roles, models.Role{ID: int64(i + 1), Name: n})
	}
	return Principal{ID: "u-1", Type: models.TokenTypeAccess, Roles: roles}
}

func TestHasRole(t *testing.T) {
	active, inactive := true, false

	tests := []struct {
		name      string
		principal Principal
		required  []string
		want      bool
	}{
		{name: "single match", principal: principalWithRoles("user"), required: []string{"user"}, want: true},
		{name: "any of", principal: principalWithRoles("viewer"), required: []string{"admin", "viewer"}, want: true},
		{name: "no match", principal: principalWithRoles("user"), required: []string{"admin"}, want: false},
		{name: "case insensitive held", principal: principalWithRoles("ADMIN"), required: []string{"admin"}, want: true},
		{name: "case insensitive required", principal: principalWithRoles("admin"), required: []string{"Admin"}, want: true},
		{name: "empty roles", principal: principalWithRoles(), required: []string{"user"}, want: false},
		{name: "empty required", principal: principalWithRoles("admin"), required: nil, want: false},
		{
			name: "explicitly active",
			principal: func() Principal {
				p := principalWithRoles("admin")
				p.IsActive = &active
				return p
			}(),
			required: []string{"admin"},
			want:     true,
		},
		{
			name: "inactive denied",
			principal: func() Principal {
				p := principalWithRoles("admin")
				p.IsActive = &inactive
				return p
			}(),
			required: []string{"admin"},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasRole(tt.principal, tt.required...))
		})
	}
}

// TestHasRole_IntersectionProperty checks HasRole against a direct set
// intersection over a small universe of role names.
func TestHasRole_IntersectionProperty(t *testing.T) {
	universe := []string{"admin", "user", "editor", "viewer"}

	for mask := 0; mask < 1<<len(universe); mask++ {
		var held []string
		for i, n := range universe {
			if mask&(1<<i) != 0 {
				held = append(held, n)
			}
		}
		p := principalWithRoles(held...)

		for reqMask := 1; reqMask < 1<<len(universe); reqMask++ {
			var required []string
			for i, n := range universe {
				if reqMask&(1<<i) != 0 {
					required = append(required, n)
				}
			}

			want := mask&reqMask != 0
			assert.Equal(t, want, HasRole(p, required...), "held=%v required=%v", held, required)
		}
	}
}
