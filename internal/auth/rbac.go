package auth

import "github.com/MKhiriev/go-repa/models"

// HasRole reports whether p holds at least one of the required roles.
// Names are compared case-insensitively. A principal without roles, or one
// explicitly marked inactive, never passes.
func HasRole(p Principal, required ...string) bool {
	if p.IsActive != nil && !*p.IsActive {
		return false
	}
	if len(p.Roles) == 0 || len(required) == 0 {
		return false
	}

	held := make(map[string]struct{}, len(p.Roles))
	for _, r := range p.Roles {
		held[models.NormalizeRoleName(r.Name)] = struct{}{}
	}

	for _, name := range required {
		if _, ok := held[models.NormalizeRoleName(name)]; ok {
			return true
		}
	}
	return false
}
