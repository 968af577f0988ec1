package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/go-repa/models"
)

// Principal is the authenticated identity behind a request, as asserted by
// a verified token.
type Principal struct {
	ID       string
	Email    string
	Roles    []models.Role
	Type     string
	IsActive *bool
}

// RoleNames returns the lower-cased role names of the principal.
func (p Principal) RoleNames() []string {
	names := make([]string, 0, len(p.Roles))
	for _, r := range p.Roles {
		names = append(names, models.NormalizeRoleName(r.Name))
	}
	return names
}

// Unverified reports whether the principal carries the registration-only
// "unverified" role.
func (p Principal) Unverified() bool {
	return slices.Contains(p.RoleNames(), models.RoleUnverified)
}

// tokenClaims is the JSON shape of the identity part of a claim set.
type tokenClaims struct {
	Subject string        `json:"sub"`
	ID      string        `json:"id"`
	Email   string        `json:"email"`
	Roles   []models.Role `json:"roles"`
	Type    string        `json:"type"`
	Active  *bool         `json:"active"`
}

// UserClaims builds the claim set minted for user at login or refresh.
func UserClaims(user models.User) map[string]any {
	return map[string]any{
		"sub":    user.ID,
		"id":     user.ID,
		"email":  user.Email,
		"roles":  normalizeRoles(user.Roles),
		"active": user.IsActive,
	}
}

// VerificationClaims builds the claim set of a registration token: the
// account is not active yet and the only role is "unverified".
func VerificationClaims(user models.User) map[string]any {
	return map[string]any{
		"sub":    user.ID,
		"id":     user.ID,
		"email":  user.Email,
		"roles":  []models.Role{{Name: models.RoleUnverified}},
		"active": false,
	}
}

// PrincipalFromClaims converts decoded claims into a [Principal]. The
// subject and type claims are mandatory.
func PrincipalFromClaims(claims map[string]any) (Principal, error) {
	raw, err := json.Marshal(claims)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	var tc tokenClaims
	if err := json.Unmarshal(raw, &tc); err != nil {
		return Principal{}, fmt.Errorf("%w: malformed claims: %w", ErrTokenInvalid, err)
	}

	id := tc.Subject
	if id == "" {
		id = tc.ID
	}
	if id == "" {
		return Principal{}, fmt.Errorf("%w: missing subject", ErrTokenInvalid)
	}
	if tc.Type == "" {
		return Principal{}, fmt.Errorf("%w: missing type", ErrTokenInvalid)
	}

	return Principal{
		ID:       id,
		Email:    tc.Email,
		Roles:    normalizeRoles(tc.Roles),
		Type:     tc.Type,
		IsActive: tc.Active,
	}, nil
}

func normalizeRoles(roles []models.Role) []models.Role {
	out := make([]models.Role, 0, len(roles))
	for _, r := range roles {
		out = append(out, models.Role{ID: r.ID, Name: models.NormalizeRoleName(r.Name)})
	}
	return out
}

// TokenDecoder verifies a raw token and returns its claims.
type TokenDecoder interface {
	Decode(token string) (map[string]any, error)
}

// Resolver turns bearer tokens into principals. It trusts the claims
// embedded in the token and never consults the store.
type Resolver struct {
	decoder TokenDecoder
}

// NewResolver returns a [Resolver] backed by decoder.
func NewResolver(decoder TokenDecoder) *Resolver {
	return &Resolver{decoder: decoder}
}

// Resolve decodes token into a [Principal]. Errors wrap [ErrMissingToken],
// [ErrTokenExpired] or [ErrTokenInvalid].
func (r *Resolver) Resolve(token string) (Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Principal{}, ErrMissingToken
	}

	claims, err := r.decoder.Decode(token)
	if err != nil {
		return Principal{}, err
	}

	return PrincipalFromClaims(claims)
}

// ResolveAccess resolves token and additionally requires an access token
// that is not a registration token.
func (r *Resolver) ResolveAccess(token string) (Principal, error) {
	p, err := r.Resolve(token)
	if err != nil {
		return Principal{}, err
	}
	if p.Type != models.TokenTypeAccess || p.Unverified() {
		return Principal{}, ErrWrongTokenType
	}
	return p, nil
}

type principalCtxKey struct{}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, p)
}

// FromContext returns the principal stored by [NewContext].
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalCtxKey{}).(Principal)
	return p, ok
}
