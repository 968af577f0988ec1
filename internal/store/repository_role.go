package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/MKhiriev/go-repa/internal/logger"
	"github.com/MKhiriev/go-repa/models"
)

// roleRepository reads roles through an expirable LRU keyed by name. Role
// rows never change once created, so a cached id stays valid until the TTL.
type roleRepository struct {
	db        Querier
	cache     *expirable.LRU[string, models.Role]
	fillCache bool
}

// EnsureRole inserts the role if missing and returns the stored row. The
// insert ignores conflicts, so racing callers end up with the same id.
func (r *roleRepository) EnsureRole(ctx context.Context, name string) (models.Role, error) {
	name = models.NormalizeRoleName(name)
	if role, ok := r.cached(name); ok {
		return role, nil
	}

	query, args, err := buildInsertRole(name)
	if err != nil {
		return models.Role{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*roleRepository.EnsureRole").Str("role", name).Msg("error inserting role")
		return models.Role{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return r.FindRoleByName(ctx, name)
}

// FindRoleByName returns [ErrRoleNotFound] for unknown names.
func (r *roleRepository) FindRoleByName(ctx context.Context, name string) (models.Role, error) {
	name = models.NormalizeRoleName(name)
	if role, ok := r.cached(name); ok {
		return role, nil
	}

	query, args, err := buildSelectRole(name)
	if err != nil {
		return models.Role{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var role models.Role
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&role.ID, &role.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Role{}, ErrRoleNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*roleRepository.FindRoleByName").Msg("error selecting role")
		return models.Role{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if r.fillCache && r.cache != nil {
		r.cache.Add(name, role)
	}
	return role, nil
}

func (r *roleRepository) ListRoles(ctx context.Context) ([]models.Role, error) {
	query, args, err := buildListRoles()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*roleRepository.ListRoles").Msg("error selecting roles")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	roles := make([]models.Role, 0)
	for rows.Next() {
		var role models.Role
		if err = rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		roles = append(roles, role)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return roles, nil
}

func (r *roleRepository) cached(name string) (models.Role, bool) {
	if r.cache == nil {
		return models.Role{}, false
	}
	return r.cache.Get(name)
}
