package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-repa/internal/logger"
	"github.com/MKhiriev/go-repa/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// Every returned user carries its roles.
type userRepository struct {
	db Querier
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		user      models.User
		lastLogin sql.NullTime
	)
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.IsActive, &user.CreatedAt, &lastLogin); err != nil {
		return models.User{}, err
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		user.LastLogin = &t
	}
	user.Roles = []models.Role{}
	return user, nil
}

// CreateUser inserts the user and returns it with the server-assigned
// creation time. A duplicate e-mail yields [ErrEmailAlreadyExists].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertUser(user)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrEmailAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

// FindUserByEmail returns [ErrUserNotFound] when nobody is registered under
// email.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, sq.Eq{"u.email": email}, "*userRepository.FindUserByEmail")
}

// FindUserByID returns [ErrUserNotFound] when id is unknown.
func (r *userRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	return r.findOne(ctx, sq.Eq{"u.id": id}, "*userRepository.FindUserByID")
}

func (r *userRepository) findOne(ctx context.Context, where sq.Sqlizer, funcName string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUser(where)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", funcName).Msg("error selecting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	roles, err := r.loadRoles(ctx, user.ID)
	if err != nil {
		return models.User{}, err
	}
	user.Roles = roles[user.ID]

	return user, nil
}

// ListUsers returns users ordered by creation time. A zero limit means no
// limit.
func (r *userRepository) ListUsers(ctx context.Context, limit, offset uint64) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListUsers(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error selecting users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	ids := make([]string, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		users = append(users, user)
		ids = append(ids, user.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	if len(users) == 0 {
		return users, nil
	}

	roles, err := r.loadRoles(ctx, ids...)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if rs, ok := roles[users[i].ID]; ok {
			users[i].Roles = rs
		}
	}

	return users, nil
}

// UpdateUser rewrites e-mail and password hash.
func (r *userRepository) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUser(user)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return models.User{}, ErrUserNotFound
		case isUniqueViolation(err):
			return models.User{}, ErrEmailAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error updating user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	roles, err := r.loadRoles(ctx, updated.ID)
	if err != nil {
		return models.User{}, err
	}
	updated.Roles = roles[updated.ID]

	return updated, nil
}

func (r *userRepository) SetUserActive(ctx context.Context, id string, active bool) error {
	query, args, err := buildSetUserActive(id, active)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return execAffecting(ctx, r.db, query, args, ErrUserNotFound)
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	query, args, err := buildTouchLastLogin(id, at.UTC())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return execAffecting(ctx, r.db, query, args, ErrUserNotFound)
}

// AssignRole links a role to a user; assigning twice is a no-op.
func (r *userRepository) AssignRole(ctx context.Context, userID string, roleID int64) error {
	return r.assignRoles(ctx, userID, []int64{roleID}, "*userRepository.AssignRole")
}

// ReplaceRoles removes every role of the user and assigns roleIDs.
// It must run inside a transaction.
func (r *userRepository) ReplaceRoles(ctx context.Context, userID string, roleIDs []int64) error {
	query, args, err := buildDeleteUserRoles(userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.ReplaceRoles").Msg("error deleting user roles")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if len(roleIDs) == 0 {
		return nil
	}
	return r.assignRoles(ctx, userID, roleIDs, "*userRepository.ReplaceRoles")
}

func (r *userRepository) assignRoles(ctx context.Context, userID string, roleIDs []int64, funcName string) error {
	query, args, err := buildAssignRoles(userID, roleIDs...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return ErrUserNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("error assigning roles")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

// loadRoles returns the roles of the given users keyed by user id.
func (r *userRepository) loadRoles(ctx context.Context, userIDs ...string) (map[string][]models.Role, error) {
	query, args, err := buildSelectUserRoles(userIDs...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.loadRoles").Msg("error selecting roles")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	result := make(map[string][]models.Role, len(userIDs))
	for _, id := range userIDs {
		result[id] = []models.Role{}
	}
	for rows.Next() {
		var (
			userID string
			role   models.Role
		)
		if err = rows.Scan(&userID, &role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		result[userID] = append(result[userID], role)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return result, nil
}

// CountUsersByState groups accounts into unverified, active and
// deactivated. An inactive account that has consumed a verification token
// counts as deactivated.
func (r *userRepository) CountUsersByState(ctx context.Context) (models.UserStats, error) {
	query, args, err := buildCountUsersByState()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.CountUsersByState").Msg("error counting users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	stats := models.UserStats{
		models.UserStateUnverified:  0,
		models.UserStateActive:      0,
		models.UserStateDeactivated: 0,
	}
	for rows.Next() {
		var (
			state string
			count int64
		)
		if err = rows.Scan(&state, &count); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		stats[models.UserState(state)] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return stats, nil
}
