package service

import (
	"context"
	"slices"

	"github.com/MKhiriev/go-repa/internal/logger"
	"github.com/MKhiriev/go-repa/internal/store"
	"github.com/MKhiriev/go-repa/models"
)

// adminService reuses the account logic of authService for operations on
// arbitrary users.
type adminService struct {
	accounts *authService
	repos    store.Repositories
	tx       store.Transactor
}

func newAdminService(accounts *authService) AdminService {
	return &adminService{
		accounts: accounts,
		repos:    accounts.repos,
		tx:       accounts.tx,
	}
}

func (s *adminService) ListUsers(ctx context.Context, limit, offset uint64) ([]models.User, error) {
	users, err := s.repos.Users.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, storeError(err, "list users")
	}
	return users, nil
}

func (s *adminService) GetUser(ctx context.Context, id string) (models.User, error) {
	user, err := s.repos.Users.FindUserByID(ctx, id)
	if err != nil {
		return models.User{}, storeError(err, "find user")
	}
	return user, nil
}

func (s *adminService) UpdateUser(ctx context.Context, id string, update models.ProfileUpdate) (models.User, error) {
	return s.accounts.updateUser(ctx, id, update)
}

func (s *adminService) SetActive(ctx context.Context, id string, active bool) (models.User, error) {
	return s.accounts.setActive(ctx, id, active)
}

// SetRoles replaces the role set of a user. Unknown role names are created.
// The new roles reach the user's tokens at the next refresh or login.
func (s *adminService) SetRoles(ctx context.Context, id string, roles []string) (models.User, error) {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		name := models.NormalizeRoleName(r)
		if name == "" || name == models.RoleUnverified {
			return models.User{}, ErrUnassignableRole
		}
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return models.User{}, ErrUnassignableRole
	}

	var user models.User
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		if _, err := repos.Users.FindUserByID(ctx, id); err != nil {
			return err
		}

		ids := make([]int64, 0, len(names))
		for _, name := range names {
			role, err := repos.Roles.EnsureRole(ctx, name)
			if err != nil {
				return err
			}
			ids = append(ids, role.ID)
		}

		if err := repos.Users.ReplaceRoles(ctx, id, ids); err != nil {
			return err
		}

		var err error
		user, err = repos.Users.FindUserByID(ctx, id)
		return err
	})
	if err != nil {
		return models.User{}, storeError(err, "set roles")
	}

	logger.FromContext(ctx).Info().Str("func", "*adminService.SetRoles").Str("user_id", id).Strs("roles", names).Msg("roles replaced")
	return user, nil
}

func (s *adminService) ListAllTrainings(ctx context.Context) ([]models.Training, error) {
	trainings, err := s.repos.Trainings.ListAllTrainings(ctx)
	if err != nil {
		return nil, storeError(err, "list trainings")
	}
	return trainings, nil
}
