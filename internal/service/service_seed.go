package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-repa/internal/logger"
	"github.com/MKhiriev/go-repa/internal/store"
	"github.com/MKhiriev/go-repa/models"
)

// Seed makes sure the built-in roles exist and, when adminEmail names a
// registered account, grants it the admin role. Running it repeatedly
// has no further effect.
func Seed(ctx context.Context, storages *store.Storages, adminEmail string, log *logger.Logger) error {
	return storages.Transactor.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		admin, err := repos.Roles.EnsureRole(ctx, models.RoleAdmin)
		if err != nil {
			return fmt.Errorf("seed admin role: %w", err)
		}
		if _, err = repos.Roles.EnsureRole(ctx, models.RoleUser); err != nil {
			return fmt.Errorf("seed user role: %w", err)
		}

		email := normalizeEmail(adminEmail)
		if email == "" {
			return nil
		}

		user, err := repos.Users.FindUserByEmail(ctx, email)
		if errors.Is(err, store.ErrUserNotFound) {
			log.Warn().Str("func", "service.Seed").Str("email", email).Msg("admin account is not registered yet")
			return nil
		}
		if err != nil {
			return fmt.Errorf("seed find admin: %w", err)
		}

		if user.HasRole(models.RoleAdmin) {
			return nil
		}
		if err = repos.Users.AssignRole(ctx, user.ID, admin.ID); err != nil {
			return fmt.Errorf("seed assign admin: %w", err)
		}

		log.Info().Str("func", "service.Seed").Str("user_id", user.ID).Msg("admin role granted")
		return nil
	})
}
