package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-repa/internal/config"
	"github.com/MKhiriev/go-repa/internal/store"
	"github.com/MKhiriev/go-repa/models"
)

func TestAdminSetRoles(t *testing.T) {
	f := newAuthFixture(t, config.Limits{})
	admin := newAdminService(f.svc)

	f.users.EXPECT().FindUserByID(gomock.Any(), "u-1").Return(activeUser("u-1", "ana@example.com", models.RoleUser), nil)
	f.roles.EXPECT().EnsureRole(gomock.Any(), models.RoleAdmin).Return(models.Role{ID: 1, Name: models.RoleAdmin}, nil)
	f.roles.EXPECT().EnsureRole(gomock.Any(), models.RoleEditor).Return(models.Role{ID: 3, Name: models.RoleEditor}, nil)
	f.users.EXPECT().ReplaceRoles(gomock.Any(), "u-1", []int64{1, 3}).Return(nil)
	f.users.EXPECT().FindUserByID(gomock.Any(), "u-1").Return(activeUser("u-1", "ana@example.com", models.RoleAdmin, models.RoleEditor), nil)

	user, err := admin.SetRoles(context.Background(), "u-1", []string{" Admin", "editor", "ADMIN"})
	require.NoError(t, err)
	assert.Equal(t, []string{models.RoleAdmin, models.RoleEditor}, user.RoleNames())
}

func TestAdminSetRoles_Rejected(t *testing.T) {
	f := newAuthFixture(t, config.Limits{})
	admin := newAdminService(f.svc)

	_, err := admin.SetRoles(context.Background(), "u-1", []string{"unverified"})
	assert.ErrorIs(t, err, ErrUnassignableRole)

	_, err = admin.SetRoles(context.Background(), "u-1", nil)
	assert.ErrorIs(t, err, ErrUnassignableRole)

	f.users.EXPECT().FindUserByID(gomock.Any(), "u-2").Return(models.User{}, store.ErrUserNotFound)
	_, err = admin.SetRoles(context.Background(), "u-2", []string{"user"})
	requireKind(t, err, ErrNotFound)
}

func TestAdminSetActive_Reactivates(t *testing.T) {
	f := newAuthFixture(t, config.Limits{})
	admin := newAdminService(f.svc)

	f.users.EXPECT().SetUserActive(gomock.Any(), "u-1", true).Return(nil)
	f.users.EXPECT().FindUserByID(gomock.Any(), "u-1").Return(activeUser("u-1", "ana@example.com"), nil)

	user, err := admin.SetActive(context.Background(), "u-1", true)
	require.NoError(t, err)
	assert.True(t, user.IsActive)
}

func TestAdminListUsersAndTrainings(t *testing.T) {
	f := newAuthFixture(t, config.Limits{})
	admin := newAdminService(f.svc)

	f.users.EXPECT().ListUsers(gomock.Any(), uint64(10), uint64(20)).Return([]models.User{activeUser("u-1", "a@example.com")}, nil)
	users, err := admin.ListUsers(context.Background(), 10, 20)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	f.trainings.EXPECT().ListAllTrainings(gomock.Any()).Return([]models.Training{{ID: 1, UserID: "u-1"}, {ID: 2, UserID: "u-2"}}, nil)
	trainings, err := admin.ListAllTrainings(context.Background())
	require.NoError(t, err)
	assert.Len(t, trainings, 2)

	f.users.EXPECT().FindUserByID(gomock.Any(), "missing").Return(models.User{}, store.ErrUserNotFound)
	_, err = admin.GetUser(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSeed(t *testing.T) {
	f := newAuthFixture(t, config.Limits{})
	ctx := context.Background()
	adminRole := models.Role{ID: 1, Name: models.RoleAdmin}

	f.roles.EXPECT().EnsureRole(gomock.Any(), models.RoleAdmin).Return(adminRole, nil).Times(2)
	f.roles.EXPECT().EnsureRole(gomock.Any(), models.RoleUser).Return(models.Role{ID: 2, Name: models.RoleUser}, nil).Times(2)
	gomock.InOrder(
		f.users.EXPECT().FindUserByEmail(gomock.Any(), "root@example.com").Return(activeUser("u-1", "root@example.com", models.RoleUser), nil),
		f.users.EXPECT().FindUserByEmail(gomock.Any(), "root@example.com").Return(activeUser("u-1", "root@example.com", models.RoleUser, models.RoleAdmin), nil),
	)
	f.users.EXPECT().AssignRole(gomock.Any(), "u-1", adminRole.ID).Return(nil).Times(1)

	require.NoError(t, Seed(ctx, f.storages, " Root@Example.com", f.svc.logger))
	require.NoError(t, Seed(ctx, f.storages, "root@example.com", f.svc.logger))
}

func TestSeed_AdminNotRegistered(t *testing.T) {
	f := newAuthFixture(t, config.Limits{})

	f.roles.EXPECT().EnsureRole(gomock.Any(), gomock.Any()).Return(models.Role{ID: 1}, nil).Times(2)
	f.users.EXPECT().FindUserByEmail(gomock.Any(), "root@example.com").Return(models.User{}, store.ErrUserNotFound)

	assert.NoError(t, Seed(context.Background(), f.storages, "root@example.com", f.svc.logger))
}
