package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-repa/internal/auth"
	"github.com/MKhiriev/go-repa/internal/service"
	"github.com/MKhiriev/go-repa/models"
)

const userUUID = "0190a3d6-1c2e-7b7a-9a51-2f3c4d5e6f70"

func adminServices() *service.Services {
	return &service.Services{
		AdminService: &mockAdminService{
			listUsersFn: func(_ context.Context, limit, offset uint64) ([]models.User, error) {
				return []models.User{{ID: userUUID, Email: "ana@example.com"}}, nil
			},
			setRolesFn: func(_ context.Context, id string, roles []string) (models.User, error) {
				u := models.User{ID: id}
				for _, r := range roles {
					u.Roles = append(u.Roles, models.Role{Name: r})
				}
				return u, nil
			},
			setActiveFn: func(_ context.Context, id string, active bool) (models.User, error) {
				return models.User{ID: id, IsActive: active}, nil
			},
			listAllTrainingsFn: func(_ context.Context) ([]models.Training, error) {
				return []models.Training{}, nil
			},
		},
	}
}

// ─────────────────────────────────────────────
// auth middleware
// ─────────────────────────────────────────────

func TestAuth_Middleware_TableTest(t *testing.T) {
	env := newTestEnv(t, adminServices())

	expired, err := auth.NewCodec(testSignKey, "HS256", auth.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }))
	require.NoError(t, err)
	expiredToken, err := expired.Encode(auth.UserClaims(models.User{ID: "u-1", IsActive: true}), time.Hour, models.TokenTypeAccess)
	require.NoError(t, err)

	refreshToken, err := env.codec.Encode(auth.UserClaims(models.User{ID: "u-1", IsActive: true}), time.Hour, models.TokenTypeRefresh)
	require.NoError(t, err)

	unverified, err := env.codec.Encode(auth.VerificationClaims(models.User{ID: "u-1"}), time.Hour, models.TokenTypeAccess)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantDetail string
	}{
		{name: "no header", wantStatus: http.StatusUnauthorized, wantDetail: "not authenticated"},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized, wantDetail: "not authenticated"},
		{name: "garbage", header: "Bearer not.a.jwt", wantStatus: http.StatusUnauthorized, wantDetail: "invalid token"},
		{name: "expired", header: "Bearer " + expiredToken, wantStatus: http.StatusUnauthorized, wantDetail: "token expired"},
		{name: "refresh token", header: "Bearer " + refreshToken, wantStatus: http.StatusUnauthorized, wantDetail: "wrong token type"},
		{name: "registration token", header: "Bearer " + unverified, wantStatus: http.StatusUnauthorized, wantDetail: "wrong token type"},
		{name: "inactive account", header: "Bearer " + env.token(t, "u-1", false, models.RoleAdmin), wantStatus: http.StatusForbidden, wantDetail: "account is not active"},
		{name: "admin", header: "Bearer " + env.token(t, "u-1", true, models.RoleAdmin), wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest(http.MethodGet, "/admin_user/users", "")
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := serve(env.router, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, detailOf(t, rec))
			}
		})
	}
}

// ─────────────────────────────────────────────
// role gate
// ─────────────────────────────────────────────

func TestAdminRoute_ForbiddenThenAllowedAfterNewToken(t *testing.T) {
	env := newTestEnv(t, adminServices())

	userToken := env.token(t, "u-1", true, models.RoleUser)
	rec := env.do(t, http.MethodGet, "/admin_user/users", userToken, "")
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "insufficient role", detailOf(t, rec))
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.RBACDenialsTotal))

	adminToken := env.token(t, "u-1", true, models.RoleUser, models.RoleAdmin)
	rec = env.do(t, http.MethodGet, "/admin_user/users", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ana@example.com")
}

func TestAdminRoutes(t *testing.T) {
	env := newTestEnv(t, adminServices())
	token := env.token(t, "root", true, models.RoleAdmin)

	rec := env.do(t, http.MethodPost, "/admin_user/"+userUUID+"/roles", token, `{"roles":["editor"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rol":"editor"`)

	rec = env.do(t, http.MethodPatch, "/admin_user/"+userUUID+"/active", token, `{"is_active":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_active":true`)

	rec = env.do(t, http.MethodPatch, "/admin_user/"+userUUID+"/active", token, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/admin_user/not-a-uuid/roles", token, `{"roles":["editor"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid id", detailOf(t, rec))

	rec = env.do(t, http.MethodGet, "/admin_user/users?limit=abc", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/admin_training/training", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPersonRoutes_RoleMatrix(t *testing.T) {
	svcs := &service.Services{
		PersonService: &mockPersonService{
			createFn: func(_ context.Context, p models.Person) (models.Person, error) {
				p.ID = 1
				return p, nil
			},
			getFn: func(_ context.Context, id int64) (models.Person, error) {
				return models.Person{ID: id}, nil
			},
			deleteFn: func(_ context.Context, id int64) error {
				return nil
			},
		},
	}
	env := newTestEnv(t, svcs)

	viewer := env.token(t, "v", true, models.RoleViewer)
	editor := env.token(t, "e", true, models.RoleEditor)
	admin := env.token(t, "a", true, models.RoleAdmin)

	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/persons/1", viewer, "").Code)
	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodPost, "/persons/", viewer, `{}`).Code)
	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodGet, "/persons/1", editor, "").Code)
	assert.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/persons/", editor, `{"user_email":"a@example.com"}`).Code)
	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodDelete, "/persons/1", editor, "").Code)
	assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, "/persons/1", admin, "").Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/persons/zero", admin, "").Code)
}

func TestTrainingRoutes_ScopedToPrincipal(t *testing.T) {
	svcs := &service.Services{
		TrainingService: &mockTrainingService{
			getFn: func(_ context.Context, p auth.Principal, id int64) (models.Training, error) {
				if p.ID != "owner" {
					return models.Training{}, service.ErrTrainingNotFound
				}
				return models.Training{ID: id, UserID: p.ID}, nil
			},
			deleteFn: func(_ context.Context, p auth.Principal, id int64) error {
				return nil
			},
		},
	}
	env := newTestEnv(t, svcs)

	rec := env.do(t, http.MethodGet, "/training/me/5", env.token(t, "owner", true, models.RoleUser), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/training/me/5", env.token(t, "stranger", true, models.RoleUser), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "training not found", detailOf(t, rec))

	rec = env.do(t, http.MethodDelete, "/training/delete/5", env.token(t, "owner", true, models.RoleUser), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireRoles_NoPrincipal(t *testing.T) {
	env := newTestEnv(t, &service.Services{})
	called := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })

	rec := serve(env.handler.requireRoles(models.RoleAdmin)(next), newRequest(http.MethodGet, "/", ""))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}
