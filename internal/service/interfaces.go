package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-repa/internal/auth"
	"github.com/MKhiriev/go-repa/models"
)

// AuthService implements the account lifecycle: registration, e-mail
// confirmation, login, token refresh and self-service profile changes.
type AuthService interface {
	Register(ctx context.Context, req models.CredentialsRequest) (models.User, error)
	Confirm(ctx context.Context, token string) (models.User, error)
	Login(ctx context.Context, req models.CredentialsRequest) (models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)
	Me(ctx context.Context, principal auth.Principal) (models.User, error)
	UpdateProfile(ctx context.Context, principal auth.Principal, update models.ProfileUpdate) (models.User, error)
	Deactivate(ctx context.Context, principal auth.Principal) (models.User, error)
}

// AdminService manages other people's accounts.
type AdminService interface {
	ListUsers(ctx context.Context, limit, offset uint64) ([]models.User, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	UpdateUser(ctx context.Context, id string, update models.ProfileUpdate) (models.User, error)
	SetActive(ctx context.Context, id string, active bool) (models.User, error)
	SetRoles(ctx context.Context, id string, roles []string) (models.User, error)
	ListAllTrainings(ctx context.Context) ([]models.Training, error)
}

// TrainingService manages the trainings owned by the principal.
type TrainingService interface {
	CreateTraining(ctx context.Context, principal auth.Principal, training models.Training) (models.Training, error)
	GetTraining(ctx context.Context, principal auth.Principal, id int64) (models.Training, error)
	ListTrainings(ctx context.Context, principal auth.Principal) ([]models.Training, error)
	UpdateTraining(ctx context.Context, principal auth.Principal, id int64, training models.Training) (models.Training, error)
	DeleteTraining(ctx context.Context, principal auth.Principal, id int64) error
}

// WorkService manages the works owned by the principal.
type WorkService interface {
	CreateWork(ctx context.Context, principal auth.Principal, work models.Work) (models.Work, error)
	GetWork(ctx context.Context, principal auth.Principal, id int64) (models.Work, error)
	ListWorks(ctx context.Context, principal auth.Principal) ([]models.Work, error)
	UpdateWork(ctx context.Context, principal auth.Principal, id int64, work models.Work) (models.Work, error)
	DeleteWork(ctx context.Context, principal auth.Principal, id int64) error
	ListWorkRoles(ctx context.Context) ([]models.WorkRole, error)
	ListWorkTasks(ctx context.Context) ([]models.WorkTask, error)
}

// PersonService manages person records. Access is gated by role at the
// transport layer.
type PersonService interface {
	CreatePerson(ctx context.Context, person models.Person) (models.Person, error)
	GetPerson(ctx context.Context, id int64) (models.Person, error)
	UpdatePerson(ctx context.Context, id int64, person models.Person) (models.Person, error)
	DeletePerson(ctx context.Context, id int64) error
}

// AppInfoService exposes build information.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// TokenCodec signs and verifies claim sets.
type TokenCodec interface {
	Encode(claims map[string]any, ttl time.Duration, tokenType string) (string, error)
	Decode(token string) (map[string]any, error)
}

// IDGenerator produces unique identifiers.
type IDGenerator interface {
	Generate() string
}
