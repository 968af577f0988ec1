package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/MKhiriev/go-repa/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// Querier is satisfied by both *sql.DB and *sql.Tx, so every repository can
// run either on the pool or inside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// UserRepository persists accounts and their role assignments.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
	ListUsers(ctx context.Context, limit, offset uint64) ([]models.User, error)
	// UpdateUser writes e-mail and password hash of an existing user.
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	SetUserActive(ctx context.Context, id string, active bool) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	// AssignRole is idempotent.
	AssignRole(ctx context.Context, userID string, roleID int64) error
	// ReplaceRoles swaps the full role set of a user.
	ReplaceRoles(ctx context.Context, userID string, roleIDs []int64) error
	CountUsersByState(ctx context.Context) (models.UserStats, error)
}

// RoleRepository persists role rows.
type RoleRepository interface {
	// EnsureRole returns the role with the given name, creating it when
	// missing. Concurrent callers observe the same row.
	EnsureRole(ctx context.Context, name string) (models.Role, error)
	FindRoleByName(ctx context.Context, name string) (models.Role, error)
	ListRoles(ctx context.Context) ([]models.Role, error)
}

// RecoveryTokenRepository persists e-mail verification records.
type RecoveryTokenRepository interface {
	CreateRecoveryToken(ctx context.Context, token models.RecoveryToken) (models.RecoveryToken, error)
	// FindActiveRecoveryToken locks the matching active row for the rest of
	// the surrounding transaction.
	FindActiveRecoveryToken(ctx context.Context, token string) (models.RecoveryToken, error)
	DeactivateRecoveryToken(ctx context.Context, id string) error
}

// TrainingRepository persists trainings. Every method taking a userID is
// scoped to that owner; only ListAllTrainings crosses owners.
type TrainingRepository interface {
	CreateTraining(ctx context.Context, training models.Training) (models.Training, error)
	GetTraining(ctx context.Context, id int64, userID string) (models.Training, error)
	ListTrainings(ctx context.Context, userID string) ([]models.Training, error)
	ListAllTrainings(ctx context.Context) ([]models.Training, error)
	UpdateTraining(ctx context.Context, training models.Training) (models.Training, error)
	DeleteTraining(ctx context.Context, id int64, userID string) error
}

// WorkRepository persists works together with their role and task links.
// Writes touch several tables and must run inside a transaction.
type WorkRepository interface {
	CreateWork(ctx context.Context, work models.Work) (models.Work, error)
	GetWork(ctx context.Context, id int64, userID string) (models.Work, error)
	ListWorks(ctx context.Context, userID string) ([]models.Work, error)
	UpdateWork(ctx context.Context, work models.Work) (models.Work, error)
	DeleteWork(ctx context.Context, id int64, userID string) error
	ListWorkRoles(ctx context.Context) ([]models.WorkRole, error)
	ListWorkTasks(ctx context.Context) ([]models.WorkTask, error)
}

// PersonRepository persists person records.
type PersonRepository interface {
	CreatePerson(ctx context.Context, person models.Person) (models.Person, error)
	GetPerson(ctx context.Context, id int64) (models.Person, error)
	UpdatePerson(ctx context.Context, person models.Person) (models.Person, error)
	DeletePerson(ctx context.Context, id int64) error
}

// Transactor runs fn inside a single database transaction. The repositories
// handed to fn are bound to that transaction; returning an error rolls
// every write back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// LoginAttemptCounter tracks failed logins per e-mail in a fixed window.
type LoginAttemptCounter interface {
	// Register records one attempt and returns the number of attempts in
	// the current window.
	Register(ctx context.Context, email string) (int64, error)
	Reset(ctx context.Context, email string) error
}
