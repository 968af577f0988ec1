package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-repa/internal/logger"
	"github.com/MKhiriev/go-repa/models"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	roleCacheSize = 128
	roleCacheTTL  = 10 * time.Minute
)

// Repositories bundles every repository bound to one [Querier].
type Repositories struct {
	Users          UserRepository
	Roles          RoleRepository
	RecoveryTokens RecoveryTokenRepository
	Trainings      TrainingRepository
	Works          WorkRepository
	Persons        PersonRepository
}

// Storages is the set of storage dependencies handed to the service layer.
// The embedded repositories run on the connection pool.
type Storages struct {
	Repositories
	Transactor    Transactor
	LoginAttempts LoginAttemptCounter
}

// NewStorages wires repositories on top of db. attempts may be nil, in which
// case login throttling is a no-op.
func NewStorages(db *DB, attempts LoginAttemptCounter, log *logger.Logger) *Storages {
	log.Debug().Msg("creating storages")

	roles := expirable.NewLRU[string, models.Role](roleCacheSize, nil, roleCacheTTL)
	if attempts == nil {
		attempts = NopLoginAttemptCounter{}
	}

	return &Storages{
		Repositories:  newRepositories(db.DB, roles, true),
		Transactor:    &sqlTransactor{db: db.DB, roles: roles},
		LoginAttempts: attempts,
	}
}

// newRepositories binds all repositories to q. Role rows are written into the
// shared cache only when q is not a transaction, so an id that might be
// rolled back never gets cached.
func newRepositories(q Querier, roles *expirable.LRU[string, models.Role], fillCache bool) Repositories {
	return Repositories{
		Users:          &userRepository{db: q},
		Roles:          &roleRepository{db: q, cache: roles, fillCache: fillCache},
		RecoveryTokens: &recoveryTokenRepository{db: q},
		Trainings:      &trainingRepository{db: q},
		Works:          &workRepository{db: q},
		Persons:        &personRepository{db: q},
	}
}

type sqlTransactor struct {
	db    *sql.DB
	roles *expirable.LRU[string, models.Role]
}

// WithinTx implements [Transactor].
func (t *sqlTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	log := logger.FromContext(ctx)

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*sqlTransactor.WithinTx").Msg("error beginning transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(ctx, newRepositories(tx, t.roles, false)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Err(rbErr).Str("func", "*sqlTransactor.WithinTx").Msg("error rolling back transaction")
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*sqlTransactor.WithinTx").Msg("error committing transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
