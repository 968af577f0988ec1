package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-repa/internal/logger"
	"github.com/MKhiriev/go-repa/models"
)

func newTestTransactor(t *testing.T) (*sqlTransactor, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &sqlTransactor{db: db, roles: expirable.NewLRU[string, models.Role](8, nil, time.Minute)}, mock
}

func TestWithinTx_Commit(t *testing.T) {
	tx, mock := newTestTransactor(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users SET is_active").WithArgs(true, "u-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tx.WithinTx(context.Background(), func(ctx context.Context, repos Repositories) error {
		return repos.Users.SetUserActive(ctx, "u-1", true)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	tx, mock := newTestTransactor(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users SET is_active").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err := tx.WithinTx(context.Background(), func(ctx context.Context, repos Repositories) error {
		if err := repos.Users.SetUserActive(ctx, "u-1", true); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_BeginError(t *testing.T) {
	tx, mock := newTestTransactor(t)
	mock.ExpectBegin().WillReturnError(errors.New("no connection"))

	err := tx.WithinTx(context.Background(), func(context.Context, Repositories) error {
		t.Fatal("fn must not run")
		return nil
	})
	assert.ErrorIs(t, err, ErrBeginningTransaction)
}

func TestWithinTx_CommitError(t *testing.T) {
	tx, mock := newTestTransactor(t)
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

	err := tx.WithinTx(context.Background(), func(context.Context, Repositories) error { return nil })
	assert.ErrorIs(t, err, ErrCommitingTransaction)
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	tx, mock := newTestTransactor(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = tx.WithinTx(context.Background(), func(context.Context, Repositories) error {
			panic("unexpected")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewStorages_DefaultsToNopCounter(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewStorages(&DB{DB: db}, nil, logger.Nop())
	require.NotNil(t, s.Users)
	require.NotNil(t, s.Transactor)

	count, err := s.LoginAttempts.Register(context.Background(), "a@b.c")
	assert.NoError(t, err)
	assert.Zero(t, count)
}
