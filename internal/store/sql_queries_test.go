package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-repa/models"
)

func TestBuildInsertUser(t *testing.T) {
	query, args, err := buildInsertUser(models.User{ID: "u-1", Email: "a@b.c", PasswordHash: "h"})
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO users (id,email,password_hash,is_active) VALUES ($1,$2,$3,$4) "+userReturning, query)
	assert.Equal(t, []any{"u-1", "a@b.c", "h", false}, args)
}

func TestBuildSelectActiveRecoveryToken_LocksRow(t *testing.T) {
	query, args, err := buildSelectActiveRecoveryToken("tok")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(query, "FOR UPDATE"), query)
	assert.Equal(t, []any{true, "tok"}, args)
}

func TestOwnerFilter(t *testing.T) {
	query, args, err := buildSelectWork(3, "u-1")
	require.NoError(t, err)
	assert.Contains(t, query, "WHERE id = $1 AND user_id = $2")
	assert.Equal(t, []any{int64(3), "u-1"}, args)

	// an empty owner is still a filter and matches nothing
	query, args, err = buildSelectWork(3, "")
	require.NoError(t, err)
	assert.Contains(t, query, "WHERE id = $1 AND user_id = $2")
	assert.Equal(t, []any{int64(3), ""}, args)
}

func TestBuildListTrainings_ScopedUnlessListingAll(t *testing.T) {
	tests := []struct {
		name      string
		build     func() (string, []any, error)
		wantWhere bool
		wantArgs  []any
	}{
		{name: "owner", build: func() (string, []any, error) { return buildListTrainings("u-1") }, wantWhere: true, wantArgs: []any{"u-1"}},
		{name: "empty owner", build: func() (string, []any, error) { return buildListTrainings("") }, wantWhere: true, wantArgs: []any{""}},
		{name: "works of empty owner", build: func() (string, []any, error) { return buildListWorks("") }, wantWhere: true, wantArgs: []any{""}},
		{name: "all", build: buildListAllTrainings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := tt.build()
			require.NoError(t, err)
			if !tt.wantWhere {
				assert.NotContains(t, query, "WHERE")
				assert.Empty(t, args)
				return
			}
			assert.Contains(t, query, "WHERE user_id = $1")
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBuildUpdateTraining_SkipsIdentityColumns(t *testing.T) {
	query, args, err := buildUpdateTraining(models.Training{ID: 1, UserID: "u-1", CourseName: "Go"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "UPDATE trainings SET course_name = $1"), query)
	assert.NotContains(t, query, "SET id")
	// 18 editable columns plus id and user_id in the filter
	assert.Len(t, args, len(trainingColumns))
}

func TestBuildUpdatePerson_KeepsEmail(t *testing.T) {
	query, args, err := buildUpdatePerson(models.Person{ID: 2, UserEmail: "a@b.c", FirstName: "Ana"})
	require.NoError(t, err)

	assert.NotContains(t, query, "user_email")
	assert.Equal(t, "Ana", args[0])
	assert.Equal(t, int64(2), args[len(args)-1])
}

func TestLookupBuilders_RejectUnknownTable(t *testing.T) {
	_, _, err := buildEnsureLookup("users", "x")
	assert.ErrorIs(t, err, ErrUnknownLookup)

	_, _, err = buildListLookup("roles")
	assert.ErrorIs(t, err, ErrUnknownLookup)

	_, _, err = buildInsertLookupLinks("works", 1, []int64{1})
	assert.ErrorIs(t, err, ErrUnknownLookup)
}

func TestBuildCountUsersByState(t *testing.T) {
	query, _, err := buildCountUsersByState()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM users u")
	assert.Contains(t, query, "GROUP BY state")
	assert.Contains(t, query, "'deactivated'")
}
