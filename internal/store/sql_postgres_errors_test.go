package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestConstraintViolations(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		unique     bool
		foreignKey bool
	}{
		{name: "unique", err: &pgconn.PgError{Code: pgerrcode.UniqueViolation}, unique: true},
		{name: "wrapped unique", err: fmt.Errorf("insert user: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation}), unique: true},
		{name: "foreign key", err: &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, foreignKey: true},
		{name: "deadlock", err: &pgconn.PgError{Code: pgerrcode.DeadlockDetected}},
		{name: "not a server error", err: errors.New("connection reset")},
		{name: "nil", err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unique, isUniqueViolation(tt.err))
			assert.Equal(t, tt.foreignKey, isForeignKeyViolation(tt.err))
		})
	}
}
