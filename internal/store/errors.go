package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when a user insert or update collides
	// with the unique e-mail index.
	ErrEmailAlreadyExists = errors.New("email already registered")

	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrRoleNotFound is returned when a role name is not present in the
	// roles table.
	ErrRoleNotFound = errors.New("role not found")

	// ErrRecoveryTokenNotFound is returned when no active recovery record
	// matches the given token payload.
	ErrRecoveryTokenNotFound = errors.New("recovery token not found")

	// ErrTokenAlreadyExists is returned when the same token payload is stored
	// twice.
	ErrTokenAlreadyExists = errors.New("recovery token already exists")

	// ErrTrainingNotFound is returned when a training does not exist or is
	// owned by someone else.
	ErrTrainingNotFound = errors.New("training not found")

	// ErrWorkNotFound is returned when a work does not exist or is owned by
	// someone else.
	ErrWorkNotFound = errors.New("work not found")

	// ErrPersonNotFound is returned when no person record matches.
	ErrPersonNotFound = errors.New("person not found")

	// ErrPersonAlreadyExists is returned when a person collides on e-mail or
	// tax id.
	ErrPersonAlreadyExists = errors.New("person already exists")

	// ErrUnknownLookup is returned when a work lookup table name is not one
	// of the supported ones.
	ErrUnknownLookup = errors.New("unknown work lookup")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRows is returned when scanning fails mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
