package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-repa/internal/auth"
	"github.com/MKhiriev/go-repa/internal/store"
)

// Error kinds. The transport layer maps each kind to a status code with
// errors.Is; anything that matches none of them is an internal failure.
var (
	ErrValidation      = errors.New("validation error")
	ErrConflict        = errors.New("conflict")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrTooManyAttempts = errors.New("too many attempts")
)

// Error is a failure with a message that is safe to show to the client.
type Error struct {
	Kind   error
	Detail string
	Err    error
}

func (e *Error) Error() string {
	return e.Detail
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func newError(kind error, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// validationError wraps a validator failure, keeping its message as the
// client detail.
func validationError(err error) *Error {
	return &Error{Kind: ErrValidation, Detail: err.Error(), Err: err}
}

var (
	ErrEmailRegistered      = newError(ErrConflict, "email already registered")
	ErrIncorrectCredentials = newError(ErrUnauthorized, "incorrect credentials")
	ErrAccountInactive      = newError(ErrForbidden, "account is not active")
	ErrInsufficientRole     = newError(ErrForbidden, "insufficient role")
	ErrTooManyLogins        = newError(ErrTooManyAttempts, "too many login attempts, try again later")

	ErrTokenMissing         = newError(ErrUnauthorized, "not authenticated")
	ErrTokenExpired         = newError(ErrUnauthorized, "token expired")
	ErrTokenInvalid         = newError(ErrUnauthorized, "invalid token")
	ErrTokenWrongType       = newError(ErrUnauthorized, "wrong token type")
	ErrTokenNotFound        = newError(ErrNotFound, "token not found or already used")
	ErrNotRegistrationToken = newError(ErrValidation, "token is not a registration token")

	ErrNothingToUpdate    = newError(ErrValidation, "nothing to update")
	ErrUnassignableRole   = newError(ErrValidation, "role cannot be assigned")
	ErrInvalidID          = newError(ErrValidation, "invalid id")
	ErrUserNotFound       = newError(ErrNotFound, "user not found")
	ErrTrainingNotFound   = newError(ErrNotFound, "training not found")
	ErrWorkNotFound       = newError(ErrNotFound, "work not found")
	ErrPersonNotFound     = newError(ErrNotFound, "person not found")
	ErrPersonExists       = newError(ErrConflict, "person already exists")
	ErrPersonUnknownEmail = newError(ErrValidation, "no account with this email")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// storeError translates well-known store sentinels into service errors and
// wraps everything else as an internal failure.
func storeError(err error, op string) error {
	switch {
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return ErrEmailRegistered
	case errors.Is(err, store.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, store.ErrTrainingNotFound):
		return ErrTrainingNotFound
	case errors.Is(err, store.ErrWorkNotFound):
		return ErrWorkNotFound
	case errors.Is(err, store.ErrPersonNotFound):
		return ErrPersonNotFound
	case errors.Is(err, store.ErrPersonAlreadyExists):
		return ErrPersonExists
	case errors.Is(err, store.ErrRecoveryTokenNotFound):
		return ErrTokenNotFound
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}

// TokenError translates codec and resolver failures.
func TokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return ErrTokenMissing
	case errors.Is(err, auth.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, auth.ErrWrongTokenType):
		return ErrTokenWrongType
	default:
		return ErrTokenInvalid
	}
}

// TokenErrorReason returns a short metric label for a token failure.
func TokenErrorReason(err error) string {
	switch {
	case errors.Is(err, ErrTokenMissing):
		return "missing"
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrTokenWrongType):
		return "wrong_type"
	default:
		return "invalid"
	}
}
