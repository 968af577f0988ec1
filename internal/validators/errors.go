package validators

import (
	"errors"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")

	// ErrInvalidRequest is matched by every request payload failure.
	ErrInvalidRequest = errors.New("invalid request")

	// Password policy rules, checked in this order.
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters long")
	ErrPasswordNoUppercase = errors.New("password must contain at least one uppercase letter")
	ErrPasswordNoDigit     = errors.New("password must contain at least one digit")
	ErrPasswordTooLong     = errors.New("password must be at most 72 bytes long")
)

// FieldsError lists human-readable field failures of one payload.
type FieldsError struct {
	Messages []string
}

func (e *FieldsError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// Is makes every FieldsError match [ErrInvalidRequest].
func (e *FieldsError) Is(target error) bool {
	return target == ErrInvalidRequest
}
