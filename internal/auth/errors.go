package auth

import "errors"

var (
	// ErrTokenExpired is returned when the token's exp claim is in the past.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers every other decoding failure: malformed input,
	// wrong algorithm, bad signature, missing exp.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrMissingToken is returned when no bearer token was presented.
	ErrMissingToken = errors.New("missing token")
	// ErrWrongTokenType is returned when a token of one type is presented
	// where another is required (e.g. refresh token on a resource route).
	ErrWrongTokenType = errors.New("wrong token type")

	ErrUnsupportedAlgorithm = errors.New("unsupported signing algorithm")
	ErrEmptySignKey         = errors.New("empty sign key")
	ErrInvalidTTL           = errors.New("token ttl must be positive")
	ErrEmptyTokenType       = errors.New("empty token type")
)
