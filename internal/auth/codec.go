// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package auth

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Reserved claim names written by [Codec.Encode].
const (
	ClaimExpiresAt = "exp"
	ClaimType      = "type"
)

// Codec signs and verifies claim sets with a shared secret. It is the only
// component that touches token signatures. A Codec is immutable and safe for
// concurrent use.
type Codec struct {
	key    []byte
	method jwt.SigningMethod
	now    func() time.Time
}

// CodecOption customizes a [Codec].
type CodecOption func(*Codec)

// WithClock replaces the time source used for exp injection and validation.
func WithClock(now func() time.Time) CodecOption {
	return func(c *Codec) {
		c.now = now
	}
}

// NewCodec returns a [Codec] for the HMAC algorithm alg (HS256, HS384 or
// HS512) keyed with signKey.
func NewCodec(signKey, alg string, opts ...CodecOption) (*Codec, error) {
	if signKey == "" {
		return nil, ErrEmptySignKey
	}

	var method jwt.SigningMethod
	switch alg {
	case jwt.SigningMethodHS256.Alg():
		method = jwt.SigningMethodHS256
	case jwt.SigningMethodHS384.Alg():
		method = jwt.SigningMethodHS384
	case jwt.SigningMethodHS512.Alg():
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
	}

	c := &Codec{
		key:    []byte(signKey),
		method: method,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Encode signs a shallow copy of claims with exp = now(UTC) + ttl and the
// given token type injected. Caller-supplied exp and type are overwritten.
// The input map is not modified.
func (c *Codec) Encode(claims map[string]any, ttl time.Duration, tokenType string) (string, error) {
	if ttl <= 0 {
		return "", ErrInvalidTTL
	}
	if tokenType == "" {
		return "", ErrEmptyTokenType
	}

	payload := make(jwt.MapClaims, len(claims)+2)
	maps.Copy(payload, claims)
	payload[ClaimExpiresAt] = c.now().UTC().Add(ttl).Unix()
	payload[ClaimType] = tokenType

	signed, err := jwt.NewWithClaims(c.method, payload).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}

	return signed, nil
}

// Decode verifies the token signature and expiry and returns its claims.
//
// It returns [ErrTokenExpired] when the signature is valid but exp is in the
// past, and an error wrapping [ErrTokenInvalid] for any other failure.
func (c *Codec) Decode(token string) (map[string]any, error) {
	if token == "" {
		return nil, ErrTokenInvalid
	}

	parsed, err := jwt.Parse(token,
		func(*jwt.Token) (any, error) { return c.key, nil },
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
