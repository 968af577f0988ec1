// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides input validation for request payloads and
// the password policy.
//
// Validation never panics: every rule reports its failure as an error that
// callers compose with errors.Is / errors.As. Request validation failures
// wrap [ErrInvalidRequest]; password policy failures are returned as the
// specific rule sentinel.
package validators

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/validator_mock.go -package=mock

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
