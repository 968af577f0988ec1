// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of request decoding. They are reported to the client as
// validation failures.
var (
	// ErrInvalidJSON is returned when the request body is not valid JSON for
	// the expected payload.
	ErrInvalidJSON = errors.New("invalid JSON body")

	// ErrInvalidQuery is returned when a query parameter cannot be parsed.
	ErrInvalidQuery = errors.New("invalid query parameter")
)
