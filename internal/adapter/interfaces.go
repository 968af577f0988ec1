// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a client for the go-repa REST API.
//
// [ServerAdapter] hides the transport from callers. Non-2xx responses are
// mapped by mapHTTPError to the sentinel errors in errors.go so callers can
// branch with [errors.Is] (e.g. [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-repa/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the go-repa server.
type ServerAdapter interface {
	// SetToken stores the access token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored access token, or "" if none is set.
	Token() string

	// SetRefreshToken stores the refresh token used by Refresh.
	SetRefreshToken(token string)

	// Register creates an inactive account. The verification link is
	// delivered out of band.
	Register(ctx context.Context, creds models.CredentialsRequest) (models.User, error)

	// Confirm activates the account bound to a registration token.
	Confirm(ctx context.Context, token string) (models.User, error)

	// Login exchanges credentials for a token pair and stores both tokens.
	Login(ctx context.Context, creds models.CredentialsRequest) (models.TokenPair, error)

	// Refresh exchanges the stored refresh token for a new pair.
	Refresh(ctx context.Context) (models.TokenPair, error)

	// Me returns the account behind the stored access token.
	Me(ctx context.Context) (models.User, error)

	// Version returns the server version string.
	Version(ctx context.Context) (string, error)
}
