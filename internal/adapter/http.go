package adapter

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-repa/models"
)

// Register implements [ServerAdapter]. POST /users/register.
func (h *httpServerAdapter) Register(ctx context.Context, creds models.CredentialsRequest) (models.User, error) {
	var user models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(creds).
		SetResult(&user).
		Post("/users/register")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	h.logger.Debug().Str("user_id", user.ID).Msg("registered")
	return user, nil
}

// Confirm implements [ServerAdapter]. POST /users/confirm.
func (h *httpServerAdapter) Confirm(ctx context.Context, token string) (models.User, error) {
	var user models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.ConfirmRequest{Token: token}).
		SetResult(&user).
		Post("/users/confirm")
	if err != nil {
		return models.User{}, fmt.Errorf("confirm request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Login implements [ServerAdapter]. POST /users/login. Both tokens of the
// returned pair are stored for later calls.
func (h *httpServerAdapter) Login(ctx context.Context, creds models.CredentialsRequest) (models.TokenPair, error) {
	var pair models.TokenPair

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(creds).
		SetResult(&pair).
		Post("/users/login")
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TokenPair{}, err
	}

	h.setPair(pair.AccessToken, pair.RefreshToken)
	return pair, nil
}

// Refresh implements [ServerAdapter]. POST /users/refresh.
func (h *httpServerAdapter) Refresh(ctx context.Context) (models.TokenPair, error) {
	refresh := h.storedRefreshToken()
	if refresh == "" {
		return models.TokenPair{}, ErrNoRefreshToken
	}

	var pair models.TokenPair

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.RefreshRequest{RefreshToken: refresh}).
		SetResult(&pair).
		Post("/users/refresh")
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("refresh request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TokenPair{}, err
	}

	h.setPair(pair.AccessToken, pair.RefreshToken)
	return pair, nil
}

// Me implements [ServerAdapter]. GET /users/me.
func (h *httpServerAdapter) Me(ctx context.Context) (models.User, error) {
	var user models.User

	resp, err := h.authedRequest(ctx).
		SetResult(&user).
		Get("/users/me")
	if err != nil {
		return models.User{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Version implements [ServerAdapter]. GET /api/version.
func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return string(resp.Body()), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
