// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-repa/internal/config"
	"github.com/MKhiriev/go-repa/internal/logger"
	"github.com/MKhiriev/go-repa/internal/utils"
	"github.com/MKhiriev/go-repa/models"
)

func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	a, err := NewHTTPServerAdapter(config.ClientConfig{ServerAddress: serverURL, RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	utils.WriteError(w, detail, status)
}

// ── constructor ─────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "localhost:8080", want: "http://localhost:8080"},
		{in: "https://repa.example.com/", want: "https://repa.example.com"},
		{in: "  ", wantErr: true},
		{in: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPServerAdapter_PresetToken(t *testing.T) {
	a, err := NewHTTPServerAdapter(config.ClientConfig{ServerAddress: "localhost:1", Token: " tok "}, logger.Nop())

	require.NoError(t, err)
	assert.Equal(t, "tok", a.Token())
}

// ── Register / Confirm ──────────────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/register", r.URL.Path)

		var creds models.CredentialsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "ana@example.com", creds.Email)

		_, _ = utils.WriteJSON(w, models.User{ID: "u-1", Email: creds.Email}, http.StatusCreated)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Register(context.Background(), models.CredentialsRequest{Email: "ana@example.com", Password: "Valid123"})

	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)
	assert.Empty(t, a.Token())
}

func TestRegister_Duplicate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusBadRequest, "email already registered")
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Register(context.Background(), models.CredentialsRequest{Email: "ana@example.com"})

	require.ErrorIs(t, err, ErrBadRequest)
	assert.Contains(t, err.Error(), "email already registered")
}

func TestConfirm_SendsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/confirm", r.URL.Path)
		var body models.ConfirmRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.Token != "good" {
			writeDetail(w, http.StatusNotFound, "token not found or already used")
			return
		}
		_, _ = utils.WriteJSON(w, models.User{ID: "u-1", IsActive: true}, http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)

	user, err := a.Confirm(context.Background(), "good")
	require.NoError(t, err)
	assert.True(t, user.IsActive)

	_, err = a.Confirm(context.Background(), "used")
	assert.ErrorIs(t, err, ErrNotFound)
}

// ── Login / Refresh / Me ────────────────────────────────────────────────────

func TestLoginRefreshMe_Flow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/login":
			_, _ = utils.WriteJSON(w, models.NewBearerTokenPair("access-1", "refresh-1"), http.StatusOK)
		case "/users/refresh":
			var body models.RefreshRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "refresh-1", body.RefreshToken)
			_, _ = utils.WriteJSON(w, models.NewBearerTokenPair("access-2", "refresh-2"), http.StatusOK)
		case "/users/me":
			if r.Header.Get("Authorization") != "Bearer access-2" {
				writeDetail(w, http.StatusUnauthorized, "invalid token")
				return
			}
			_, _ = utils.WriteJSON(w, models.User{ID: "u-1"}, http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	ctx := context.Background()

	pair, err := a.Login(ctx, models.CredentialsRequest{Email: "ana@example.com", Password: "Valid123"})
	require.NoError(t, err)
	assert.Equal(t, "access-1", pair.AccessToken)
	assert.Equal(t, "access-1", a.Token())

	_, err = a.Me(ctx)
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = a.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access-2", a.Token())

	user, err := a.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
}

func TestRefresh_WithoutLogin(t *testing.T) {
	a := newTestAdapter(t, "http://127.0.0.1:1")

	_, err := a.Refresh(context.Background())

	assert.ErrorIs(t, err, ErrNoRefreshToken)
}

func TestRefresh_WithPresetToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body models.RefreshRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.RefreshToken != "saved" {
			writeDetail(w, http.StatusUnauthorized, "wrong token type")
			return
		}
		_, _ = utils.WriteJSON(w, models.NewBearerTokenPair("a", "r"), http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetRefreshToken("saved")

	pair, err := a.Refresh(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "a", pair.AccessToken)
	assert.Equal(t, "a", a.Token())
}

func TestLogin_StatusMapping(t *testing.T) {
	tests := []struct {
		status  int
		wantErr error
	}{
		{status: http.StatusUnauthorized, wantErr: ErrUnauthorized},
		{status: http.StatusForbidden, wantErr: ErrForbidden},
		{status: http.StatusTooManyRequests, wantErr: ErrTooManyRequests},
		{status: http.StatusInternalServerError, wantErr: ErrInternalServerError},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeDetail(w, tt.status, "nope")
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL)
			_, err := a.Login(context.Background(), models.CredentialsRequest{})

			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, a.Token())
		})
	}
}

func TestMapHTTPError_UnknownStatusUsesRawBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Version(context.Background())

	require.Error(t, err)
	assert.Equal(t, "http 418: short and stout", err.Error())
}

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("1.2.3"))
	}))
	defer srv.Close()

	v, err := newTestAdapter(t, srv.URL).Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.2.3", v)
}
