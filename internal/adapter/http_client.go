package adapter

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-repa/internal/config"
	"github.com/MKhiriev/go-repa/internal/logger"
	"github.com/MKhiriev/go-repa/internal/utils"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu           sync.RWMutex
	token        string
	refreshToken string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the REST implementation of [ServerAdapter].
// The address may omit the scheme, in which case http is assumed.
func NewHTTPServerAdapter(cfg config.ClientConfig, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	a := &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}
	a.SetToken(cfg.Token)

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter].
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// SetRefreshToken implements [ServerAdapter].
func (h *httpServerAdapter) SetRefreshToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.refreshToken = strings.TrimSpace(token)
}

func (h *httpServerAdapter) setPair(access, refresh string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = access
	h.refreshToken = refresh
}

func (h *httpServerAdapter) storedRefreshToken() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.refreshToken
}
