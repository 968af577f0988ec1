package handler

import (
	"github.com/MKhiriev/go-repa/internal/auth"
	"github.com/MKhiriev/go-repa/internal/config"
	"github.com/MKhiriev/go-repa/internal/handler/http"
	"github.com/MKhiriev/go-repa/internal/logger"
	"github.com/MKhiriev/go-repa/internal/metrics"
	"github.com/MKhiriev/go-repa/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, resolver *auth.Resolver, m *metrics.Metrics, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}
	if resolver == nil {
		return nil, errNoResolver
	}

	return &Handlers{
		HTTP: http.NewHandler(services, resolver, m, cfg, logger),
	}, nil
}
