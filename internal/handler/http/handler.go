package http

import (
	"time"

	"github.com/MKhiriev/go-repa/internal/auth"
	"github.com/MKhiriev/go-repa/internal/config"
	"github.com/MKhiriev/go-repa/internal/logger"
	"github.com/MKhiriev/go-repa/internal/metrics"
	"github.com/MKhiriev/go-repa/internal/service"
)

type Handler struct {
	services *service.Services
	resolver *auth.Resolver
	metrics  *metrics.Metrics

	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, resolver *auth.Resolver, m *metrics.Metrics, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		resolver:       resolver,
		metrics:        m,
		requestTimeout: cfg.RequestTimeout,
		logger:         logger,
	}
}
