package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-repa/internal/auth"
	"github.com/MKhiriev/go-repa/internal/config"
	"github.com/MKhiriev/go-repa/internal/crypto"
	"github.com/MKhiriev/go-repa/internal/handler"
	"github.com/MKhiriev/go-repa/internal/logger"
	"github.com/MKhiriev/go-repa/internal/mailer"
	"github.com/MKhiriev/go-repa/internal/metrics"
	"github.com/MKhiriev/go-repa/internal/server"
	"github.com/MKhiriev/go-repa/internal/service"
	"github.com/MKhiriev/go-repa/internal/store"
	"github.com/MKhiriev/go-repa/internal/utils"
	"github.com/MKhiriev/go-repa/internal/validators"
	"github.com/MKhiriev/go-repa/internal/workers"
	"github.com/MKhiriev/go-repa/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	log := logger.NewLogger("go-repa-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	var (
		attempts store.LoginAttemptCounter
		mail     mailer.Mailer = mailer.NewLogMailer(log)
	)
	if cfg.Storage.Redis.Address != "" {
		var rdb *redis.Client
		rdb, err = store.NewConnectRedis(ctx, cfg.Storage.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error connecting to redis")
		}
		defer rdb.Close()

		attempts = store.NewRedisLoginAttemptCounter(rdb, cfg.Limits.LoginWindow)
		mail = mailer.NewRedisQueueMailer(rdb)
	} else {
		log.Warn().Msg("redis is not configured: login throttling disabled, verification links are only logged")
	}

	storages := store.NewStorages(db, attempts, log)

	codec, err := auth.NewCodec(cfg.App.TokenSignKey, cfg.App.TokenAlgorithm)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating token codec")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(registry)

	services, err := service.NewServices(service.AuthDeps{
		Storages:  storages,
		Codec:     codec,
		Hasher:    crypto.NewBcryptHasher(cfg.App.BcryptCost),
		Mailer:    mail,
		Validator: validators.NewRequestValidator(),
		IDs:       utils.NewUUIDGenerator(),
		Metrics:   m,
	}, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	if err = service.Seed(ctx, storages, cfg.App.AdminEmail, log); err != nil {
		log.Fatal().Err(err).Msg("error seeding roles")
	}

	workers.NewWorkers(cfg.Workers, storages.Users, m, log).Run(ctx)

	handlers, err := handler.NewHandlers(services, auth.NewResolver(codec), m, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}
