package service

import (
	"github.com/MKhiriev/go-repa/internal/config"
	"github.com/MKhiriev/go-repa/internal/logger"
)

type Services struct {
	AuthService     AuthService
	AdminService    AdminService
	TrainingService TrainingService
	WorkService     WorkService
	PersonService   PersonService
	AppInfoService  AppInfoService
}

func NewServices(deps AuthDeps, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	accounts := newAuthService(deps, cfg.App, cfg.Limits, logger)

	return &Services{
		AuthService:     accounts,
		AdminService:    newAdminService(accounts),
		TrainingService: NewTrainingService(deps.Storages.Trainings, deps.Validator),
		WorkService:     NewWorkService(deps.Storages, deps.Validator),
		PersonService:   NewPersonService(deps.Storages.Persons, deps.Validator),
		AppInfoService:  appInfo,
	}, nil
}
