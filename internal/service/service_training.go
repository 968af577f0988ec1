package service

import (
	"context"

	"github.com/MKhiriev/go-repa/internal/auth"
	"github.com/MKhiriev/go-repa/internal/store"
	"github.com/MKhiriev/go-repa/internal/validators"
	"github.com/MKhiriev/go-repa/models"
)

// trainingService scopes every operation to the principal's own rows.
type trainingService struct {
	trainings store.TrainingRepository
	validator validators.Validator
}

func NewTrainingService(trainings store.TrainingRepository, validator validators.Validator) TrainingService {
	return &trainingService{trainings: trainings, validator: validator}
}

func (s *trainingService) CreateTraining(ctx context.Context, principal auth.Principal, training models.Training) (models.Training, error) {
	if err := s.validator.Validate(ctx, training); err != nil {
		return models.Training{}, validationError(err)
	}
	training.ID = 0
	training.UserID = principal.ID

	created, err := s.trainings.CreateTraining(ctx, training)
	if err != nil {
		return models.Training{}, storeError(err, "create training")
	}
	return created, nil
}

func (s *trainingService) GetTraining(ctx context.Context, principal auth.Principal, id int64) (models.Training, error) {
	if id <= 0 {
		return models.Training{}, ErrInvalidID
	}
	training, err := s.trainings.GetTraining(ctx, id, principal.ID)
	if err != nil {
		return models.Training{}, storeError(err, "get training")
	}
	return training, nil
}

func (s *trainingService) ListTrainings(ctx context.Context, principal auth.Principal) ([]models.Training, error) {
	trainings, err := s.trainings.ListTrainings(ctx, principal.ID)
	if err != nil {
		return nil, storeError(err, "list trainings")
	}
	return trainings, nil
}

func (s *trainingService) UpdateTraining(ctx context.Context, principal auth.Principal, id int64, training models.Training) (models.Training, error) {
	if id <= 0 {
		return models.Training{}, ErrInvalidID
	}
	if err := s.validator.Validate(ctx, training); err != nil {
		return models.Training{}, validationError(err)
	}
	training.ID = id
	training.UserID = principal.ID

	updated, err := s.trainings.UpdateTraining(ctx, training)
	if err != nil {
		return models.Training{}, storeError(err, "update training")
	}
	return updated, nil
}

func (s *trainingService) DeleteTraining(ctx context.Context, principal auth.Principal, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	if err := s.trainings.DeleteTraining(ctx, id, principal.ID); err != nil {
		return storeError(err, "delete training")
	}
	return nil
}
