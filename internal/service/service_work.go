package service

import (
	"context"

	"github.com/MKhiriev/go-repa/internal/auth"
	"github.com/MKhiriev/go-repa/internal/store"
	"github.com/MKhiriev/go-repa/internal/validators"
	"github.com/MKhiriev/go-repa/models"
)

// workService writes works inside a transaction because a work spans the
// works table, the lookup tables and two link tables.
type workService struct {
	works     store.WorkRepository
	tx        store.Transactor
	validator validators.Validator
}

func NewWorkService(storages *store.Storages, validator validators.Validator) WorkService {
	return &workService{
		works:     storages.Works,
		tx:        storages.Transactor,
		validator: validator,
	}
}

func (s *workService) CreateWork(ctx context.Context, principal auth.Principal, work models.Work) (models.Work, error) {
	if err := s.validator.Validate(ctx, work); err != nil {
		return models.Work{}, validationError(err)
	}
	work.ID = 0
	work.UserID = principal.ID

	var created models.Work
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		var err error
		created, err = repos.Works.CreateWork(ctx, work)
		return err
	})
	if err != nil {
		return models.Work{}, storeError(err, "create work")
	}
	return created, nil
}

func (s *workService) GetWork(ctx context.Context, principal auth.Principal, id int64) (models.Work, error) {
	if id <= 0 {
		return models.Work{}, ErrInvalidID
	}
	work, err := s.works.GetWork(ctx, id, principal.ID)
	if err != nil {
		return models.Work{}, storeError(err, "get work")
	}
	return work, nil
}

func (s *workService) ListWorks(ctx context.Context, principal auth.Principal) ([]models.Work, error) {
	works, err := s.works.ListWorks(ctx, principal.ID)
	if err != nil {
		return nil, storeError(err, "list works")
	}
	return works, nil
}

func (s *workService) UpdateWork(ctx context.Context, principal auth.Principal, id int64, work models.Work) (models.Work, error) {
	if id <= 0 {
		return models.Work{}, ErrInvalidID
	}
	if err := s.validator.Validate(ctx, work); err != nil {
		return models.Work{}, validationError(err)
	}
	work.ID = id
	work.UserID = principal.ID

	var updated models.Work
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		var err error
		updated, err = repos.Works.UpdateWork(ctx, work)
		return err
	})
	if err != nil {
		return models.Work{}, storeError(err, "update work")
	}
	return updated, nil
}

func (s *workService) DeleteWork(ctx context.Context, principal auth.Principal, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	if err := s.works.DeleteWork(ctx, id, principal.ID); err != nil {
		return storeError(err, "delete work")
	}
	return nil
}

func (s *workService) ListWorkRoles(ctx context.Context) ([]models.WorkRole, error) {
	roles, err := s.works.ListWorkRoles(ctx)
	if err != nil {
		return nil, storeError(err, "list work roles")
	}
	return roles, nil
}

func (s *workService) ListWorkTasks(ctx context.Context) ([]models.WorkTask, error) {
	tasks, err := s.works.ListWorkTasks(ctx)
	if err != nil {
		return nil, storeError(err, "list work tasks")
	}
	return tasks, nil
}
