package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-repa/internal/store"
	"github.com/MKhiriev/go-repa/internal/validators"
	"github.com/MKhiriev/go-repa/models"
)

type personService struct {
	persons   store.PersonRepository
	validator validators.Validator
}

func NewPersonService(persons store.PersonRepository, validator validators.Validator) PersonService {
	return &personService{persons: persons, validator: validator}
}

// CreatePerson attaches a person to the account registered under
// person.UserEmail.
func (s *personService) CreatePerson(ctx context.Context, person models.Person) (models.Person, error) {
	person.UserEmail = normalizeEmail(person.UserEmail)
	if person.UserEmail == "" {
		return models.Person{}, ErrPersonUnknownEmail
	}
	if err := s.validator.Validate(ctx, person); err != nil {
		return models.Person{}, validationError(err)
	}
	person.ID = 0

	created, err := s.persons.CreatePerson(ctx, person)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.Person{}, ErrPersonUnknownEmail
		}
		return models.Person{}, storeError(err, "create person")
	}
	return created, nil
}

func (s *personService) GetPerson(ctx context.Context, id int64) (models.Person, error) {
	if id <= 0 {
		return models.Person{}, ErrInvalidID
	}
	person, err := s.persons.GetPerson(ctx, id)
	if err != nil {
		return models.Person{}, storeError(err, "get person")
	}
	return person, nil
}

func (s *personService) UpdatePerson(ctx context.Context, id int64, person models.Person) (models.Person, error) {
	if id <= 0 {
		return models.Person{}, ErrInvalidID
	}
	if err := s.validator.Validate(ctx, person); err != nil {
		return models.Person{}, validationError(err)
	}
	person.ID = id

	updated, err := s.persons.UpdatePerson(ctx, person)
	if err != nil {
		return models.Person{}, storeError(err, "update person")
	}
	return updated, nil
}

func (s *personService) DeletePerson(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	if err := s.persons.DeletePerson(ctx, id); err != nil {
		return storeError(err, "delete person")
	}
	return nil
}
