package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-repa/internal/logger"
	"github.com/MKhiriev/go-repa/models"
)

type personRepository struct {
	db Querier
}

func scanPerson(row rowScanner) (models.Person, error) {
	var p models.Person
	err := row.Scan(
		&p.ID, &p.UserEmail, &p.FirstName, &p.LastName, &p.TaxID, &p.BirthDate, &p.Nationality,
		&p.GenderIdentity, &p.Ethnicity, &p.EthnicityName, &p.MaritalStatus, &p.EducationLevel,
		&p.Dependents, &p.Phone, &p.AddressStreet, &p.AddressNumber, &p.AddressPostalCode,
		&p.AddressCity, &p.AddressProvince, &p.AddressCountry,
	)
	return p, err
}

// CreatePerson fails with [ErrPersonAlreadyExists] when the account already
// has a person or the tax id is taken, and with [ErrUserNotFound] when the
// e-mail belongs to no account.
func (r *personRepository) CreatePerson(ctx context.Context, person models.Person) (models.Person, error) {
	query, args, err := buildInsertPerson(person)
	if err != nil {
		return models.Person{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&person.ID); err != nil {
		switch {
		case isUniqueViolation(err):
			return models.Person{}, ErrPersonAlreadyExists
		case isForeignKeyViolation(err):
			return models.Person{}, ErrUserNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*personRepository.CreatePerson").Msg("error inserting person")
		return models.Person{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return person, nil
}

func (r *personRepository) GetPerson(ctx context.Context, id int64) (models.Person, error) {
	query, args, err := buildSelectPerson(id)
	if err != nil {
		return models.Person{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	person, err := scanPerson(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Person{}, ErrPersonNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*personRepository.GetPerson").Msg("error selecting person")
		return models.Person{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return person, nil
}

// UpdatePerson overwrites every column except the owning e-mail.
func (r *personRepository) UpdatePerson(ctx context.Context, person models.Person) (models.Person, error) {
	query, args, err := buildUpdatePerson(person)
	if err != nil {
		return models.Person{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Person{}, ErrPersonAlreadyExists
		}
		logger.FromContext(ctx).Err(err).Str("func", "*personRepository.UpdatePerson").Msg("error updating person")
		return models.Person{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected, err := res.RowsAffected(); err != nil {
		return models.Person{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	} else if affected == 0 {
		return models.Person{}, ErrPersonNotFound
	}

	return r.GetPerson(ctx, person.ID)
}

func (r *personRepository) DeletePerson(ctx context.Context, id int64) error {
	query, args, err := buildDeletePerson(id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return execAffecting(ctx, r.db, query, args, ErrPersonNotFound)
}
