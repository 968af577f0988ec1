package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-repa/internal/logger"
	"github.com/MKhiriev/go-repa/models"
)

type trainingRepository struct {
	db Querier
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func scanTraining(row rowScanner) (models.Training, error) {
	var (
		t          models.Training
		start, end sql.NullTime
	)
	err := row.Scan(
		&t.ID, &t.UserID, &t.CourseName, &t.Institution, &t.CertificateType, &t.StudyLevel,
		&start, &end, &t.DurationHours, &t.CertificateURL, &t.KnowledgeArea,
		&t.Description, &t.Grade, &t.Language, &t.InstructorName, &t.ProgramName,
		&t.Country, &t.City, &t.Province, &t.Notes,
	)
	if err != nil {
		return models.Training{}, err
	}
	t.StartDate, t.EndDate = timePtr(start), timePtr(end)
	return t, nil
}

func (r *trainingRepository) CreateTraining(ctx context.Context, training models.Training) (models.Training, error) {
	query, args, err := buildInsertTraining(training)
	if err != nil {
		return models.Training{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&training.ID); err != nil {
		if isForeignKeyViolation(err) {
			return models.Training{}, ErrUserNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*trainingRepository.CreateTraining").Msg("error inserting training")
		return models.Training{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return training, nil
}

func (r *trainingRepository) GetTraining(ctx context.Context, id int64, userID string) (models.Training, error) {
	query, args, err := buildSelectTraining(id, userID)
	if err != nil {
		return models.Training{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	training, err := scanTraining(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Training{}, ErrTrainingNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*trainingRepository.GetTraining").Msg("error selecting training")
		return models.Training{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return training, nil
}

func (r *trainingRepository) ListTrainings(ctx context.Context, userID string) ([]models.Training, error) {
	query, args, err := buildListTrainings(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.selectTrainings(ctx, "*trainingRepository.ListTrainings", query, args)
}

// ListAllTrainings returns the trainings of every owner.
func (r *trainingRepository) ListAllTrainings(ctx context.Context) ([]models.Training, error) {
	query, args, err := buildListAllTrainings()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.selectTrainings(ctx, "*trainingRepository.ListAllTrainings", query, args)
}

func (r *trainingRepository) selectTrainings(ctx context.Context, caller, query string, args []any) ([]models.Training, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", caller).Msg("error selecting trainings")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	trainings := make([]models.Training, 0)
	for rows.Next() {
		training, err := scanTraining(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		trainings = append(trainings, training)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return trainings, nil
}

// UpdateTraining overwrites every editable column of a training owned by
// training.UserID.
func (r *trainingRepository) UpdateTraining(ctx context.Context, training models.Training) (models.Training, error) {
	query, args, err := buildUpdateTraining(training)
	if err != nil {
		return models.Training{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = execAffecting(ctx, r.db, query, args, ErrTrainingNotFound); err != nil {
		return models.Training{}, err
	}
	return training, nil
}

func (r *trainingRepository) DeleteTraining(ctx context.Context, id int64, userID string) error {
	query, args, err := buildDeleteTraining(id, userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return execAffecting(ctx, r.db, query, args, ErrTrainingNotFound)
}

// execAffecting runs a statement and returns notFound when no row changed.
func execAffecting(ctx context.Context, db Querier, query string, args []any, notFound error) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "execAffecting").Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
