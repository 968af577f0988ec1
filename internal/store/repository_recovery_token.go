package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-repa/internal/logger"
	"github.com/MKhiriev/go-repa/models"
)

type recoveryTokenRepository struct {
	db Querier
}

func (r *recoveryTokenRepository) CreateRecoveryToken(ctx context.Context, token models.RecoveryToken) (models.RecoveryToken, error) {
	query, args, err := buildInsertRecoveryToken(token)
	if err != nil {
		return models.RecoveryToken{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&token.CreatedAt); err != nil {
		switch {
		case isUniqueViolation(err):
			return models.RecoveryToken{}, ErrTokenAlreadyExists
		case isForeignKeyViolation(err):
			return models.RecoveryToken{}, ErrUserNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*recoveryTokenRepository.CreateRecoveryToken").Msg("error inserting recovery token")
		return models.RecoveryToken{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return token, nil
}

func (r *recoveryTokenRepository) FindActiveRecoveryToken(ctx context.Context, token string) (models.RecoveryToken, error) {
	query, args, err := buildSelectActiveRecoveryToken(token)
	if err != nil {
		return models.RecoveryToken{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var rt models.RecoveryToken
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&rt.ID, &rt.UserID, &rt.Token, &rt.CreatedAt, &rt.ExpiresAt, &rt.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RecoveryToken{}, ErrRecoveryTokenNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*recoveryTokenRepository.FindActiveRecoveryToken").Msg("error selecting recovery token")
		return models.RecoveryToken{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return rt, nil
}

// DeactivateRecoveryToken consumes an active record. Deactivating an
// already consumed record yields [ErrRecoveryTokenNotFound].
func (r *recoveryTokenRepository) DeactivateRecoveryToken(ctx context.Context, id string) error {
	query, args, err := buildDeactivateRecoveryToken(id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*recoveryTokenRepository.DeactivateRecoveryToken").Msg("error deactivating recovery token")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrRecoveryTokenNotFound
	}
	return nil
}
