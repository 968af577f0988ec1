package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-repa/internal/auth"
	"github.com/MKhiriev/go-repa/internal/config"
	"github.com/MKhiriev/go-repa/internal/crypto"
	"github.com/MKhiriev/go-repa/internal/logger"
	"github.com/MKhiriev/go-repa/internal/mailer"
	"github.com/MKhiriev/go-repa/internal/metrics"
	"github.com/MKhiriev/go-repa/internal/store"
	"github.com/MKhiriev/go-repa/internal/validators"
	"github.com/MKhiriev/go-repa/models"
)

// AuthDeps groups the collaborators of the account services.
type AuthDeps struct {
	Storages  *store.Storages
	Codec     TokenCodec
	Hasher    crypto.PasswordHasher
	Mailer    mailer.Mailer
	Validator validators.Validator
	IDs       IDGenerator
	Metrics   *metrics.Metrics
}

// authService is the concrete implementation of AuthService.
//
// Tokens carry a snapshot of the user's roles and active flag taken at
// login or refresh. Role changes made by an admin become visible to the
// user only after the next refresh or login.
type authService struct {
	repos     store.Repositories
	tx        store.Transactor
	attempts  store.LoginAttemptCounter
	codec     TokenCodec
	hasher    crypto.PasswordHasher
	mailer    mailer.Mailer
	validator validators.Validator
	ids       IDGenerator
	metrics   *metrics.Metrics

	app    config.App
	limits config.Limits
	now    func() time.Time

	logger *logger.Logger
}

func newAuthService(deps AuthDeps, app config.App, limits config.Limits, logger *logger.Logger) *authService {
	attempts := deps.Storages.LoginAttempts
	if attempts == nil {
		attempts = store.NopLoginAttemptCounter{}
	}

	return &authService{
		repos:     deps.Storages.Repositories,
		tx:        deps.Storages.Transactor,
		attempts:  attempts,
		codec:     deps.Codec,
		hasher:    deps.Hasher,
		mailer:    deps.Mailer,
		validator: deps.Validator,
		ids:       deps.IDs,
		metrics:   deps.Metrics,
		app:       app,
		limits:    limits,
		now:       time.Now,
		logger:    logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an inactive account holding the "user" role, persists a
// verification record and hands the confirmation link to the mailer.
//
// A taken e-mail is rejected before hashing; the unique constraint still
// covers a concurrent registration of the same address.
//
// The account, its role and the verification record are written in one
// transaction. The link is sent after commit; a mailer failure is logged
// and does not undo the registration.
func (s *authService) Register(ctx context.Context, req models.CredentialsRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		return models.User{}, validationError(err)
	}
	if err := validators.ValidatePassword(req.Password); err != nil {
		return models.User{}, validationError(err)
	}

	email := normalizeEmail(req.Email)
	if _, err := s.repos.Users.FindUserByEmail(ctx, email); err == nil {
		return models.User{}, ErrEmailRegistered
	} else if !errors.Is(err, store.ErrUserNotFound) {
		log.Err(err).Str("func", "*authService.Register").Msg("error looking up e-mail")
		return models.User{}, storeError(err, "look up user")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("error hashing password")
		return models.User{}, storeError(err, "hash password")
	}

	user := models.User{
		ID:           s.ids.Generate(),
		Email:        email,
		PasswordHash: hash,
		IsActive:     false,
	}

	var token string
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		created, err := repos.Users.CreateUser(ctx, user)
		if err != nil {
			return err
		}

		role, err := repos.Roles.EnsureRole(ctx, models.RoleUser)
		if err != nil {
			return err
		}
		if err = repos.Users.AssignRole(ctx, created.ID, role.ID); err != nil {
			return err
		}
		created.Roles = []models.Role{role}

		ttl := s.app.VerificationTokenDuration
		token, err = s.codec.Encode(auth.VerificationClaims(created), ttl, models.TokenTypeAccess)
		if err != nil {
			return err
		}

		_, err = repos.RecoveryTokens.CreateRecoveryToken(ctx, models.RecoveryToken{
			ID:        s.ids.Generate(),
			UserID:    created.ID,
			Token:     token,
			ExpiresAt: s.now().UTC().Add(ttl),
			IsActive:  true,
		})
		if err != nil {
			return err
		}

		user = created
		return nil
	})
	if err != nil {
		if !errors.Is(err, store.ErrEmailAlreadyExists) {
			log.Err(err).Str("func", "*authService.Register").Msg("registration failed")
		}
		return models.User{}, storeError(err, "register user")
	}

	s.sendVerification(ctx, user.Email, token)
	s.metrics.IncRegistration()
	log.Info().Str("func", "*authService.Register").Str("user_id", user.ID).Msg("user registered")

	return user, nil
}

func (s *authService) sendVerification(ctx context.Context, email, token string) {
	if s.mailer == nil {
		return
	}
	link := verificationLink(s.app.SiteURL, token)
	if err := s.mailer.SendVerification(ctx, email, link); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.sendVerification").Str("email", email).Msg("error sending verification link")
	}
}

func verificationLink(siteURL, token string) string {
	return strings.TrimRight(siteURL, "/") + "/users/confirm?token=" + url.QueryEscape(token)
}

// Confirm consumes a verification record and activates its account. Both
// writes commit together. A second confirmation with the same token yields
// [ErrTokenNotFound].
func (s *authService) Confirm(ctx context.Context, token string) (models.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.User{}, ErrTokenNotFound
	}

	var user models.User
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		record, err := repos.RecoveryTokens.FindActiveRecoveryToken(ctx, token)
		if err != nil {
			return err
		}

		claims, err := s.codec.Decode(token)
		if err != nil {
			return TokenError(err)
		}
		principal, err := auth.PrincipalFromClaims(claims)
		if err != nil || principal.Type != models.TokenTypeAccess || !principal.Unverified() {
			return ErrNotRegistrationToken
		}
		if principal.ID != record.UserID {
			return ErrTokenInvalid
		}

		if err = repos.Users.SetUserActive(ctx, record.UserID, true); err != nil {
			return err
		}
		if err = repos.RecoveryTokens.DeactivateRecoveryToken(ctx, record.ID); err != nil {
			return err
		}

		user, err = repos.Users.FindUserByID(ctx, record.UserID)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.Confirm").Msg("confirmation failed")
		return models.User{}, storeError(err, "confirm user")
	}

	s.metrics.IncConfirmation()
	return user, nil
}

// Login verifies credentials and issues an access/refresh pair. Unknown
// e-mail and wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req models.CredentialsRequest) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		return models.TokenPair{}, validationError(err)
	}
	email := normalizeEmail(req.Email)

	if s.throttled(ctx, email) {
		s.metrics.IncLogin(metrics.LoginThrottled)
		return models.TokenPair{}, ErrTooManyLogins
	}

	user, err := s.repos.Users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.metrics.IncLogin(metrics.LoginFailure)
			return models.TokenPair{}, ErrIncorrectCredentials
		}
		log.Err(err).Str("func", "*authService.Login").Msg("error looking up user")
		return models.TokenPair{}, storeError(err, "find user")
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		s.metrics.IncLogin(metrics.LoginFailure)
		log.Info().Str("func", "*authService.Login").Str("user_id", user.ID).Msg("wrong password")
		return models.TokenPair{}, ErrIncorrectCredentials
	}

	if !user.IsActive {
		s.metrics.IncLogin(metrics.LoginInactive)
		return models.TokenPair{}, ErrAccountInactive
	}

	now := s.now().UTC()
	if err = s.repos.Users.TouchLastLogin(ctx, user.ID, now); err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("error updating last login")
		return models.TokenPair{}, storeError(err, "update last login")
	}
	user.LastLogin = &now

	pair, err := s.issuePair(user)
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("error issuing tokens")
		return models.TokenPair{}, storeError(err, "issue tokens")
	}

	if err = s.attempts.Reset(ctx, email); err != nil {
		log.Warn().Err(err).Str("func", "*authService.Login").Msg("error resetting login attempts")
	}
	s.metrics.IncLogin(metrics.LoginSuccess)

	return pair, nil
}

// throttled registers a login attempt. Counter failures let the attempt
// through.
func (s *authService) throttled(ctx context.Context, email string) bool {
	if s.limits.LoginAttempts <= 0 {
		return false
	}
	count, err := s.attempts.Register(ctx, email)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "*authService.throttled").Msg("login attempt counter unavailable")
		return false
	}
	return count > int64(s.limits.LoginAttempts)
}

// Refresh exchanges a refresh token for a new pair minted from the current
// state of the account, so role changes take effect here.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return models.TokenPair{}, ErrTokenMissing
	}

	claims, err := s.codec.Decode(refreshToken)
	if err != nil {
		s.metrics.IncTokenRejection(TokenErrorReason(TokenError(err)))
		return models.TokenPair{}, TokenError(err)
	}
	principal, err := auth.PrincipalFromClaims(claims)
	if err != nil {
		return models.TokenPair{}, ErrTokenInvalid
	}
	if principal.Type != models.TokenTypeRefresh {
		s.metrics.IncTokenRejection("wrong_type")
		return models.TokenPair{}, ErrTokenWrongType
	}

	user, err := s.repos.Users.FindUserByID(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.TokenPair{}, ErrTokenInvalid
		}
		return models.TokenPair{}, storeError(err, "find user")
	}
	if !user.IsActive {
		return models.TokenPair{}, ErrAccountInactive
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return models.TokenPair{}, storeError(err, "issue tokens")
	}
	return pair, nil
}

func (s *authService) issuePair(user models.User) (models.TokenPair, error) {
	claims := auth.UserClaims(user)

	access, err := s.codec.Encode(claims, s.app.AccessTokenDuration, models.TokenTypeAccess)
	if err != nil {
		return models.TokenPair{}, err
	}
	refresh, err := s.codec.Encode(claims, s.app.RefreshTokenDuration, models.TokenTypeRefresh)
	if err != nil {
		return models.TokenPair{}, err
	}

	return models.NewBearerTokenPair(access, refresh), nil
}

func (s *authService) Me(ctx context.Context, principal auth.Principal) (models.User, error) {
	user, err := s.repos.Users.FindUserByID(ctx, principal.ID)
	if err != nil {
		return models.User{}, storeError(err, "find user")
	}
	return user, nil
}

// UpdateProfile changes the principal's own e-mail and/or password.
func (s *authService) UpdateProfile(ctx context.Context, principal auth.Principal, update models.ProfileUpdate) (models.User, error) {
	return s.updateUser(ctx, principal.ID, update)
}

// updateUser applies a partial credential update. A new password goes
// through the password policy and is re-hashed.
func (s *authService) updateUser(ctx context.Context, id string, update models.ProfileUpdate) (models.User, error) {
	if update.Email == nil && update.Password == nil {
		return models.User{}, ErrNothingToUpdate
	}
	if err := s.validator.Validate(ctx, update); err != nil {
		return models.User{}, validationError(err)
	}

	var hash string
	if update.Password != nil {
		if err := validators.ValidatePassword(*update.Password); err != nil {
			return models.User{}, validationError(err)
		}
		var err error
		if hash, err = s.hasher.Hash(*update.Password); err != nil {
			return models.User{}, storeError(err, "hash password")
		}
	}

	var user models.User
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		current, err := repos.Users.FindUserByID(ctx, id)
		if err != nil {
			return err
		}
		if update.Email != nil {
			current.Email = normalizeEmail(*update.Email)
		}
		if hash != "" {
			current.PasswordHash = hash
		}

		user, err = repos.Users.UpdateUser(ctx, current)
		return err
	})
	if err != nil {
		return models.User{}, storeError(err, "update user")
	}

	return user, nil
}

// Deactivate switches the principal's own account off. Reactivation is an
// admin action.
func (s *authService) Deactivate(ctx context.Context, principal auth.Principal) (models.User, error) {
	return s.setActive(ctx, principal.ID, false)
}

func (s *authService) setActive(ctx context.Context, id string, active bool) (models.User, error) {
	if err := s.repos.Users.SetUserActive(ctx, id, active); err != nil {
		return models.User{}, storeError(err, "set active")
	}
	user, err := s.repos.Users.FindUserByID(ctx, id)
	if err != nil {
		return models.User{}, storeError(err, "find user")
	}

	logger.FromContext(ctx).Info().Str("func", "*authService.setActive").Str("user_id", id).Bool("is_active", active).Msg("account state changed")
	return user, nil
}
