// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"net/url"

	"golang.org/x/crypto/bcrypt"
)

var supportedTokenAlgorithms = map[string]struct{}{
	"HS256": {},
	"HS384": {},
	"HS512": {},
}

// validate checks that the merged [StructuredConfig] satisfies all startup
// invariants. All violations are reported at once.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if cfg.App.TokenSignKey == "" {
		errs = append(errs, fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs))
	}
	if _, ok := supportedTokenAlgorithms[cfg.App.TokenAlgorithm]; !ok {
		errs = append(errs, fmt.Errorf("%w: unsupported token algorithm %q", ErrInvalidAppConfigs, cfg.App.TokenAlgorithm))
	}
	if cfg.App.AccessTokenDuration < 0 || cfg.App.RefreshTokenDuration < 0 || cfg.App.VerificationTokenDuration < 0 {
		errs = append(errs, fmt.Errorf("%w: token durations must be positive", ErrInvalidAppConfigs))
	}
	if cfg.App.BcryptCost < bcrypt.MinCost || cfg.App.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("%w: bcrypt cost must be within [%d, %d]", ErrInvalidAppConfigs, bcrypt.MinCost, bcrypt.MaxCost))
	}
	if cfg.App.SiteURL != "" {
		if u, err := url.Parse(cfg.App.SiteURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("%w: site url must be absolute", ErrInvalidAppConfigs))
		}
	}

	if cfg.Storage.DB.DSN == "" {
		errs = append(errs, fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs))
	}

	if cfg.Limits.LoginAttempts < 0 || cfg.Limits.LoginWindow < 0 {
		errs = append(errs, ErrInvalidLimitsConfigs)
	}

	if cfg.Workers.UserStatsInterval < 0 {
		errs = append(errs, ErrInvalidWorkerConfigs)
	}

	return errors.Join(errs...)
}
