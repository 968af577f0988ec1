package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the shape of the JSON
// config file. Durations accept either Go duration strings or nanoseconds.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey              string   `json:"token_sign_key"`
		TokenAlgorithm            string   `json:"token_algorithm"`
		AccessTokenDuration       Duration `json:"access_token_duration"`
		RefreshTokenDuration      Duration `json:"refresh_token_duration"`
		VerificationTokenDuration Duration `json:"verification_token_duration"`
		SiteURL                   string   `json:"site_url"`
		BcryptCost                int      `json:"bcrypt_cost"`
		AdminEmail                string   `json:"admin_email"`
		Version                   string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Redis struct {
			Address  string `json:"address"`
			Password string `json:"password"`
			DB       int    `json:"db"`
		} `json:"redis,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Limits struct {
		LoginAttempts int      `json:"login_attempts"`
		LoginWindow   Duration `json:"login_window"`
	} `json:"limits,omitempty"`

	Workers struct {
		UserStatsInterval Duration `json:"user_stats_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:              jsonCfg.App.TokenSignKey,
			TokenAlgorithm:            jsonCfg.App.TokenAlgorithm,
			AccessTokenDuration:       time.Duration(jsonCfg.App.AccessTokenDuration),
			RefreshTokenDuration:      time.Duration(jsonCfg.App.RefreshTokenDuration),
			VerificationTokenDuration: time.Duration(jsonCfg.App.VerificationTokenDuration),
			SiteURL:                   jsonCfg.App.SiteURL,
			BcryptCost:                jsonCfg.App.BcryptCost,
			AdminEmail:                jsonCfg.App.AdminEmail,
			Version:                   jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{DSN: jsonCfg.Storage.DB.DSN},
			Redis: Redis{
				Address:  jsonCfg.Storage.Redis.Address,
				Password: jsonCfg.Storage.Redis.Password,
				DB:       jsonCfg.Storage.Redis.DB,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Limits: Limits{
			LoginAttempts: jsonCfg.Limits.LoginAttempts,
			LoginWindow:   time.Duration(jsonCfg.Limits.LoginWindow),
		},
		Workers: Workers{
			UserStatsInterval: time.Duration(jsonCfg.Workers.UserStatsInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
