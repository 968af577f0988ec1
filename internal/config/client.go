package config

import (
	"flag"
	"fmt"
	"io"
	"time"
)

// ClientConfig configures the command-line client.
type ClientConfig struct {
	// ServerAddress is the base URL (or host:port) of the go-repa server.
	// Env: CLIENT_SERVER_ADDRESS
	ServerAddress string `env:"SERVER_ADDRESS"`

	// RequestTimeout bounds every request made by the client.
	// Env: CLIENT_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Token is an access token attached to authenticated commands.
	// Env: CLIENT_TOKEN
	Token string `env:"TOKEN"`
}

const (
	DefaultClientServerAddress  = "http://localhost:8080"
	DefaultClientRequestTimeout = 15 * time.Second
)

type clientEnv struct {
	Client ClientConfig `envPrefix:"CLIENT_"`
}

// GetClientConfig merges CLIENT_* environment variables with the leading
// flags of args (flags win) and returns the remaining positional arguments.
//
// Flags:
//
//	-s server address
//	-timeout request timeout (e.g. "10s")
//	-token access token
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	e, err := parseEnv[clientEnv]()
	if err != nil {
		return nil, nil, err
	}
	cfg := e.Client

	fs := flag.NewFlagSet("repa-client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	address := fs.String("s", "", "Server address")
	timeout := fs.Duration("timeout", 0, "Request timeout")
	token := fs.String("token", "", "Access token")

	if err = fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}

	if *address != "" {
		cfg.ServerAddress = *address
	}
	if *timeout != 0 {
		cfg.RequestTimeout = *timeout
	}
	if *token != "" {
		cfg.Token = *token
	}

	if cfg.ServerAddress == "" {
		cfg.ServerAddress = DefaultClientServerAddress
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultClientRequestTimeout
	}

	return &cfg, fs.Args(), nil
}
