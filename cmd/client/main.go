package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MKhiriev/go-repa/internal/adapter"
	"github.com/MKhiriev/go-repa/internal/config"
	"github.com/MKhiriev/go-repa/internal/logger"
	"github.com/MKhiriev/go-repa/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const usage = `usage: repa-client [-s address] [-timeout d] [-token t] <command> [args]

commands:
  version                       print client and server versions
  register <email> <password>   create an account
  confirm <token>               activate an account
  login <email> <password>      print an access/refresh token pair
  refresh <refresh_token>       exchange a refresh token for a new pair
  me                            print the account behind -token
`

var errUsage = errors.New("invalid usage")

func main() {
	log := logger.NewLogger("go-repa-client")

	cfg, args, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	client, err := adapter.NewHTTPServerAdapter(*cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	if err = run(ctx, client, args, os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, client adapter.ServerAdapter, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	cmd, rest := args[0], args[1:]
	switch {
	case cmd == "version" && len(rest) == 0:
		server, err := client.Version(ctx)
		if err != nil {
			return err
		}
		info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
		fmt.Fprintf(out, "client: %s (%s, %s)\nserver: %s\n", info.BuildVersion(), info.BuildDate(), info.BuildCommit(), server)
		return nil

	case cmd == "register" && len(rest) == 2:
		user, err := client.Register(ctx, models.CredentialsRequest{Email: rest[0], Password: rest[1]})
		if err != nil {
			return err
		}
		return printJSON(out, user)

	case cmd == "confirm" && len(rest) == 1:
		user, err := client.Confirm(ctx, rest[0])
		if err != nil {
			return err
		}
		return printJSON(out, user)

	case cmd == "login" && len(rest) == 2:
		pair, err := client.Login(ctx, models.CredentialsRequest{Email: rest[0], Password: rest[1]})
		if err != nil {
			return err
		}
		return printJSON(out, pair)

	case cmd == "refresh" && len(rest) == 1:
		client.SetRefreshToken(rest[0])
		pair, err := client.Refresh(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, pair)

	case cmd == "me" && len(rest) == 0:
		if client.Token() == "" {
			return fmt.Errorf("me: %w", adapter.ErrUnauthorized)
		}
		user, err := client.Me(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, user)
	}

	return errUsage
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
