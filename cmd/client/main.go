package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/fieldsync/internal/client/app"
	"github.com/iudanet/fieldsync/internal/client/cli"
	"github.com/iudanet/fieldsync/internal/client/config"
	"github.com/iudanet/fieldsync/internal/client/iocli"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(versionString(), newClient)
	if err := cli.Execute(ctx, root, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// newClient открывает локальную базу и собирает компоненты клиента
func newClient(ctx context.Context, cfg *config.Config) (*cli.Cli, func(context.Context) error, error) {
	logger := cfg.Log.NewLogger(os.Stderr)

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	return cli.New(iocli.NewStdio(), a.Data, a.Engine, a.Store), a.Close, nil
}

func versionString() string {
	return fmt.Sprintf("%s (built %s, commit %s)", Version, BuildDate, GitCommit)
}
