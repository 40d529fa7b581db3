package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/fieldsync/internal/client/config"
)

// RootOptions holds global flags for all commands
type RootOptions struct {
	ConfigPath string
	ServerURL  string
	Token      string
	DBPath     string
	LogLevel   string
}

// Factory builds a Cli for the effective configuration.
// The returned func releases everything the Cli holds.
type Factory func(ctx context.Context, cfg *config.Config) (*Cli, func(context.Context) error, error)

// session resolves configuration and builds a Cli for every command run
type session struct {
	opts    *RootOptions
	factory Factory
}

// loadConfig applies config file, environment and then explicitly set flags
func (s *session) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(s.opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("server") {
		cfg.Server.URL = s.opts.ServerURL
	}
	if flags.Changed("token") {
		cfg.Server.Token = s.opts.Token
	}
	if flags.Changed("db") {
		cfg.Storage.Path = s.opts.DBPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = s.opts.LogLevel
	}
	// Локальный флаг команды watch
	if flags.Lookup("interval") != nil && flags.Changed("interval") {
		interval, err := flags.GetDuration("interval")
		if err != nil {
			return nil, err
		}
		cfg.Sync.Interval = interval
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// runFunc is the body of a command that needs a Cli
type runFunc func(ctx context.Context, c *Cli, cmd *cobra.Command, args []string) error

// run builds a Cli, runs fn and releases the Cli even if fn fails
func (s *session) run(fn runFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		cfg, err := s.loadConfig(cmd)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		c, release, err := s.factory(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := release(context.WithoutCancel(ctx)); closeErr != nil && err == nil {
				err = fmt.Errorf("failed to close client: %w", closeErr)
			}
		}()

		c.cfg = cfg
		return fn(ctx, c, cmd, args)
	}
}

// NewRootCommand creates the root command of the client
func NewRootCommand(version string, factory Factory) *cobra.Command {
	opts := &RootOptions{}
	s := &session{opts: opts, factory: factory}

	cmd := &cobra.Command{
		Use:   "fieldsync",
		Short: "Offline-first field sales client",
		Long: `fieldsync keeps contacts, products and cart items in a local database
and pushes local changes to the server when it is reachable. Records created
offline have negative ids until they are synced; such ids can be given
wherever an id is expected.

Settings are read from fieldsync.yaml (or --config), then from FIELDSYNC_*
environment variables (a .env file is honoured), then from flags.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.ServerURL, "server", "", "server URL")
	cmd.PersistentFlags().StringVar(&opts.Token, "token", "", "bearer token for the server")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "path to local database")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")

	// Add subcommands
	cmd.AddCommand(newContactCommand(s))
	cmd.AddCommand(newProductCommand(s))
	cmd.AddCommand(newCartCommand(s))
	cmd.AddCommand(newDeleteCommand(s))
	cmd.AddCommand(newSyncCommand(s))
	cmd.AddCommand(newStatusCommand(s))
	cmd.AddCommand(newWatchCommand(s))

	return cmd
}
