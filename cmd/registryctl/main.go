package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"profile-registry/internal/config"
	"profile-registry/internal/tasks"
	"profile-registry/pkg/registrydb"
)

var (
	opts   tasks.Options
	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "registryctl",
	Short: "Inspect and maintain the Profile Manager attribute registry",
	Long: `registryctl opens the attribute registry database, creating it or
reconciling it with the built-in attribute modules when the configured
schema version is newer than the stored one.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = tasks.LoadConfig(opts, cmd.Flags().Changed("config"))
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger, err = tasks.NewLogger(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.ConfigPath, "config", "config/registry.yaml", "path to YAML config")
	pf.StringVar(&opts.DBPath, "db", "", "path to sqlite database file (overrides config)")
	pf.IntVar(&opts.Version, "schema-version", 0, "expected schema version (overrides config)")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(initCmd, upgradeCmd, listCmd, getCmd, setActiveCmd, setOrderCmd)
}

// withRegistry opens the registry for the duration of fn.
func withRegistry(cmd *cobra.Command, fn func(ctx context.Context, c *registrydb.Client) error) error {
	ctx := cmd.Context()
	c, err := tasks.OpenRegistry(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(ctx, c)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
