package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"profile-registry/pkg/registrydb"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the registry database if it does not exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRegistry(cmd, printVersion)
	},
}

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Reconcile the registry with the built-in attribute modules",
	Long: `Raises the stored schema version to --schema-version (or the configured
version) and reconciles rows with the built-in attribute modules. Existing
rows keep their active flag and order; new attributes are inserted; rows
no module offers any more are kept.

Example:
  registryctl upgrade --schema-version 3`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("upgrading registry",
			zap.String("db", cfg.Database.Path), zap.Int("version", cfg.Database.SchemaVersion))
		return withRegistry(cmd, printVersion)
	},
}

func printVersion(ctx context.Context, c *registrydb.Client) error {
	v, err := c.Version(ctx)
	if err != nil {
		return err
	}
	attrs, err := c.List(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("registry %s at version %d with %d attributes\n", cfg.Database.Path, v, len(attrs))
	return nil
}
