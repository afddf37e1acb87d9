package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"profile-registry/pkg/registrydb"
)

var setActiveCmd = &cobra.Command{
	Use:   "set-active [id] [true|false]",
	Short: "Enable or disable an attribute",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", args[0], err)
		}
		active, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("invalid active value %q: %w", args[1], err)
		}
		return withRegistry(cmd, func(ctx context.Context, c *registrydb.Client) error {
			if err := c.SetActive(ctx, id, active); err != nil {
				return err
			}
			logger.Info("attribute updated", zap.Int64("id", id), zap.Bool("active", active))
			return nil
		})
	},
}

var setOrderCmd = &cobra.Command{
	Use:   "set-order [id] [order]",
	Short: "Change the display rank of an attribute",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", args[0], err)
		}
		order, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid order %q: %w", args[1], err)
		}
		return withRegistry(cmd, func(ctx context.Context, c *registrydb.Client) error {
			if err := c.SetOrder(ctx, id, order); err != nil {
				return err
			}
			logger.Info("attribute updated", zap.Int64("id", id), zap.Int("order", order))
			return nil
		})
	},
}
