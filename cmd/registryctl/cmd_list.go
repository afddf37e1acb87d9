package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"profile-registry/internal/output"
	"profile-registry/pkg/registrydb"
)

var (
	listActive bool
	listJSON   string
	listCSV    string

	getID   int64
	getName string
	getType int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered attributes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRegistry(cmd, func(ctx context.Context, c *registrydb.Client) error {
			var attrs []registrydb.Attribute
			var err error
			if listActive {
				attrs, err = c.Active(ctx)
			} else {
				attrs, err = c.List(ctx)
			}
			if err != nil {
				return err
			}
			if listJSON != "" {
				if err := writeTo(listJSON, attrs, output.WriteJSON, output.EncodeJSON); err != nil {
					return err
				}
			}
			if listCSV != "" {
				if err := writeTo(listCSV, attrs, output.WriteCSV, output.EncodeCSV); err != nil {
					return err
				}
			}
			if listJSON == "" && listCSV == "" {
				printTable(attrs)
			}
			return nil
		})
	},
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Show one attribute by --id, --name or --type",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		set := 0
		for _, n := range []string{"id", "name", "type"} {
			if f.Changed(n) {
				set++
			}
		}
		if set != 1 {
			return errors.New("exactly one of --id, --name or --type is required")
		}
		return withRegistry(cmd, func(ctx context.Context, c *registrydb.Client) error {
			var a *registrydb.Attribute
			var err error
			switch {
			case f.Changed("id"):
				a, err = c.ByID(ctx, getID)
			case f.Changed("name"):
				a, err = c.ByName(ctx, getName)
			default:
				a, err = c.ByType(ctx, getType)
			}
			if err != nil {
				return err
			}
			return output.EncodeJSON(os.Stdout, []registrydb.Attribute{*a})
		})
	},
}

func init() {
	listCmd.Flags().BoolVar(&listActive, "active", false, "only active attributes, sorted by type")
	listCmd.Flags().StringVar(&listJSON, "json", "", "write JSON to file (- for stdout)")
	listCmd.Flags().StringVar(&listCSV, "csv", "", "write CSV to file (- for stdout)")

	getCmd.Flags().Int64Var(&getID, "id", 0, "attribute id")
	getCmd.Flags().StringVar(&getName, "name", "", "attribute name")
	getCmd.Flags().IntVar(&getType, "type", 0, "attribute type")
}

func writeTo(
	path string,
	attrs []registrydb.Attribute,
	toFile func(string, []registrydb.Attribute) error,
	toStdout func(io.Writer, []registrydb.Attribute) error,
) error {
	if path == "-" {
		return toStdout(os.Stdout, attrs)
	}
	return toFile(path, attrs)
}

func printTable(attrs []registrydb.Attribute) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tNAME\tACTIVE\tCLASS\tPARAM\tORDER")
	for _, a := range attrs {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%t\t%s\t%s\t%d\n",
			a.ID, a.Type, a.Name, a.Active, a.ImplementationClass, a.Param, a.Order)
	}
	_ = tw.Flush()
}
