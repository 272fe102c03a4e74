// file: cmd/export.go
// version: 1.0.0
// guid: 70d3c027-e287-4e36-9999-736ef6ca11a5

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jdfalk/bookshelf/internal/library"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// writeState encodes state as json or yaml.
func writeState(w io.Writer, state library.State, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(state); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q (use json or yaml)", format)
	}
}

func (a *app) exportCmd() *cobra.Command {
	var format, output string

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Print profile, favorites, history and top searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := a.openService()
			if err != nil {
				return err
			}
			defer closer()

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			if err := writeState(w, svc.Snapshot(), format); err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return exportCmd
}

func (a *app) resetCmd() *cobra.Command {
	var force bool

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the profile, favorites and search history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				confirmed, err := promptYesNo(cmd.InOrStdin(), cmd.OutOrStdout(), "Delete all saved data")
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted. Nothing deleted.")
					return nil
				}
			}

			svc, closer, err := a.openService()
			if err != nil {
				return err
			}
			defer closer()

			if err := svc.Reset(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All saved data deleted.")
			return nil
		},
	}
	resetCmd.Flags().BoolVarP(&force, "yes", "y", false, "skip confirmation prompt")
	return resetCmd
}
