// file: cmd/configcmd.go
// version: 1.0.0
// guid: 16954a92-c5fd-4893-bccc-156d9d1af4b2

package cmd

import (
	"fmt"

	"github.com/jdfalk/bookshelf/internal/config"
	"github.com/spf13/cobra"
)

func (a *app) configCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the effective configuration to a file",
		Long:  `Write the effective configuration to path, or to $HOME/.bookshelf.yaml when no path is given.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			path := a.cfgFile
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				if path, err = config.DefaultFilePath(); err != nil {
					return err
				}
			}
			if err := config.WriteFile(path, cfg, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	configCmd.AddCommand(showCmd, initCmd)
	return configCmd
}
