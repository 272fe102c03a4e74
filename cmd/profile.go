// file: cmd/profile.go
// version: 1.0.0
// guid: db9b5f03-9432-4cd8-bcc6-24a7f75a7cc1

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) profileCmd() *cobra.Command {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or save your reading profile",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the saved profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := a.openService()
			if err != nil {
				return err
			}
			defer closer()

			p, _ := svc.Profiles.Get()
			printProfile(cmd.OutOrStdout(), p)
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <name> <favorite-genre>",
		Short: "Save your name and favorite genre",
		Long:  `Save your name and favorite genre. Both are required; the genre drives recommendations.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := a.openService()
			if err != nil {
				return err
			}
			defer closer()

			p, err := svc.Profiles.Set(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile saved for %s (%s).\n", p.Name, p.Genre)
			return nil
		},
	}

	profileCmd.AddCommand(showCmd, setCmd)
	return profileCmd
}
