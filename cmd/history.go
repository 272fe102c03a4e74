// file: cmd/history.go
// version: 1.0.0
// guid: 80a42bd9-9529-41d6-a709-aa05875aec2d

package cmd

import (
	"fmt"

	"github.com/jdfalk/bookshelf/internal/stats"
	"github.com/spf13/cobra"
)

func (a *app) historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show past search terms, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := a.openService()
			if err != nil {
				return err
			}
			defer closer()

			entries := svc.History.List()
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No searches yet.")
				return nil
			}
			for i, term := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%3d. %s\n", i+1, term)
			}
			return nil
		},
	}
}

func (a *app) statsCmd() *cobra.Command {
	var top int

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show your most frequent search terms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := a.openService()
			if err != nil {
				return err
			}
			defer closer()

			k := svc.TopK()
			if cmd.Flags().Changed("top") {
				if top <= 0 {
					return fmt.Errorf("--top must be positive, got %d", top)
				}
				k = top
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Top searches: %s\n", stats.Summary(svc.Stats.TopTerms(k)))
			return nil
		},
	}
	statsCmd.Flags().IntVar(&top, "top", stats.DefaultTopK, "number of terms to show")
	return statsCmd
}
