// file: cmd/search.go
// version: 1.0.0
// guid: a3360dd0-faae-41e1-806f-eb7a298f789f

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jdfalk/bookshelf/internal/library"
	"github.com/jdfalk/bookshelf/internal/models"
	"github.com/jdfalk/bookshelf/internal/openlibrary"
	"github.com/spf13/cobra"
)

func filterFromFlag(hasCover bool) openlibrary.Filter {
	if hasCover {
		return openlibrary.FilterHasCover
	}
	return openlibrary.FilterAll
}

// addResults favorites the 1-based result positions in picks.
func addResults(cmd *cobra.Command, svc *library.Service, res *library.SearchResult, picks []int) error {
	for _, n := range picks {
		if n < 1 || n > len(res.Books) {
			return fmt.Errorf("--add %d: no such result (have %d)", n, len(res.Books))
		}
		book := res.Books[n-1]
		err := svc.Favorites.Add(book)
		switch {
		case errors.Is(err, models.ErrDuplicate):
			fmt.Fprintf(cmd.OutOrStdout(), "Already in favorites: %s\n", book.Title)
		case err != nil:
			return err
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "Added to favorites: %s\n", book.Title)
		}
	}
	return nil
}

func (a *app) searchCmd() *cobra.Command {
	var hasCover bool
	var picks []int

	searchCmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search the catalog",
		Long: `Search Open Library for books. The term is recorded in your search
history even when the catalog is unreachable.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := a.openService()
			if err != nil {
				return err
			}
			defer closer()

			res, err := svc.Search(cmd.Context(), strings.Join(args, " "), filterFromFlag(hasCover))
			if err != nil {
				return err
			}
			printSearchResult(cmd.OutOrStdout(), res)
			return addResults(cmd, svc, res, picks)
		},
	}
	searchCmd.Flags().BoolVar(&hasCover, "has-cover", false, "only show books with a cover image")
	searchCmd.Flags().IntSliceVar(&picks, "add", nil, "add the result at this position to favorites (repeatable)")
	return searchCmd
}

func (a *app) recommendCmd() *cobra.Command {
	var hasCover bool
	var picks []int

	recommendCmd := &cobra.Command{
		Use:   "recommend",
		Short: "Search for your favorite genre, or a random one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := a.openService()
			if err != nil {
				return err
			}
			defer closer()

			res, err := svc.Recommend(cmd.Context(), filterFromFlag(hasCover))
			if err != nil {
				return err
			}
			printSearchResult(cmd.OutOrStdout(), res)
			return addResults(cmd, svc, res, picks)
		},
	}
	recommendCmd.Flags().BoolVar(&hasCover, "has-cover", false, "only show books with a cover image")
	recommendCmd.Flags().IntSliceVar(&picks, "add", nil, "add the result at this position to favorites (repeatable)")
	return recommendCmd
}
