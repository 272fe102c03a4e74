// file: cmd/favorites.go
// version: 1.0.0
// guid: 9b445f42-5ae1-4014-971d-42cd9d89f7d1

package cmd

import (
	"fmt"
	"strings"

	"github.com/jdfalk/bookshelf/internal/models"
	"github.com/spf13/cobra"
)

func (a *app) favoritesCmd() *cobra.Command {
	favoritesCmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"favs"},
		Short:   "Manage favorite books",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List favorites in the order they were added",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := a.openService()
			if err != nil {
				return err
			}
			defer closer()

			favs := svc.Favorites.List()
			if len(favs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No favorites yet.")
				return nil
			}
			printBooks(cmd.OutOrStdout(), favs)
			return nil
		},
	}

	var rec models.BookRecord
	var year, cover int
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to favorites",
		Long:  `Add a book by its Open Library key. Use "search --add N" to favorite a search result directly.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := a.openService()
			if err != nil {
				return err
			}
			defer closer()

			book := rec
			book.Key = strings.TrimSpace(book.Key)
			if cmd.Flags().Changed("year") {
				book.FirstPublishYear = &year
			}
			if cmd.Flags().Changed("cover") {
				book.CoverID = &cover
			}
			if err := svc.Favorites.Add(book); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added to favorites: %s\n", book.Key)
			return nil
		},
	}
	addCmd.Flags().StringVar(&rec.Key, "key", "", "Open Library key, e.g. /works/OL893415W")
	addCmd.Flags().StringVar(&rec.Title, "title", "", "book title")
	addCmd.Flags().StringSliceVar(&rec.AuthorNames, "author", nil, "author name (repeatable)")
	addCmd.Flags().IntVar(&year, "year", 0, "first publish year")
	addCmd.Flags().IntVar(&cover, "cover", 0, "cover image id")
	_ = addCmd.MarkFlagRequired("key")

	removeCmd := &cobra.Command{
		Use:     "remove <key>",
		Aliases: []string{"rm"},
		Short:   "Remove a favorite by key",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := a.openService()
			if err != nil {
				return err
			}
			defer closer()

			if !svc.Favorites.Contains(args[0]) {
				fmt.Fprintf(cmd.OutOrStdout(), "Not in favorites: %s\n", args[0])
				return nil
			}
			if err := svc.Favorites.Remove(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed from favorites: %s\n", args[0])
			return nil
		},
	}

	findCmd := &cobra.Command{
		Use:   "find <query>",
		Short: "Fuzzy-match favorites by title or author",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := a.openService()
			if err != nil {
				return err
			}
			defer closer()

			matches := svc.Favorites.Find(strings.Join(args, " "))
			if len(matches) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matching favorites.")
				return nil
			}
			printBooks(cmd.OutOrStdout(), matches)
			return nil
		},
	}

	favoritesCmd.AddCommand(listCmd, addCmd, removeCmd, findCmd)
	return favoritesCmd
}
