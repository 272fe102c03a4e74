// file: cmd/output.go
// version: 1.0.0
// guid: 8d875aa7-8df8-48d5-969a-b25f20751b3b

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jdfalk/bookshelf/internal/library"
	"github.com/jdfalk/bookshelf/internal/models"
	"github.com/jdfalk/bookshelf/internal/openlibrary"
	"github.com/jdfalk/bookshelf/internal/stats"
)

// printBooks writes a numbered list of books, one block per book.
func printBooks(w io.Writer, books []models.BookRecord) {
	for i, b := range books {
		title := b.Title
		if strings.TrimSpace(title) == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(w, "%2d. %s\n", i+1, title)
		fmt.Fprintf(w, "    %s\n", b.AuthorLine())
		if line := b.PublishedLine(); line != "" {
			fmt.Fprintf(w, "    %s\n", line)
		}
		if b.HasCover() {
			fmt.Fprintf(w, "    Cover: %s\n", openlibrary.CoverURL(*b.CoverID, openlibrary.CoverMedium))
		}
		fmt.Fprintf(w, "    Key: %s\n", b.Key)
	}
}

func printSearchResult(w io.Writer, res *library.SearchResult) {
	fmt.Fprintf(w, "Results for %q", res.Query)
	if res.Filter == openlibrary.FilterHasCover {
		fmt.Fprint(w, " (with covers)")
	}
	fmt.Fprintln(w, ":")
	if len(res.Books) == 0 {
		fmt.Fprintln(w, "No results.")
	} else {
		printBooks(w, res.Books)
	}
	fmt.Fprintf(w, "Top searches: %s\n", stats.Summary(res.TopTerms))
}

func printProfile(w io.Writer, p *models.Profile) {
	if p == nil {
		fmt.Fprintln(w, "No profile saved.")
		return
	}
	fmt.Fprintf(w, "Name:  %s\n", p.Name)
	fmt.Fprintf(w, "Genre: %s\n", p.Genre)
}
