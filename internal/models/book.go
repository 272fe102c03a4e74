// file: internal/models/book.go
// version: 1.1.0
// guid: d2d3e8d9-1964-499c-a3d8-dc2ed40d2a8a

package models

import (
	"fmt"
	"strings"
)

// BookRecord is the normalized form of an Open Library search result.
// Only these five fields are ever persisted.
type BookRecord struct {
	Key              string   `json:"key" yaml:"key"`
	Title            string   `json:"title" yaml:"title"`
	AuthorNames      []string `json:"author_name,omitempty" yaml:"author_name,omitempty"`
	FirstPublishYear *int     `json:"first_publish_year,omitempty" yaml:"first_publish_year,omitempty"`
	CoverID          *int     `json:"cover_i,omitempty" yaml:"cover_i,omitempty"`
}

// HasCover reports whether the record carries a cover image id.
func (b BookRecord) HasCover() bool {
	return b.CoverID != nil && *b.CoverID > 0
}

// AuthorLine joins author names for display, falling back to "Unknown author".
func (b BookRecord) AuthorLine() string {
	if len(b.AuthorNames) == 0 {
		return "Unknown author"
	}
	return strings.Join(b.AuthorNames, ", ")
}

// PublishedLine returns "First published: YYYY" or an empty string.
func (b BookRecord) PublishedLine() string {
	if b.FirstPublishYear == nil || *b.FirstPublishYear == 0 {
		return ""
	}
	return fmt.Sprintf("First published: %d", *b.FirstPublishYear)
}

// TermCount is one row of a top search terms ranking.
type TermCount struct {
	Term  string `json:"term" yaml:"term"`
	Count int    `json:"count" yaml:"count"`
}

// String renders the row as "term (count)".
func (tc TermCount) String() string {
	return fmt.Sprintf("%s (%d)", tc.Term, tc.Count)
}
