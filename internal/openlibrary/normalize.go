// file: internal/openlibrary/normalize.go
// version: 1.0.0
// guid: c676550a-3af7-46ab-8771-17a75dc65119

package openlibrary

import (
	"fmt"
	"strings"

	"github.com/jdfalk/bookshelf/internal/models"
)

// CoverBaseURL serves cover images by numeric id.
const CoverBaseURL = "https://covers.openlibrary.org/b/id"

// Cover image sizes accepted by the covers API.
const (
	CoverSmall  = "S"
	CoverMedium = "M"
	CoverLarge  = "L"
)

// Filter selects which raw results are kept.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterHasCover Filter = "hasCover"
)

// ParseFilter maps user input to a Filter; anything unknown means FilterAll.
func ParseFilter(s string) Filter {
	if strings.EqualFold(strings.TrimSpace(s), string(FilterHasCover)) {
		return FilterHasCover
	}
	return FilterAll
}

// Apply returns the docs that pass the filter, preserving order.
func (f Filter) Apply(docs []SearchDoc) []SearchDoc {
	if f != FilterHasCover {
		return docs
	}
	out := make([]SearchDoc, 0, len(docs))
	for _, d := range docs {
		if d.CoverI != nil && *d.CoverI > 0 {
			out = append(out, d)
		}
	}
	return out
}

// Normalize copies exactly the persisted fields of doc into a BookRecord.
func Normalize(doc SearchDoc) models.BookRecord {
	rec := models.BookRecord{
		Key:              doc.Key,
		Title:            doc.Title,
		FirstPublishYear: doc.FirstPublishYear,
		CoverID:          doc.CoverI,
	}
	if doc.AuthorName != nil {
		rec.AuthorNames = append([]string{}, doc.AuthorName...)
	}
	return rec
}

// NormalizeAll normalizes every doc, preserving order.
func NormalizeAll(docs []SearchDoc) []models.BookRecord {
	out := make([]models.BookRecord, 0, len(docs))
	for _, d := range docs {
		out = append(out, Normalize(d))
	}
	return out
}

// CoverURL builds the covers API URL for an image id and size.
func CoverURL(coverID int, size string) string {
	switch size {
	case CoverSmall, CoverMedium, CoverLarge:
	default:
		size = CoverMedium
	}
	return fmt.Sprintf("%s/%d-%s.jpg", CoverBaseURL, coverID, size)
}

func normalizeForIndex(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
