// file: internal/stats/stats.go
// version: 1.0.0
// guid: 05b12c53-f501-4af1-a44c-a3e385155c9d

// Package stats derives search term frequencies from the history log.
package stats

import (
	"sort"
	"strings"

	"github.com/jdfalk/bookshelf/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultTopK is the number of terms shown in the top searches summary.
const DefaultTopK = 3

// HistorySource supplies the raw search log.
type HistorySource interface {
	List() []string
}

// Engine computes rankings from a HistorySource. It holds no state of its
// own; every call recomputes from the full log.
type Engine struct {
	history HistorySource
}

// New creates an engine over history.
func New(history HistorySource) *Engine {
	return &Engine{history: history}
}

// TopTerms returns the k most frequent lower-cased terms in the history.
func (e *Engine) TopTerms(k int) []models.TermCount {
	return TopTerms(e.history.List(), k)
}

// Summary renders the top k terms as "dune (3), tolkien (1)", or "-" when
// there is no history.
func (e *Engine) Summary(k int) string {
	return Summary(e.TopTerms(k))
}

// TopTerms lower-cases every entry, counts occurrences and returns the k
// highest counts. Equal counts keep the order in which each term was first
// seen. The result has fewer than k rows when the vocabulary is smaller and
// is empty (never nil) for empty input or k <= 0.
func TopTerms(entries []string, k int) []models.TermCount {
	if k <= 0 || len(entries) == 0 {
		return []models.TermCount{}
	}

	lower := cases.Lower(language.Und)
	index := make(map[string]int)
	counts := make([]models.TermCount, 0)
	for _, entry := range entries {
		term := lower.String(entry)
		if i, ok := index[term]; ok {
			counts[i].Count++
			continue
		}
		index[term] = len(counts)
		counts = append(counts, models.TermCount{Term: term, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > k {
		counts = counts[:k]
	}
	return counts
}

// Summary joins rows as "term (count)" separated by ", ".
func Summary(rows []models.TermCount) string {
	if len(rows) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(rows))
	for _, r := range rows {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, ", ")
}
