// file: internal/library/library.go
// version: 1.1.0
// guid: ff43e837-5043-451a-8127-07ba3dabfc80

// Package library wires the persisted stores, the stats engine and the
// catalog together into the operations the CLI and the API expose.
package library

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync/atomic"

	"github.com/jdfalk/bookshelf/internal/favorites"
	"github.com/jdfalk/bookshelf/internal/history"
	"github.com/jdfalk/bookshelf/internal/kvstore"
	"github.com/jdfalk/bookshelf/internal/metrics"
	"github.com/jdfalk/bookshelf/internal/models"
	"github.com/jdfalk/bookshelf/internal/openlibrary"
	"github.com/jdfalk/bookshelf/internal/preferences"
	"github.com/jdfalk/bookshelf/internal/recommend"
	"github.com/jdfalk/bookshelf/internal/stats"
)

// Catalog looks books up by free text. Implementations return an empty
// slice on any failure; there is no error channel.
type Catalog interface {
	Search(ctx context.Context, query string) []openlibrary.SearchDoc
}

// CachingCatalog is a Catalog that keeps results between searches.
type CachingCatalog interface {
	Catalog
	ClearCache()
}

// Options tunes a Service.
type Options struct {
	// HistoryMaxEntries caps the search log; 0 keeps every entry.
	HistoryMaxEntries int
	// TopK is the number of terms in the top searches summary.
	TopK int
}

// Service owns one instance of each store, all sharing a single kvstore.
type Service struct {
	Profiles  *preferences.Store
	Favorites *favorites.Store
	History   *history.Store
	Stats     *stats.Engine

	kv          *kvstore.Store
	catalog     Catalog
	recommender *recommend.Recommender
	topK        atomic.Int64
}

// SearchResult is what a search hands back for display.
type SearchResult struct {
	Query    string              `json:"query" yaml:"query"`
	Filter   openlibrary.Filter  `json:"filter" yaml:"filter"`
	Books    []models.BookRecord `json:"books" yaml:"books"`
	TopTerms []models.TermCount  `json:"top_terms" yaml:"top_terms"`
}

// State is a full snapshot of the user's persisted data.
type State struct {
	Profile   *models.Profile     `json:"profile" yaml:"profile"`
	Favorites []models.BookRecord `json:"favorites" yaml:"favorites"`
	History   []string            `json:"history" yaml:"history"`
	TopTerms  []models.TermCount  `json:"top_terms" yaml:"top_terms"`
}

// New builds a Service over kv. catalog may be nil when only the local
// operations are needed; searches then return no books.
func New(kv *kvstore.Store, catalog Catalog, opts Options) *Service {
	if opts.TopK <= 0 {
		opts.TopK = stats.DefaultTopK
	}
	profiles := preferences.New(kv)
	hist := history.New(kv, history.WithMaxEntries(opts.HistoryMaxEntries))
	s := &Service{
		Profiles:    profiles,
		Favorites:   favorites.New(kv),
		History:     hist,
		Stats:       stats.New(hist),
		kv:          kv,
		catalog:     catalog,
		recommender: recommend.New(profiles),
	}
	s.topK.Store(int64(opts.TopK))
	metrics.SetFavorites(s.Favorites.Count())
	metrics.SetHistoryEntries(len(hist.List()))
	return s
}

// TopK returns the configured summary size.
func (s *Service) TopK() int {
	return int(s.topK.Load())
}

// SetTopK changes the summary size; non-positive values are ignored.
func (s *Service) SetTopK(k int) {
	if k > 0 {
		s.topK.Store(int64(k))
	}
}

// Search records the trimmed query in the history, recomputes the top
// terms and then asks the catalog. An empty query is rejected before
// anything is recorded.
func (s *Service) Search(ctx context.Context, query string, filter openlibrary.Filter) (*SearchResult, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, &models.ValidationError{Field: "query", Reason: "enter a search term"}
	}

	if err := s.History.Record(q); err != nil {
		return nil, err
	}
	top := s.Stats.TopTerms(s.TopK())

	var docs []openlibrary.SearchDoc
	if s.catalog != nil {
		docs = s.catalog.Search(ctx, q)
	}
	books := openlibrary.NormalizeAll(filter.Apply(docs))
	log.Printf("[INFO] library: search %q (%s) returned %d books", q, filter, len(books))

	return &SearchResult{
		Query:    q,
		Filter:   filter,
		Books:    books,
		TopTerms: top,
	}, nil
}

// Recommend searches for the profile genre, or a random genre when no
// profile is saved.
func (s *Service) Recommend(ctx context.Context, filter openlibrary.Filter) (*SearchResult, error) {
	term := s.recommender.Term()
	log.Printf("[INFO] library: recommending %q", term)
	return s.Search(ctx, term, filter)
}

// Snapshot returns every persisted collection plus the derived top terms.
func (s *Service) Snapshot() State {
	var profile *models.Profile
	if p, ok := s.Profiles.Get(); ok {
		profile = p
	}
	return State{
		Profile:   profile,
		Favorites: s.Favorites.List(),
		History:   s.History.List(),
		TopTerms:  s.Stats.TopTerms(s.TopK()),
	}
}

// Reset wipes the profile, favorites and history, and drops any cached
// catalog results.
func (s *Service) Reset() error {
	if err := s.kv.Reset(); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if cc, ok := s.catalog.(CachingCatalog); ok {
		cc.ClearCache()
	}
	metrics.SetFavorites(0)
	metrics.SetHistoryEntries(0)
	return nil
}
