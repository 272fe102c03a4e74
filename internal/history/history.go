// file: internal/history/history.go
// version: 1.0.0
// guid: 69fc567c-13ac-4431-b1d1-017101b71a21

// Package history records every search term the user submits.
package history

import (
	"fmt"

	"github.com/jdfalk/bookshelf/internal/kvstore"
	"github.com/jdfalk/bookshelf/internal/metrics"
)

// Key is the storage key of the search log.
const Key = "history"

// Store is an append-only log of raw search terms.
type Store struct {
	kv         *kvstore.Store
	maxEntries int
}

// Option configures a Store.
type Option func(*Store)

// WithMaxEntries caps the log at n entries, dropping the oldest on append.
// n <= 0 means unbounded, which is the default.
func WithMaxEntries(n int) Option {
	return func(s *Store) {
		s.maxEntries = n
	}
}

// New creates a history store on kv.
func New(kv *kvstore.Store, opts ...Option) *Store {
	s := &Store{kv: kv}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record appends term exactly as given. Repeats and case variants are all
// kept. Only a storage write failure is reported.
func (s *Store) Record(term string) error {
	var size int
	err := kvstore.Update(s.kv, Key, []string{}, func(h []string) ([]string, error) {
		h = append(h, term)
		if s.maxEntries > 0 && len(h) > s.maxEntries {
			h = h[len(h)-s.maxEntries:]
		}
		size = len(h)
		return h, nil
	})
	if err != nil {
		return fmt.Errorf("record search: %w", err)
	}
	metrics.IncSearches()
	metrics.SetHistoryEntries(size)
	return nil
}

// List returns all recorded terms, oldest first.
func (s *Store) List() []string {
	return kvstore.LoadOr(s.kv, Key, []string{})
}
