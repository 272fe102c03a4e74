// file: internal/favorites/favorites.go
// version: 1.0.0
// guid: 8b345b8a-5161-4018-b2e2-8270eaed2929

// Package favorites keeps the user's favorite books: an insertion-ordered
// list in which no two records share a key.
package favorites

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jdfalk/bookshelf/internal/kvstore"
	"github.com/jdfalk/bookshelf/internal/metrics"
	"github.com/jdfalk/bookshelf/internal/models"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Key is the storage key of the favorites list.
const Key = "favs"

// Store manages the favorites collection.
type Store struct {
	kv *kvstore.Store
}

// New creates a favorites store on kv.
func New(kv *kvstore.Store) *Store {
	return &Store{kv: kv}
}

// List returns favorites in the order they were added.
func (s *Store) List() []models.BookRecord {
	return clean(kvstore.LoadOr(s.kv, Key, []models.BookRecord{}))
}

// Count returns the number of favorites.
func (s *Store) Count() int {
	return len(s.List())
}

// Contains reports whether a favorite with key exists.
func (s *Store) Contains(key string) bool {
	return indexOf(s.List(), key) >= 0
}

// Add appends rec. It fails with a *models.DuplicateError when a favorite
// with the same key already exists; the stored list is not touched then.
func (s *Store) Add(rec models.BookRecord) error {
	if rec.Key == "" {
		metrics.IncFavoritesRejected("invalid")
		return &models.ValidationError{Field: "key", Reason: "must not be empty"}
	}

	var count int
	err := kvstore.Update(s.kv, Key, []models.BookRecord{}, func(favs []models.BookRecord) ([]models.BookRecord, error) {
		favs = clean(favs)
		if indexOf(favs, rec.Key) >= 0 {
			return nil, &models.DuplicateError{Key: rec.Key}
		}
		favs = append(favs, rec)
		count = len(favs)
		return favs, nil
	})
	if err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			metrics.IncFavoritesRejected("duplicate")
			return err
		}
		return fmt.Errorf("add favorite %q: %w", rec.Key, err)
	}

	metrics.IncFavoritesAdded()
	metrics.SetFavorites(count)
	log.Printf("[INFO] favorites: added %q (%s)", rec.Key, rec.Title)
	return nil
}

// Remove drops the favorite with key. Removing a key that is not present
// is a no-op.
func (s *Store) Remove(key string) error {
	removed := false
	var count int
	err := kvstore.Update(s.kv, Key, []models.BookRecord{}, func(favs []models.BookRecord) ([]models.BookRecord, error) {
		favs = clean(favs)
		kept := make([]models.BookRecord, 0, len(favs))
		for _, f := range favs {
			if f.Key == key {
				removed = true
				continue
			}
			kept = append(kept, f)
		}
		if !removed {
			return nil, kvstore.ErrNoChange
		}
		count = len(kept)
		return kept, nil
	})
	if err != nil {
		return fmt.Errorf("remove favorite %q: %w", key, err)
	}
	if removed {
		metrics.IncFavoritesRemoved()
		metrics.SetFavorites(count)
		log.Printf("[INFO] favorites: removed %q", key)
	}
	return nil
}

// Find returns the favorites whose title or an author name fuzzily
// matches query, case-insensitively, in insertion order. An empty query
// matches everything.
func (s *Store) Find(query string) []models.BookRecord {
	favs := s.List()
	query = strings.TrimSpace(query)
	if query == "" {
		return favs
	}

	matches := make([]models.BookRecord, 0, len(favs))
	for _, f := range favs {
		if fuzzy.MatchFold(query, f.Title) {
			matches = append(matches, f)
			continue
		}
		for _, author := range f.AuthorNames {
			if fuzzy.MatchFold(query, author) {
				matches = append(matches, f)
				break
			}
		}
	}
	return matches
}

func indexOf(favs []models.BookRecord, key string) int {
	for i, f := range favs {
		if f.Key == key {
			return i
		}
	}
	return -1
}

// clean drops keyless records and every repeat of an earlier key, so readers
// see a valid collection even if the stored list was edited by hand.
func clean(favs []models.BookRecord) []models.BookRecord {
	seen := make(map[string]struct{}, len(favs))
	out := make([]models.BookRecord, 0, len(favs))
	for _, f := range favs {
		if f.Key == "" {
			continue
		}
		if _, dup := seen[f.Key]; dup {
			continue
		}
		seen[f.Key] = struct{}{}
		out = append(out, f)
	}
	return out
}
