// file: internal/preferences/preferences.go
// version: 1.0.0
// guid: e109c9dc-b0d1-46b0-80fb-4c2d0a6bf5cc

// Package preferences stores the single user profile.
package preferences

import (
	"fmt"
	"log"

	"github.com/jdfalk/bookshelf/internal/kvstore"
	"github.com/jdfalk/bookshelf/internal/models"
)

// Key is the storage key of the profile record.
const Key = "prefs"

// Store reads and replaces the user profile.
type Store struct {
	kv *kvstore.Store
}

// New creates a profile store on kv.
func New(kv *kvstore.Store) *Store {
	return &Store{kv: kv}
}

// Get returns the saved profile. A stored record missing either field is
// treated as absent.
func (s *Store) Get() (*models.Profile, bool) {
	p, ok := kvstore.Load[models.Profile](s.kv, Key)
	if !ok {
		return nil, false
	}
	if err := p.Validate(); err != nil {
		log.Printf("[WARN] preferences: ignoring stored profile: %v", err)
		return nil, false
	}
	return &p, true
}

// Set validates name and genre and replaces any existing profile. On a
// validation failure nothing is written.
func (s *Store) Set(name, genre string) (models.Profile, error) {
	p, err := models.NewProfile(name, genre)
	if err != nil {
		return models.Profile{}, err
	}
	if err := s.kv.Save(Key, p); err != nil {
		return models.Profile{}, fmt.Errorf("save profile: %w", err)
	}
	log.Printf("[INFO] preferences: saved profile for %q (genre %q)", p.Name, p.Genre)
	return p, nil
}
