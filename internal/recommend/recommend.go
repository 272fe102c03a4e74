// file: internal/recommend/recommend.go
// version: 1.0.0
// guid: 68c31a38-b616-4196-af52-b4be8aa04cd1

// Package recommend picks a search term for the "surprise me" action.
package recommend

import (
	"math/rand/v2"
	"strings"

	"github.com/jdfalk/bookshelf/internal/models"
)

// FallbackGenres are used when no profile genre is available.
var FallbackGenres = []string{"fiction", "fantasy", "romance", "history", "science"}

// ProfileSource supplies the saved profile, if any.
type ProfileSource interface {
	Get() (*models.Profile, bool)
}

// Recommender chooses a term from the profile genre or a fallback list.
type Recommender struct {
	profiles ProfileSource
	genres   []string
	intn     func(n int) int
}

// New creates a Recommender using FallbackGenres.
func New(profiles ProfileSource) *Recommender {
	return &Recommender{
		profiles: profiles,
		genres:   FallbackGenres,
		intn:     rand.IntN,
	}
}

// Term returns the profile's genre, or a random fallback genre when there
// is no usable profile.
func (r *Recommender) Term() string {
	if p, ok := r.profiles.Get(); ok && strings.TrimSpace(p.Genre) != "" {
		return p.Genre
	}
	return r.genres[r.intn(len(r.genres))]
}
