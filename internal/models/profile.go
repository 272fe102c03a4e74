// file: internal/models/profile.go
// version: 1.0.0
// guid: 4b4b076a-e14d-4e98-94ac-c0d8f135b602

package models

import "strings"

// Profile holds the user's reading preferences. There is at most one.
type Profile struct {
	Name  string `json:"name" yaml:"name"`
	Genre string `json:"genre" yaml:"genre"`
}

// NewProfile trims and validates the submitted fields.
func NewProfile(name, genre string) (Profile, error) {
	p := Profile{
		Name:  strings.TrimSpace(name),
		Genre: strings.TrimSpace(genre),
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate checks that both fields are set.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if strings.TrimSpace(p.Genre) == "" {
		return &ValidationError{Field: "genre", Reason: "must not be empty"}
	}
	return nil
}
