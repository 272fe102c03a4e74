// file: internal/models/errors.go
// version: 1.0.0
// guid: 339a1586-303b-4d84-9f96-02f194ac09e2

package models

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches any *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate matches any *DuplicateError via errors.Is.
	ErrDuplicate = errors.New("already exists")
)

// ValidationError reports malformed user input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// DuplicateError reports a favorite whose key is already stored.
type DuplicateError struct {
	Key string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("favorite %q already added", e.Key)
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}
