// file: internal/kvstore/store.go
// version: 1.0.0
// guid: 7f5fede9-145f-40b7-83a8-7ad1e0e5f62e

package kvstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/jdfalk/bookshelf/internal/metrics"
)

// DefaultNamespace prefixes every key written through a Store.
const DefaultNamespace = "bookshelf:"

// ErrNoChange may be returned from an Update callback to skip the write.
var ErrNoChange = errors.New("kvstore: no change")

// Store maps string keys to JSON values on top of a Backend.
//
// Reads never fail: a missing, unreadable or undecodable value yields the
// caller's fallback. Writes through Save and Update are serialized per key,
// so a read-modify-write cycle in Update cannot interleave with another
// writer on the same key.
type Store struct {
	backend   Backend
	namespace string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New wraps backend using DefaultNamespace.
func New(backend Backend) *Store {
	return NewWithNamespace(backend, DefaultNamespace)
}

// NewWithNamespace wraps backend with a custom key prefix.
func NewWithNamespace(backend Backend, namespace string) *Store {
	return &Store{
		backend:   backend,
		namespace: namespace,
		locks:     make(map[string]*sync.Mutex),
	}
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) fullKey(key string) string {
	return s.namespace + key
}

func (s *Store) lockFor(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// Load decodes the value stored under key. ok is false when nothing usable
// is stored: the key is absent, the backend read failed, the stored text is
// JSON null, or it does not decode into T.
func Load[T any](s *Store, key string) (value T, ok bool) {
	var zero T
	data, err := s.backend.Get(s.fullKey(key))
	if errors.Is(err, ErrNotFound) {
		metrics.IncLoadFallback(key, "missing")
		return zero, false
	}
	if err != nil {
		log.Printf("[WARN] kvstore: read of %q failed, using fallback: %v", key, err)
		metrics.IncLoadFallback(key, "error")
		return zero, false
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		metrics.IncLoadFallback(key, "missing")
		return zero, false
	}
	if err := json.Unmarshal(data, &value); err != nil {
		log.Printf("[WARN] kvstore: stored value under %q is corrupt, using fallback: %v", key, err)
		metrics.IncLoadFallback(key, "corrupt")
		return zero, false
	}
	return value, true
}

// LoadOr is Load with a default: fallback is returned unchanged whenever
// Load reports no usable value.
func LoadOr[T any](s *Store, key string, fallback T) T {
	if v, ok := Load[T](s, key); ok {
		return v
	}
	return fallback
}

// Save encodes value as JSON and overwrites whatever is stored under key.
// Encoding happens before the write, so an unencodable value leaves the
// stored state untouched.
func (s *Store) Save(key string, value any) error {
	l := s.lockFor(key)
	l.Lock()
	defer l.Unlock()
	return s.save(key, value)
}

func (s *Store) save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	if err := s.backend.Set(s.fullKey(key), data); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

// Update loads the value under key (or fallback), passes it to fn and saves
// the result, all while holding the key's write lock. If fn returns
// ErrNoChange nothing is written and Update returns nil; any other error is
// returned as is and nothing is written.
func Update[T any](s *Store, key string, fallback T, fn func(T) (T, error)) error {
	l := s.lockFor(key)
	l.Lock()
	defer l.Unlock()

	next, err := fn(LoadOr(s, key, fallback))
	if errors.Is(err, ErrNoChange) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.save(key, next)
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	l := s.lockFor(key)
	l.Lock()
	defer l.Unlock()
	if err := s.backend.Delete(s.fullKey(key)); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Keys lists the keys stored in this namespace, without the prefix.
func (s *Store) Keys() ([]string, error) {
	full, err := s.backend.Keys(s.namespace)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	keys := make([]string, 0, len(full))
	for _, k := range full {
		keys = append(keys, strings.TrimPrefix(k, s.namespace))
	}
	return keys, nil
}

// Reset deletes every key in this namespace.
func (s *Store) Reset() error {
	keys, err := s.Keys()
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := s.Delete(k); err != nil {
			return err
		}
	}
	log.Printf("[INFO] kvstore: reset %d keys", len(keys))
	return nil
}

// SetRaw writes bytes under key without encoding.
func (s *Store) SetRaw(key string, data []byte) error {
	l := s.lockFor(key)
	l.Lock()
	defer l.Unlock()
	return s.backend.Set(s.fullKey(key), data)
}

// GetRaw returns the undecoded bytes under key, or ErrNotFound.
func (s *Store) GetRaw(key string) ([]byte, error) {
	return s.backend.Get(s.fullKey(key))
}
