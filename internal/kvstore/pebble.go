// file: internal/kvstore/pebble.go
// version: 1.0.0
// guid: 13d78648-14c5-46ea-8bf8-bca963234c61

package kvstore

import (
	"errors"
	"fmt"
	"log"

	"github.com/cockroachdb/pebble/v2"
)

// PebbleBackend stores values in a PebbleDB (LSM key-value store) directory.
// Every write is synced so state survives a crash right after a mutation.
type PebbleBackend struct {
	db *pebble.DB
}

// NewPebbleBackend opens or creates a PebbleDB at path.
func NewPebbleBackend(path string) (*PebbleBackend, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open PebbleDB: %w", err)
	}
	log.Printf("[INFO] PebbleDB opened at %s", path)
	return &PebbleBackend{db: db}, nil
}

func (p *PebbleBackend) Get(key string) ([]byte, error) {
	value, closer, err := p.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	// value is only valid until closer.Close
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (p *PebbleBackend) Set(key string, value []byte) error {
	return p.db.Set([]byte(key), value, pebble.Sync)
}

func (p *PebbleBackend) Delete(key string) error {
	return p.db.Delete([]byte(key), pebble.Sync)
}

func (p *PebbleBackend) Keys(prefix string) ([]string, error) {
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(prefix),
		UpperBound: prefixUpperBound([]byte(prefix)),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var keys []string
	for iter.First(); iter.Valid(); iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	return keys, iter.Error()
}

// Close closes the database
func (p *PebbleBackend) Close() error {
	return p.db.Close()
}

// prefixUpperBound returns the smallest key greater than every key with
// the given prefix, or nil when no such key exists.
func prefixUpperBound(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
