// file: internal/kvstore/backend.go
// version: 1.0.0
// guid: b892ec59-43c6-487a-b092-6b2992328fef

package kvstore

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by a Backend when no value is stored under a key.
var ErrNotFound = errors.New("kvstore: key not found")

// Backend is the physical storage medium: raw bytes under string keys.
// This abstraction lets us support PebbleDB (default), SQLite3 (opt-in)
// and an in-memory map.
type Backend interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	// Keys lists every stored key starting with prefix, in ascending order.
	Keys(prefix string) ([]string, error)
	Close() error
}

// Open returns the backend selected by dbType.
func Open(dbType, path string, enableSQLite bool) (Backend, error) {
	switch dbType {
	case "sqlite", "sqlite3":
		if !enableSQLite {
			return nil, fmt.Errorf("SQLite3 is not enabled. To use SQLite3, you must explicitly enable it with --enable-sqlite3-i-know-the-risks or set 'enable_sqlite3_i_know_the_risks: true' in your config file. PebbleDB is the recommended database")
		}
		b, err := NewSQLiteBackend(path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
		}
		return b, nil
	case "pebble", "":
		b, err := NewPebbleBackend(path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize PebbleDB store: %w", err)
		}
		return b, nil
	case "memory":
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s (supported: pebble, sqlite, memory)", dbType)
	}
}
