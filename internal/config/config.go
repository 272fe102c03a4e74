// file: internal/config/config.go
// version: 2.1.0
// guid: 7b8c9d0e-1f2a-3b4c-5d6e-7f8a9b0c1d2e

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Defaults
const (
	DefaultDatabasePath    = "bookshelf.pebble"
	DefaultDatabaseType    = "pebble"
	DefaultCatalogBaseURL  = "https://openlibrary.org"
	DefaultCatalogLimit    = 20
	DefaultCatalogCacheTTL = 10 * time.Minute
	DefaultCatalogRate     = 5.0
	DefaultTopK            = 3
	DefaultHost            = "localhost"
	DefaultPort            = 8080
	DefaultSearchRateLimit = 30
	DefaultSearchBurst     = 10
)

// Config holds application configuration
type Config struct {
	DatabasePath string `yaml:"database_path"`
	DatabaseType string `yaml:"database_type"` // "pebble" (default), "sqlite" or "memory"
	EnableSQLite bool   `yaml:"enable_sqlite3_i_know_the_risks"`

	OpenLibrary OpenLibraryConfig `yaml:"openlibrary"`
	History     HistoryConfig     `yaml:"history"`
	Stats       StatsConfig       `yaml:"stats"`
	Server      ServerConfig      `yaml:"server"`
}

// OpenLibraryConfig configures the catalog client.
type OpenLibraryConfig struct {
	BaseURL           string        `yaml:"base_url"`
	Limit             int           `yaml:"limit"`
	CacheTTL          time.Duration `yaml:"cache_ttl"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
}

// HistoryConfig configures the search log. MaxEntries of 0 keeps everything.
type HistoryConfig struct {
	MaxEntries int `yaml:"max_entries"`
}

// StatsConfig configures the top searches summary.
type StatsConfig struct {
	TopK int `yaml:"top_k"`
}

// ServerConfig is the API listen address plus the per-client limit on
// the routes that reach the catalog. RateLimit is in requests per minute;
// 0 turns the limit off.
type ServerConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	RateLimit int    `yaml:"rate_limit"`
	Burst     int    `yaml:"burst"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SetDefaults registers every key's default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_type", DefaultDatabaseType)
	v.SetDefault("enable_sqlite3_i_know_the_risks", false)

	v.SetDefault("openlibrary.base_url", DefaultCatalogBaseURL)
	v.SetDefault("openlibrary.limit", DefaultCatalogLimit)
	v.SetDefault("openlibrary.cache_ttl", DefaultCatalogCacheTTL)
	v.SetDefault("openlibrary.requests_per_second", DefaultCatalogRate)

	v.SetDefault("history.max_entries", 0)
	v.SetDefault("stats.top_k", DefaultTopK)

	v.SetDefault("server.host", DefaultHost)
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.rate_limit", DefaultSearchRateLimit)
	v.SetDefault("server.burst", DefaultSearchBurst)
}

// Load reads the configuration out of v, applying defaults for anything
// unset and normalizing the database type.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	cfg := Config{
		DatabasePath: v.GetString("database_path"),
		DatabaseType: normalizeDatabaseType(v.GetString("database_type")),
		EnableSQLite: v.GetBool("enable_sqlite3_i_know_the_risks"),
		OpenLibrary: OpenLibraryConfig{
			BaseURL:           strings.TrimRight(v.GetString("openlibrary.base_url"), "/"),
			Limit:             v.GetInt("openlibrary.limit"),
			CacheTTL:          v.GetDuration("openlibrary.cache_ttl"),
			RequestsPerSecond: v.GetFloat64("openlibrary.requests_per_second"),
		},
		History: HistoryConfig{MaxEntries: v.GetInt("history.max_entries")},
		Stats:   StatsConfig{TopK: v.GetInt("stats.top_k")},
		Server: ServerConfig{
			Host:      v.GetString("server.host"),
			Port:      v.GetInt("server.port"),
			RateLimit: v.GetInt("server.rate_limit"),
			Burst:     v.GetInt("server.burst"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values no component can run with.
func (c Config) Validate() error {
	switch c.DatabaseType {
	case "pebble", "sqlite", "memory":
	default:
		return fmt.Errorf("unsupported database_type %q (use pebble, sqlite or memory)", c.DatabaseType)
	}
	if c.DatabaseType == "sqlite" && !c.EnableSQLite {
		return fmt.Errorf("sqlite requires --enable-sqlite3-i-know-the-risks")
	}
	if c.DatabaseType != "memory" && c.DatabasePath == "" {
		return fmt.Errorf("database_path is required for %s", c.DatabaseType)
	}
	if c.OpenLibrary.Limit <= 0 {
		return fmt.Errorf("openlibrary.limit must be positive, got %d", c.OpenLibrary.Limit)
	}
	if c.OpenLibrary.RequestsPerSecond < 0 {
		return fmt.Errorf("openlibrary.requests_per_second must not be negative")
	}
	if c.History.MaxEntries < 0 {
		return fmt.Errorf("history.max_entries must not be negative, got %d", c.History.MaxEntries)
	}
	if c.Stats.TopK <= 0 {
		return fmt.Errorf("stats.top_k must be positive, got %d", c.Stats.TopK)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must not be negative, got %d", c.Server.RateLimit)
	}
	if c.Server.RateLimit > 0 && c.Server.Burst < 1 {
		return fmt.Errorf("server.burst must be at least 1 when server.rate_limit is set, got %d", c.Server.Burst)
	}
	return nil
}

func normalizeDatabaseType(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	switch t {
	case "", "pebble":
		return "pebble"
	case "sqlite3":
		return "sqlite"
	}
	return t
}
