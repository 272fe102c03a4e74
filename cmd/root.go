// file: cmd/root.go
// version: 2.0.0
// guid: 6a7b8c9d-0e1f-2a3b-4c5d-6e7f8a9b0c1d

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jdfalk/bookshelf/internal/config"
	"github.com/jdfalk/bookshelf/internal/kvstore"
	"github.com/jdfalk/bookshelf/internal/library"
	"github.com/jdfalk/bookshelf/internal/openlibrary"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries the state shared by every subcommand of one root command.
type app struct {
	v       *viper.Viper
	cfgFile string
	logFile string
	logOut  io.Closer
}

// Execute builds the command tree and runs it against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd returns a fresh command tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "bookshelf",
		Short: "Search Open Library and keep a personal reading list",
		Long: `Bookshelf searches the Open Library catalog, keeps a reading profile,
a list of favorite books and a log of past searches, and reports your
most frequent search terms.

State is stored locally in PebbleDB by default.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logOut != nil {
				_ = a.logOut.Close()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.bookshelf.yaml)")
	flags.StringVar(&a.logFile, "log-file", "", "append logs to this file instead of stderr")
	flags.String("db", config.DefaultDatabasePath, "path to database")
	flags.String("db-type", config.DefaultDatabaseType, "database type: pebble (default), sqlite or memory")
	flags.Bool("enable-sqlite3-i-know-the-risks", false, "enable SQLite3 database (WARNING: cross-compilation issues, PebbleDB recommended)")
	flags.String("catalog-url", config.DefaultCatalogBaseURL, "Open Library base URL")

	_ = a.v.BindPFlag("database_path", flags.Lookup("db"))
	_ = a.v.BindPFlag("database_type", flags.Lookup("db-type"))
	_ = a.v.BindPFlag("enable_sqlite3_i_know_the_risks", flags.Lookup("enable-sqlite3-i-know-the-risks"))
	_ = a.v.BindPFlag("openlibrary.base_url", flags.Lookup("catalog-url"))

	rootCmd.AddCommand(
		a.profileCmd(),
		a.searchCmd(),
		a.favoritesCmd(),
		a.historyCmd(),
		a.statsCmd(),
		a.recommendCmd(),
		a.exportCmd(),
		a.resetCmd(),
		a.serveCmd(),
		a.configCmd(),
		a.diagnosticsCmd(),
	)
	return rootCmd
}

func (a *app) initConfig(cmd *cobra.Command) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		a.v.AddConfigPath(home)
		a.v.SetConfigType("yaml")
		a.v.SetConfigName(strings.TrimSuffix(config.DefaultFileName, ".yaml"))
	}

	a.v.SetEnvPrefix("BOOKSHELF")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()
	_ = a.v.BindEnv("openlibrary.base_url", "BOOKSHELF_OPENLIBRARY_BASE_URL", "OPENLIBRARY_BASE_URL")

	if err := a.v.ReadInConfig(); err == nil {
		log.Printf("[INFO] Using config file: %s", a.v.ConfigFileUsed())
	} else if a.cfgFile != "" && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read config file %s: %w", a.cfgFile, err)
	}

	if a.logFile != "" {
		f, err := setupFileLogging(a.logFile)
		if err != nil {
			return err
		}
		a.logOut = f
	}
	return nil
}

// setupFileLogging sends the standard logger to path, appending.
func setupFileLogging(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f, nil
}

func (a *app) loadConfig() (config.Config, error) {
	return config.Load(a.v)
}

// openStore opens the configured backend, creating the database
// directory when needed.
func openStore(cfg config.Config) (*kvstore.Store, error) {
	if cfg.DatabaseType != "memory" {
		if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}
	backend, err := kvstore.Open(cfg.DatabaseType, cfg.DatabasePath, cfg.EnableSQLite)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	log.Printf("[DEBUG] Using database: %s (%s)", cfg.DatabasePath, cfg.DatabaseType)
	return kvstore.New(backend), nil
}

func newCatalog(cfg config.Config) *openlibrary.Searcher {
	client := openlibrary.NewClientWithBaseURL(cfg.OpenLibrary.BaseURL,
		openlibrary.WithLimit(cfg.OpenLibrary.Limit),
		openlibrary.WithCacheTTL(cfg.OpenLibrary.CacheTTL),
		openlibrary.WithRateLimit(cfg.OpenLibrary.RequestsPerSecond, 1),
	)
	return openlibrary.NewSearcher(client)
}

// openService wires the library over the configured store. The returned
// func closes the store.
func (a *app) openService() (*library.Service, func(), error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	kv, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	svc := library.New(kv, newCatalog(cfg), library.Options{
		HistoryMaxEntries: cfg.History.MaxEntries,
		TopK:              cfg.Stats.TopK,
	})
	closer := func() {
		if err := kv.Close(); err != nil {
			log.Printf("[WARN] failed to close database: %v", err)
		}
	}
	return svc, closer, nil
}
