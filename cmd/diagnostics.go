// file: cmd/diagnostics.go
// version: 2.0.0
// guid: c8f6a0d4-2a8b-48cf-9d08-02cc9915d9fc

package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/pebble/v2"
	"github.com/jdfalk/bookshelf/internal/config"
	"github.com/jdfalk/bookshelf/internal/favorites"
	"github.com/jdfalk/bookshelf/internal/history"
	"github.com/jdfalk/bookshelf/internal/kvstore"
	"github.com/jdfalk/bookshelf/internal/models"
	"github.com/jdfalk/bookshelf/internal/preferences"
	"github.com/spf13/cobra"
)

// keyCheck is the outcome of inspecting one stored key.
type keyCheck struct {
	Key     string
	Size    int
	Problem string
}

func (a *app) diagnosticsCmd() *cobra.Command {
	diagnosticsCmd := &cobra.Command{
		Use:   "diagnostics",
		Short: "Debugging and cleanup helpers",
		Long:  "Diagnostic utilities for inspecting and repairing the bookshelf database.",
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Report stored keys that do not decode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd.OutOrStdout())
		},
	}

	cleanupCmd := &cobra.Command{
		Use:   "cleanup-invalid",
		Short: "Delete stored keys that do not decode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("yes")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			return a.runCleanupInvalid(cmd.InOrStdin(), cmd.OutOrStdout(), force, dryRun)
		},
	}
	cleanupCmd.Flags().Bool("yes", false, "Skip confirmation prompt")
	cleanupCmd.Flags().Bool("dry-run", false, "List invalid keys without deleting")

	queryCmd := &cobra.Command{
		Use:   "query",
		Short: "Inspect raw stored values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			prefix, _ := cmd.Flags().GetString("prefix")
			raw, _ := cmd.Flags().GetBool("raw")
			return a.runDiagnosticsQuery(cmd.OutOrStdout(), limit, prefix, raw)
		},
	}
	queryCmd.Flags().Int("limit", 10, "Number of records to display")
	queryCmd.Flags().String("prefix", kvstore.DefaultNamespace, "Key prefix to inspect when --raw is set")
	queryCmd.Flags().Bool("raw", false, "Read the Pebble files directly (Pebble only)")

	diagnosticsCmd.AddCommand(checkCmd, cleanupCmd, queryCmd)
	return diagnosticsCmd
}

func (a *app) openDiagnosticsStore() (*kvstore.Store, config.Config, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, cfg, err
	}
	kv, err := openStore(cfg)
	return kv, cfg, err
}

// checkValue reports why data cannot serve as the value of key, or "".
func checkValue(key string, data []byte) string {
	var err error
	switch key {
	case preferences.Key:
		var p models.Profile
		if err = json.Unmarshal(data, &p); err == nil {
			if verr := p.Validate(); verr != nil {
				return verr.Error()
			}
		}
	case favorites.Key:
		var favs []models.BookRecord
		if err = json.Unmarshal(data, &favs); err == nil {
			seen := make(map[string]bool, len(favs))
			for _, f := range favs {
				if f.Key == "" {
					return "favorite without key"
				}
				if seen[f.Key] {
					return fmt.Sprintf("duplicate favorite %q", f.Key)
				}
				seen[f.Key] = true
			}
		}
	case history.Key:
		var entries []string
		err = json.Unmarshal(data, &entries)
	default:
		return "unknown key"
	}
	if err != nil {
		return "does not decode: " + err.Error()
	}
	return ""
}

func inspectStore(kv *kvstore.Store) ([]keyCheck, error) {
	keys, err := kv.Keys()
	if err != nil {
		return nil, err
	}
	checks := make([]keyCheck, 0, len(keys))
	for _, k := range keys {
		data, err := kv.GetRaw(k)
		if err != nil {
			checks = append(checks, keyCheck{Key: k, Problem: "unreadable: " + err.Error()})
			continue
		}
		checks = append(checks, keyCheck{Key: k, Size: len(data), Problem: checkValue(k, data)})
	}
	return checks, nil
}

func (a *app) runCheck(w io.Writer) error {
	kv, cfg, err := a.openDiagnosticsStore()
	if err != nil {
		return err
	}
	defer kv.Close()

	fmt.Fprintf(w, "Inspecting %s (%s)\n", cfg.DatabasePath, cfg.DatabaseType)
	checks, err := inspectStore(kv)
	if err != nil {
		return err
	}
	if len(checks) == 0 {
		fmt.Fprintln(w, "Database is empty.")
		return nil
	}
	for _, c := range checks {
		status := "ok"
		if c.Problem != "" {
			status = c.Problem
		}
		fmt.Fprintf(w, "%-10s %6d bytes  %s\n", c.Key, c.Size, status)
	}
	return nil
}

func (a *app) runCleanupInvalid(in io.Reader, w io.Writer, force, dryRun bool) error {
	kv, cfg, err := a.openDiagnosticsStore()
	if err != nil {
		return err
	}
	defer kv.Close()

	fmt.Fprintf(w, "Inspecting %s (%s)\n", cfg.DatabasePath, cfg.DatabaseType)
	checks, err := inspectStore(kv)
	if err != nil {
		return err
	}

	invalid := make([]keyCheck, 0)
	for _, c := range checks {
		if c.Problem != "" {
			invalid = append(invalid, c)
		}
	}
	if len(invalid) == 0 {
		fmt.Fprintln(w, "No invalid keys detected.")
		return nil
	}

	fmt.Fprintf(w, "Found %d invalid keys:\n", len(invalid))
	for i, c := range invalid {
		fmt.Fprintf(w, "%2d. %s: %s\n", i+1, c.Key, c.Problem)
	}

	if dryRun {
		fmt.Fprintln(w, "Dry run enabled; no deletions were performed.")
		return nil
	}

	if !force {
		confirmed, err := promptYesNo(in, w, fmt.Sprintf("Delete %d keys", len(invalid)))
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(w, "Aborted. No keys deleted.")
			return nil
		}
	}

	deleted := 0
	for _, c := range invalid {
		if err := kv.Delete(c.Key); err != nil {
			fmt.Fprintf(w, "Failed to delete %s: %v\n", c.Key, err)
			continue
		}
		deleted++
	}
	fmt.Fprintf(w, "Deleted %d invalid keys.\n", deleted)
	return nil
}

func (a *app) runDiagnosticsQuery(w io.Writer, limit int, prefix string, raw bool) error {
	if limit <= 0 {
		return errors.New("limit must be positive")
	}

	if raw {
		cfg, err := a.loadConfig()
		if err != nil {
			return err
		}
		if cfg.DatabaseType != "pebble" {
			return fmt.Errorf("raw inspection is only available for Pebble databases")
		}
		return runRawPebbleQuery(w, cfg.DatabasePath, limit, prefix)
	}

	kv, _, err := a.openDiagnosticsStore()
	if err != nil {
		return err
	}
	defer kv.Close()

	keys, err := kv.Keys()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		fmt.Fprintln(w, "No keys found.")
		return nil
	}
	for i, k := range keys {
		if i >= limit {
			break
		}
		data, err := kv.GetRaw(k)
		if err != nil {
			fmt.Fprintf(w, "Key: %s (unreadable: %v)\n---\n", k, err)
			continue
		}
		fmt.Fprintf(w, "Key: %s\n", k)
		fmt.Fprintf(w, "Value length: %d bytes\n", len(data))
		fmt.Fprintf(w, "Value preview: %s\n", truncateString(string(data), 500))
		fmt.Fprintln(w, "---")
	}
	return nil
}

func runRawPebbleQuery(w io.Writer, path string, limit int, prefix string) error {
	db, err := pebble.Open(path, &pebble.Options{ReadOnly: true})
	if err != nil {
		return fmt.Errorf("failed to open Pebble database: %w", err)
	}
	defer db.Close()

	iterOpts := &pebble.IterOptions{}
	if prefix != "" {
		iterOpts.LowerBound = []byte(prefix)
		iterOpts.UpperBound = append([]byte(prefix), 0xFF)
	}

	iter, err := db.NewIter(iterOpts)
	if err != nil {
		return fmt.Errorf("failed to create iterator: %w", err)
	}
	defer iter.Close()

	count := 0
	for ok := iter.First(); ok && iter.Valid(); ok = iter.Next() {
		val := iter.Value()
		fmt.Fprintf(w, "Key: %s\n", string(iter.Key()))
		fmt.Fprintf(w, "Value length: %d bytes\n", len(val))
		fmt.Fprintf(w, "Value preview: %s\n", truncateString(string(val), 500))
		fmt.Fprintln(w, "---")

		count++
		if count >= limit {
			break
		}
	}

	if err := iter.Error(); err != nil {
		return fmt.Errorf("iterator error: %w", err)
	}
	if count == 0 {
		fmt.Fprintln(w, "No keys matched the requested prefix.")
	}
	return nil
}

func promptYesNo(in io.Reader, w io.Writer, action string) (bool, error) {
	fmt.Fprintf(w, "%s? Type 'yes' to confirm: ", action)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes", nil
}

func truncateString(in string, max int) string {
	if len(in) <= max {
		return in
	}
	return in[:max] + "..."
}
