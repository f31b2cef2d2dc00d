// Command binder is a personal task organizer: named folders of to-do
// items kept in a single persisted collection.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/maelko/binder/internal/cli"
	"github.com/maelko/binder/internal/storage"
	"github.com/maelko/binder/internal/store"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "binder",
	Short: "binder - folders of to-do items",
	Long: `binder is a personal task organizer built around named folders of
to-do items. Each item carries a title and a completion flag, and every
change is persisted immediately.

Data lives in ~/.binder by default. Point binder somewhere else with
--dir or the BINDER_DIR environment variable, and pick the storage
backend (file or sqlite) in config.yaml.`,
	Version: Version,
	// Show help when no subcommand is provided
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
	SilenceErrors: true,
	SilenceUsage:  true,
}

var rootDir string

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "dir", "", "data directory (default $BINDER_DIR or ~/.binder)")

	// Replace the default completion command with our own
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.SetVersionTemplate("binder version {{.Version}}\n")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}

// dataDir resolves the data directory from the --dir flag, falling back to
// BINDER_DIR and then ~/.binder.
func dataDir() (string, error) {
	if rootDir != "" {
		return rootDir, nil
	}
	return storage.DefaultDir()
}

// openBackend opens the configured storage backend. Commands that read the
// stored blob verbatim use it directly; everything else goes through
// openStore.
func openBackend() (storage.Backend, *storage.Config, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := storage.LoadConfig(dir)
	if err != nil {
		return nil, nil, err
	}
	backend, err := storage.Open(dir, cfg.Backend)
	if err != nil {
		return nil, nil, err
	}
	return backend, cfg, nil
}

// openStore opens the store over the configured backend, logging to stderr
// at the configured level.
func openStore() (*store.Store, *storage.Config, error) {
	backend, cfg, err := openBackend()
	if err != nil {
		return nil, nil, err
	}

	handler := log.NewWithOptions(os.Stderr, log.Options{
		Level:  parseLogLevel(cfg.LogLevel),
		Prefix: "binder",
	})
	return store.Open(backend, store.WithLogger(slog.New(handler))), cfg, nil
}

func parseLogLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}
