package main

import (
	"errors"
	"fmt"

	"github.com/maelko/binder/internal/check"
	"github.com/maelko/binder/internal/storage"
	"github.com/maelko/binder/internal/store"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the stored blob",
	Long: `Validate the stored collection blob without modifying it.

Loads silently fall back to an empty collection when the blob is
malformed, so check is how to find out what is actually wrong. It
validates the raw blob against the collection schema and reports
duplicate identifiers and blank names or titles.

Exits non-zero when any finding is reported.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	backend, _, err := openBackend()
	if err != nil {
		return err
	}
	defer backend.Close()

	data, err := backend.Get(store.CollectionKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Println("Nothing stored yet.")
			return nil
		}
		return err
	}

	result := check.Blob(data)
	if result.OK() {
		fmt.Println("No issues found.")
		return nil
	}

	for _, f := range result.Findings {
		fmt.Println(f.String())
	}
	return fmt.Errorf("%d issue(s) found", len(result.Findings))
}
