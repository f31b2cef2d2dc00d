package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/maelko/binder/internal/storage"
	"github.com/maelko/binder/internal/store"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Export the collection as plain text",
	Long: `Export the whole collection as human-readable plain text.

This is a one-way export for viewing or sharing; it cannot be imported
back. With --raw, prints the persisted blob exactly as stored instead,
bypassing the store entirely.

Examples:
  binder dump
  binder dump --raw > backup.json`,
	Args: cobra.NoArgs,
	RunE: runDump,
}

var dumpRaw bool

func init() {
	dumpCmd.Flags().BoolVar(&dumpRaw, "raw", false, "print the stored blob verbatim")
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	if dumpRaw {
		return dumpRawBlob()
	}

	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	folders := st.Folders()
	if len(folders) == 0 {
		fmt.Println("No folders found.")
		return nil
	}

	for i, folder := range folders {
		if i > 0 {
			fmt.Println()
		}
		done, pending := folder.Counts()
		fmt.Printf("# %s (%d/%d done)\n", folder.Name, done, done+pending)
		for _, item := range folder.Items {
			box := "[ ]"
			if item.Completed {
				box = "[x]"
			}
			fmt.Printf("%s %s\n", box, item.Title)
		}
	}
	return nil
}

func dumpRawBlob() error {
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

	os.Stdout.Write(data)
	return nil
}
