package main

import (
	"fmt"
	"strings"

	"github.com/maelko/binder/internal/cli"
	"github.com/spf13/cobra"
)

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Manage folders",
	Long: `Manage folders.

Folders are ordered containers of to-do items. Anywhere a command takes
a folder, it accepts the exact name first, then the id, then the
1-based position shown by binder folders.`,
}

var folderAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new folder",
	Long: `Add a new empty folder.

Names do not have to be unique; when they collide, references resolve
to the first match in collection order.

Examples:
  binder folder add Groceries
  binder folder add "Weekend chores"`,
	Args: cobra.ExactArgs(1),
	RunE: runFolderAdd,
}

var folderRmCmd = &cobra.Command{
	Use:   "rm <folder>...",
	Short: "Remove folder(s)",
	Long: `Remove one or more folders and everything in them.

All references are resolved against the current state first, then the
folders are removed in one batch, so positions refer to the listing
before removal.

Examples:
  binder folder rm Groceries
  binder folder rm 2 3`,
	Args:              cobra.MinimumNArgs(1),
	RunE:              runFolderRm,
	ValidArgsFunction: completeFolders,
}

func init() {
	folderCmd.AddCommand(folderAddCmd)
	folderCmd.AddCommand(folderRmCmd)
	rootCmd.AddCommand(folderCmd)
}

func runFolderAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	if strings.TrimSpace(name) == "" {
		return &cli.ValidationError{Field: "name", Message: "cannot be empty"}
	}

	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	folder := st.AddFolder(name)
	fmt.Printf("Added folder %q.\n", folder.Name)
	return nil
}

func runFolderRm(cmd *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	folders := st.Folders()

	var errs []string
	var positions []int
	var names []string
	for _, ref := range args {
		folder, pos, err := resolveFolder(folders, ref)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		positions = append(positions, pos)
		names = append(names, folder.Name)
	}

	if len(positions) > 0 {
		st.RemoveFolders(positions...)
		for _, name := range names {
			fmt.Printf("Removed folder %q.\n", name)
		}
	}

	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Printf("error: %s\n", e)
		}
		if len(positions) == 0 {
			return fmt.Errorf("no folders removed")
		}
	}
	return nil
}
