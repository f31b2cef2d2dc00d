package main

import (
	"fmt"
	"strings"

	"github.com/maelko/binder/internal/cli"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new item",
	Long: `Add a new item to a folder.

Without --folder the item goes to the default_folder from config.yaml.

Examples:
  binder add "Buy milk" --folder=Groceries
  binder add "Write invoice" -f Work
  binder add "Buy milk"`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

var addFolder string

func init() {
	addCmd.Flags().StringVarP(&addFolder, "folder", "f", "", "folder name, id, or position")
	addCmd.RegisterFlagCompletionFunc("folder", completeFolders)
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := args[0]
	if strings.TrimSpace(title) == "" {
		return &cli.ValidationError{Field: "title", Message: "cannot be empty"}
	}

	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ref := addFolder
	if ref == "" {
		ref = cfg.DefaultFolder
	}
	if ref == "" {
		return &cli.ValidationError{Message: "no folder specified (use --folder or set default_folder in config.yaml)"}
	}

	folder, _, err := resolveFolder(st.Folders(), ref)
	if err != nil {
		return err
	}

	item, ok := st.AddItem(folder.ID, title)
	if !ok {
		return &cli.NotFoundError{Type: "folder", Ref: ref}
	}

	fmt.Printf("Added %q to %s.\n", item.Title, folder.Name)
	return nil
}
