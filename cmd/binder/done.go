package main

import (
	"fmt"

	"github.com/maelko/binder/internal/cli"
	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:     "done <folder> <item>...",
	Aliases: []string{"toggle"},
	Short:   "Toggle item completion",
	Long: `Toggle the completion flag of one or more items.

Items are resolved within the folder by 1-based position first, then
exact title. A pending item is marked done, a completed one reopened.

Examples:
  binder done Groceries 2
  binder done Groceries "Buy milk"
  binder toggle Work 1 2 3`,
	Args:              cobra.MinimumNArgs(2),
	RunE:              runDone,
	ValidArgsFunction: completeFolderThenItems,
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

func runDone(cmd *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	folder, _, err := resolveFolder(st.Folders(), args[0])
	if err != nil {
		return err
	}

	var errs []string
	toggled := 0
	for _, ref := range args[1:] {
		// Resolve against a fresh snapshot so repeated references see
		// the previous toggle.
		current := st.Folders().FindFolder(folder.ID)
		if current == nil {
			return &cli.NotFoundError{Type: "folder", Ref: args[0]}
		}
		item, _, err := resolveItem(*current, ref)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}

		st.ToggleItem(folder.ID, item.ID)
		toggled++
		if item.Completed {
			fmt.Printf("%q reopened.\n", item.Title)
		} else {
			fmt.Printf("%q done.\n", item.Title)
		}
	}

	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Printf("error: %s\n", e)
		}
		if toggled == 0 {
			return fmt.Errorf("no items toggled")
		}
	}
	return nil
}
