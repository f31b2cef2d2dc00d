package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <folder> <item>...",
	Short: "Remove item(s) from a folder",
	Long: `Remove one or more items from a folder.

Items are resolved by 1-based position first, then exact title. All
references are resolved against the current state and then removed in
one batch, so positions refer to the listing before removal: rm
Groceries 2 4 removes the second and fourth items as shown by list.

Examples:
  binder rm Groceries 2
  binder rm Groceries 1 3
  binder rm Groceries "Buy milk"`,
	Args:              cobra.MinimumNArgs(2),
	RunE:              runRm,
	ValidArgsFunction: completeFolderThenItems,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
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
	var positions []int
	var titles []string
	for _, ref := range args[1:] {
		item, pos, err := resolveItem(folder, ref)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		positions = append(positions, pos)
		titles = append(titles, item.Title)
	}

	if len(positions) > 0 {
		st.RemoveItems(folder.ID, positions...)
		for _, title := range titles {
			fmt.Printf("Removed %q from %s.\n", title, folder.Name)
		}
	}

	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Printf("error: %s\n", e)
		}
		if len(positions) == 0 {
			return fmt.Errorf("no items removed")
		}
	}
	return nil
}
