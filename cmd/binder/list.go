package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/maelko/binder/internal/cli"
	"github.com/maelko/binder/internal/model"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [folder]",
	Short: "List items",
	Long: `List items with their completion state.

With a folder argument, lists that folder. Without one, lists the
default_folder from config.yaml, or every folder when none is set.

Filters:
  --done     Show only completed items
  --pending  Show only pending items
  --all      List every folder even when a default_folder is set

Positions shown are stable references; filters never renumber items.

Examples:
  binder list
  binder list Groceries --pending
  binder list --all`,
	Args:              cobra.MaximumNArgs(1),
	RunE:              runList,
	ValidArgsFunction: completeFolders,
}

var (
	listDone    bool
	listPending bool
	listAll     bool
)

func init() {
	listCmd.Flags().BoolVar(&listDone, "done", false, "show only completed items")
	listCmd.Flags().BoolVar(&listPending, "pending", false, "show only pending items")
	listCmd.Flags().BoolVar(&listAll, "all", false, "list every folder")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if listDone && listPending {
		return fmt.Errorf("conflicting filters: --done and --pending (use only one at a time)")
	}

	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	folders := st.Folders()

	var show model.Collection
	switch {
	case len(args) == 1:
		folder, _, err := resolveFolder(folders, args[0])
		if err != nil {
			return err
		}
		show = model.Collection{folder}
	case listAll || cfg.DefaultFolder == "":
		show = folders
	default:
		folder, _, err := resolveFolder(folders, cfg.DefaultFolder)
		if err != nil {
			return err
		}
		show = model.Collection{folder}
	}

	if len(show) == 0 {
		fmt.Println("No folders found.")
		return nil
	}

	for i, folder := range show {
		if i > 0 {
			fmt.Println()
		}
		printFolder(folder)
	}
	return nil
}

func printFolder(folder model.Folder) {
	done, pending := folder.Counts()
	fmt.Printf("%s %s\n", folder.Name, cli.Gray(fmt.Sprintf("(%d/%d done)", done, done+pending)))

	if len(folder.Items) == 0 {
		fmt.Println(cli.Gray("  no items"))
		return
	}

	table := cli.NewTable()
	table.SetMaxWidth(2, cli.DefaultMaxTitleWidth)
	shown := 0
	for i, item := range folder.Items {
		if listDone && !item.Completed {
			continue
		}
		if listPending && item.Completed {
			continue
		}
		title := item.Title
		if item.Completed {
			title = cli.Gray(title)
		}
		table.AddRow("  "+strconv.Itoa(i+1), cli.Checkbox(item.Completed), title)
		shown++
	}
	if shown == 0 {
		fmt.Println(cli.Gray("  no matching items"))
		return
	}
	table.Render(os.Stdout)
}
