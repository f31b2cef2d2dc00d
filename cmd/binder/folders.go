package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/maelko/binder/internal/cli"
	"github.com/spf13/cobra"
)

var foldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "List all folders",
	Long: `List all folders with their completion counts.

The position column is accepted anywhere a command takes a folder
reference.`,
	Args: cobra.NoArgs,
	RunE: runFolders,
}

func init() {
	rootCmd.AddCommand(foldersCmd)
}

func runFolders(cmd *cobra.Command, args []string) error {
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

	table := cli.NewTable()
	table.SetMaxWidth(1, cli.DefaultMaxTitleWidth)
	for i, f := range folders {
		done, pending := f.Counts()
		table.AddRow(strconv.Itoa(i+1), f.Name, formatCounts(done, pending))
	}
	table.Render(os.Stdout)
	return nil
}

func formatCounts(done, pending int) string {
	total := done + pending
	if total == 0 {
		return cli.Gray("empty")
	}
	s := fmt.Sprintf("%d/%d done", done, total)
	switch {
	case done == total:
		return cli.Green(s)
	case done == 0:
		return s
	default:
		return cli.Yellow(s)
	}
}
