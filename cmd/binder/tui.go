package main

import (
	"github.com/maelko/binder/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive browser",
	Long: `Open the interactive two-pane browser.

The left pane lists folders, the right pane the selected folder's
items. Every change is persisted as it is made; quit with q.`,
	Args: cobra.NoArgs,
	RunE: runTui,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTui(cmd *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	return tui.Run(st)
}
