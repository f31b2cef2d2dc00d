package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for binder.

To load completions:

Bash:
  $ source <(binder completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ binder completion bash > /etc/bash_completion.d/binder
  # macOS:
  $ binder completion bash > $(brew --prefix)/etc/bash_completion.d/binder

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ binder completion zsh > "${fpath[1]}/_binder"

Fish:
  $ binder completion fish | source

  # To load completions for each session, execute once:
  $ binder completion fish > ~/.config/fish/completions/binder.fish`,
}

var completionBashCmd = &cobra.Command{
	Use:   "bash",
	Short: "Generate bash completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenBashCompletion(os.Stdout)
	},
}

var completionZshCmd = &cobra.Command{
	Use:   "zsh",
	Short: "Generate zsh completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenZshCompletion(os.Stdout)
	},
}

var completionFishCmd = &cobra.Command{
	Use:   "fish",
	Short: "Generate fish completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenFishCompletion(os.Stdout, true)
	},
}

func init() {
	completionCmd.AddCommand(completionBashCmd)
	completionCmd.AddCommand(completionZshCmd)
	completionCmd.AddCommand(completionFishCmd)
	rootCmd.AddCommand(completionCmd)
}

// completeFolders offers folder names with completion counts as
// descriptions.
func completeFolders(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	st, _, err := openStore()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer st.Close()

	var completions []string
	prefix := strings.ToLower(toComplete)
	for _, f := range st.Folders() {
		if !strings.HasPrefix(strings.ToLower(f.Name), prefix) {
			continue
		}
		done, pending := f.Counts()
		completions = append(completions, fmt.Sprintf("%s\t%d/%d done", f.Name, done, done+pending))
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completeFolderThenItems completes a folder for the first argument and
// that folder's items for the rest.
func completeFolderThenItems(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return completeFolders(cmd, args, toComplete)
	}
	return completeItems(args[0], toComplete)
}

// completeItems offers item positions with state and title as
// descriptions.
func completeItems(folderRef, toComplete string) ([]string, cobra.ShellCompDirective) {
	st, _, err := openStore()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer st.Close()

	folder, _, err := resolveFolder(st.Folders(), folderRef)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	for i, item := range folder.Items {
		pos := strconv.Itoa(i + 1)
		if !strings.HasPrefix(pos, toComplete) {
			continue
		}
		state := "pending"
		if item.Completed {
			state = "done"
		}
		completions = append(completions, fmt.Sprintf("%s\t%s: %s", pos, state, truncateDesc(item.Title, 40)))
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// truncateDesc shortens a string for completion descriptions.
func truncateDesc(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
