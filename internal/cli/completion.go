package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/doctree/pkg/corpus"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for the given shell on stdout. Besides
subcommands and flags, the script completes --focus with the titles of the
notes under the root argument.

  bash        source <(doctree completion bash)
  zsh         doctree completion zsh > "${fpath[1]}/_doctree"
  fish        doctree completion fish > ~/.config/fish/completions/doctree.fish
  powershell  doctree completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}

	return cmd
}

// completeTitles completes --focus with the titles of the documents under
// the command's root argument.
func completeTitles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	docs, err := corpus.Load(cmd.Context(), rootArg(args), corpus.Options{})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var titles []string
	for _, d := range docs {
		if strings.HasPrefix(d.Record.Title, toComplete) {
			titles = append(titles, d.Record.Title)
		}
	}
	return titles, cobra.ShellCompDirectiveNoFileComp
}
