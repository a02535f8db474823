package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hamcount/pkg/graph/families"
	"github.com/matzehuels/hamcount/pkg/ordering"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for hamcount.

Bash:
  $ source <(hamcount completion bash)

Zsh:
  $ hamcount completion zsh > "${fpath[1]}/_hamcount"

Fish:
  $ hamcount completion fish | source

PowerShell:
  PS> hamcount completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// completeStrategy completes the --order flag.
func completeStrategy(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	strategies := ordering.Strategies()
	names := make([]string, len(strategies))
	for i, s := range strategies {
		names[i] = string(s)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func strategyNames() string {
	names, _ := completeStrategy(nil, nil, "")
	return strings.Join(names, ", ")
}

// completeFamily completes the family argument of graph commands.
func completeFamily(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return families.Names(), cobra.ShellCompDirectiveNoFileComp
}
