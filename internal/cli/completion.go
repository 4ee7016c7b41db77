package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tabmind/pkg/kgraph"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for tabmind.

  bash:        source <(tabmind completion bash)
  zsh:         tabmind completion zsh > "${fpath[1]}/_tabmind"
  fish:        tabmind completion fish | source
  powershell:  tabmind completion powershell | Out-String | Invoke-Expression

Node names are completed for url, topic, edge and show arguments.`,
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

// completeNodes returns a completion function offering node names of kind
// (zero for both kinds) for the first n positional arguments.
func (c *CLI) completeNodes(kind kgraph.Kind, n int) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) >= n {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		if err := c.setup(cmd, args); err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		st, err := c.openStore(cmd.Context())
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		defer st.Close()

		nodes := st.Graph().Nodes()
		if kind != 0 {
			nodes = st.Graph().NodesOfKind(kind)
		}
		var names []string
		for _, node := range nodes {
			if strings.HasPrefix(node.Name, toComplete) {
				names = append(names, node.Name)
			}
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}
