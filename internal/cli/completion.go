package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command. Level names complete
// from the levels folder, so completions need a chosen folder to be useful.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for levelkit.

Load them for the current session:

  bash:        source <(levelkit completion bash)
  zsh:         source <(levelkit completion zsh)
  fish:        levelkit completion fish | source
  powershell:  levelkit completion powershell | Out-String | Invoke-Expression

Level names in pull, save, refs and the other level commands complete from
the chosen levels folder.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
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
