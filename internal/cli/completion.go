package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command. Mode and format flags
// complete their values; show completes image files.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion bash|zsh|fish|powershell",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for mondrian on stdout.

  bash        source <(mondrian completion bash)
  zsh         mondrian completion zsh > "${fpath[1]}/_mondrian"
  fish        mondrian completion fish > ~/.config/fish/completions/mondrian.fish
  powershell  mondrian completion powershell | Out-String | Invoke-Expression

Start a new shell afterwards for the completions to load.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
