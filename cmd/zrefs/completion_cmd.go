package main

import (
	"github.com/spf13/cobra"
)

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "completion <shell>",
		Short:   "Generate completion script",
		GroupID: GroupConfig,
		Long: `Generate shell completion script.

Besides subcommands and flags, the script completes environment names
under the configured ref prefix (path, resolve, exists, create-command)
and registered command names for "zrefs call".`,
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.ExactArgs(1),
		Example: `  # Current shell only
  source <(zrefs completion bash)

  # Fish
  zrefs completion fish > ~/.config/fish/completions/zrefs.fish

  # Bash
  zrefs completion bash > ~/.local/share/bash-completion/completions/zrefs

  # Zsh
  zrefs completion zsh > ~/.zfunc/_zrefs
  # Then add ~/.zfunc to fpath in .zshrc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
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

	return cmd
}
