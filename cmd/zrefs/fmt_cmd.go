package main

import (
	"github.com/spf13/cobra"

	"github.com/zicht/zrefs/internal/refs"
)

func newFmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fmt",
		Short:   "Print git commands for working with remotes",
		GroupID: GroupFormat,
		Long: `Print git commands for working with remotes.

REMOTE defaults to refs.remote from the config, or the first remote
git lists.`,
		Example: `  zrefs fmt remote-url --push
  zrefs fmt push staging
  zrefs fmt fetch staging upstream`,
	}

	cmd.AddCommand(newFmtRemoteURLCmd())
	cmd.AddCommand(newFmtSyncCmd("push", refs.CmdRemotePush))
	cmd.AddCommand(newFmtSyncCmd("fetch", refs.CmdRemoteFetch))

	return cmd
}

func newFmtRemoteURLCmd() *cobra.Command {
	var push bool

	cmd := &cobra.Command{
		Use:   "remote-url [REMOTE]",
		Short: "Print the command that shows a remote's url",
		Args:  cobra.MaximumNArgs(1),
		RunE: runRefs(refs.CmdRemoteURL, func(args []string) []string {
			remote := ""
			if len(args) > 0 {
				remote = args[0]
			}
			if push {
				return []string{remote, "push"}
			}
			return []string{remote}
		}),
	}

	cmd.Flags().BoolVar(&push, "push", false, "Use the push url")

	return cmd
}

func newFmtSyncCmd(method, name string) *cobra.Command {
	return &cobra.Command{
		Use:               method + " ENV [REMOTE]",
		Short:             "Print the command that " + method + "es an environment ref",
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: completeEnvironments,
		RunE:              runRefs(name, nil),
	}
}
