package main

import (
	"github.com/spf13/cobra"

	"github.com/zicht/zrefs/internal/output"
	"github.com/zicht/zrefs/internal/refs"
)

func newPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "path ENV",
		Short:             "Print the full ref name of an environment",
		GroupID:           GroupRefs,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeEnvironments,
		Example:           `  zrefs path staging   # refs/deploy/staging`,
		RunE:              runRefs(refs.CmdPath, nil),
	}
}

func newExistsCmd() *cobra.Command {
	var (
		remote bool
		from   string
		push   bool
	)

	cmd := &cobra.Command{
		Use:   "exists ENV",
		Short: "Check whether an environment ref exists",
		Long: `Check whether an environment ref exists.

Prints true or false. Without --remote the local repository is checked.
With --remote the ref is looked up on the default remote (or --from),
using its push url with --push.`,
		GroupID:           GroupRefs,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeEnvironments,
		Example: `  zrefs exists staging                    # local ref
  zrefs exists staging --remote           # default remote
  zrefs exists staging --from upstream    # specific remote
  zrefs exists staging --remote --push    # push url of default remote`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := newEnv(ctx)
			if err != nil {
				return err
			}

			var ok bool
			if remote || from != "" || push {
				ok = env.RemoteExists(ctx, args[0], from, push)
			} else {
				ok = env.LocalExists(ctx, args[0])
			}
			printResult(output.FromContext(ctx), ok, false)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&remote, "remote", "r", false, "Check the remote instead of the local repository")
	cmd.Flags().StringVar(&from, "from", "", "Remote to check (implies --remote)")
	cmd.Flags().BoolVar(&push, "push", false, "Use the remote's push url (implies --remote)")

	return cmd
}

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "resolve ENV",
		Short:             "Print the commit an environment points to",
		GroupID:           GroupRefs,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeEnvironments,
		RunE:              runRefs(refs.CmdResolve, nil),
	}
}

func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "tree REV",
		Short:   "Print the tree hash of a revision",
		GroupID: GroupRefs,
		Args:    cobra.ExactArgs(1),
		RunE:    runRefs(refs.CmdResolveTree, nil),
	}
}

func newLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log REV",
		Short: "Print the log line used for a new environment's first commit",
		Long: `Print the log line used for a new environment's first commit.

The line is formatted with refs.log_format from the config.`,
		GroupID: GroupRefs,
		Args:    cobra.ExactArgs(1),
		RunE:    runRefs(refs.CmdLogMessage, nil),
	}
}
