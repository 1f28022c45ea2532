package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/zicht/zrefs/internal/log"
	"github.com/zicht/zrefs/internal/output"
)

func newCreateCmd() *cobra.Command {
	var (
		message string
		apply   bool
		copyCmd bool
		oneline bool
	)

	cmd := &cobra.Command{
		Use:     "create-command REV ENV",
		Short:   "Build the command that points an environment at a revision",
		Aliases: []string{"create"},
		GroupID: GroupFormat,
		Long: `Build the git command that points ENV at a new commit carrying the
tree of REV.

For an existing environment the new commit's parent is the current
environment commit, and update-ref only succeeds if the ref still points
there. A new environment gets a root commit whose message is the
refs.log_format line of REV.

The command is printed by default. --copy puts it on the clipboard and
--apply runs it.`,
		Example: `  zrefs create-command -m "Deploy 1.4" main staging
  zrefs create-command -m "Deploy 1.4" v1.4 production --copy
  zrefs create-command -m "Hotfix" HEAD staging --apply`,
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 1 {
				return completeEnvironments(cmd, nil, toComplete)
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)
			rev, name := args[0], args[1]

			env, err := newEnv(ctx)
			if err != nil {
				return err
			}
			c, err := env.CreateCommand(ctx, message, rev, name)
			if err != nil {
				return err
			}

			if copyCmd {
				if err := clipboard.WriteAll(c.Render()); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				l.Println("Copied command to clipboard")
			}

			if !apply {
				if !copyCmd {
					printResult(out, c, oneline)
				}
				return nil
			}

			l.Debug("applying", "env", name, "rev", rev)
			if _, err := env.Apply(ctx, c, name); err != nil {
				return err
			}
			hash, err := env.Resolve(ctx, name)
			if err != nil {
				return err
			}
			l.Printf("Updated %s\n", name)
			out.Println(hash)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Reflog message for the ref update")
	cmd.Flags().BoolVar(&apply, "apply", false, "Run the command instead of printing it")
	cmd.Flags().BoolVarP(&copyCmd, "copy", "c", false, "Copy the command to the clipboard")
	cmd.Flags().BoolVar(&oneline, "oneline", false, "Print the command on a single line")
	_ = cmd.MarkFlagRequired("message")
	cmd.MarkFlagsMutuallyExclusive("apply", "copy")

	return cmd
}
