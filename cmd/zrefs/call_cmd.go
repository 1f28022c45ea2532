package main

import (
	"github.com/spf13/cobra"

	"github.com/zicht/zrefs/internal/format"
	"github.com/zicht/zrefs/internal/output"
	"github.com/zicht/zrefs/internal/refs"
)

func newCallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "call NAME [ARGS...]",
		Short:   "Call a registered command by name",
		GroupID: GroupUtility,
		Long: `Call a registered command by name.

Run "zrefs commands" for the list of names and their arguments.`,
		Example: `  zrefs call refs.path staging
  zrefs call refs.remote.exists staging origin push
  zrefs call refs.fmt.update_remote staging origin fetch`,
		Args: cobra.MinimumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return refs.DefaultRegistry().Names(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := newEnv(ctx)
			if err != nil {
				return err
			}
			v, err := env.Call(ctx, args[0], args[1:]...)
			if err != nil {
				return err
			}
			printResult(output.FromContext(ctx), v, false)
			return nil
		},
	}

	// Everything after NAME belongs to the called command.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func newCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "commands",
		Short:   "List registered commands",
		GroupID: GroupUtility,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())
			out.Print(format.Commands(refs.DefaultRegistry().Commands()))
			return nil
		},
	}
}
