package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/zicht/zrefs/internal/log"
	"github.com/zicht/zrefs/internal/output"
	"github.com/zicht/zrefs/internal/refs"
)

func newListCmd() *cobra.Command {
	var (
		jsonOutput bool
		remote     bool
		from       string
		push       bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List environments",
		Aliases: []string{"ls"},
		GroupID: GroupRefs,
		Args:    cobra.NoArgs,
		Long: `List the environment refs below the configured prefix.

With --remote each environment is also looked up on the default remote
(or --from); lookups run in parallel.`,
		Example: `  zrefs list                # Environments with their commits
  zrefs list --remote       # Also check the default remote
  zrefs list --json         # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			env, err := newEnv(ctx)
			if err != nil {
				return err
			}

			var result any
			if remote || from != "" || push {
				result, err = refs.RemoteStatus(ctx, env, from, push)
			} else {
				result, err = env.List(ctx)
			}
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			switch r := result.(type) {
			case []refs.Environment:
				if len(r) == 0 {
					l.Printf("No environments below %s\n", env.Config.Prefix)
					return nil
				}
			case []refs.Status:
				if len(r) == 0 {
					l.Printf("No environments below %s\n", env.Config.Prefix)
					return nil
				}
			}
			printResult(out, result, false)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVarP(&remote, "remote", "r", false, "Check each environment on the remote")
	cmd.Flags().StringVar(&from, "from", "", "Remote to check (implies --remote)")
	cmd.Flags().BoolVar(&push, "push", false, "Use the remote's push url (implies --remote)")

	return cmd
}
