package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zicht/zrefs/internal/config"
	"github.com/zicht/zrefs/internal/format"
	"github.com/zicht/zrefs/internal/git"
	"github.com/zicht/zrefs/internal/output"
	"github.com/zicht/zrefs/internal/refs"
)

// newEnv returns a refs environment for the repository containing the
// working directory. Bare repositories are supported.
func newEnv(ctx context.Context) (*refs.Env, error) {
	dir := config.WorkDirFromContext(ctx)
	runner := git.NewExecRunner(dir)
	repoDir, err := git.RepoDir(ctx, runner)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}

	cfg := config.FromContext(ctx)
	if cfg == nil {
		d := config.Default()
		cfg = &d
	}
	return refs.NewEnv(cfg.Refs, repoDir, git.NewExecRunner(repoDir)), nil
}

// runRefs is the RunE body shared by commands that call one registered
// command and print its result.
func runRefs(name string, argsFn func(args []string) []string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := newEnv(ctx)
		if err != nil {
			return err
		}
		if argsFn != nil {
			args = argsFn(args)
		}
		v, err := env.Call(ctx, name, args...)
		if err != nil {
			return err
		}
		printResult(output.FromContext(ctx), v, false)
		return nil
	}
}

// printResult writes a command result to out. Commands are rendered over
// multiple lines on a terminal unless oneline is set.
func printResult(out *output.Printer, v any, oneline bool) {
	switch v := v.(type) {
	case nil:
	case string:
		out.Println(v)
	case bool:
		out.Println(strconv.FormatBool(v))
	case *git.Command:
		if out.IsTerminal() && !oneline {
			out.Println(v.RenderMultiline())
		} else {
			out.Println(v.Render())
		}
	case []refs.Environment:
		out.Print(format.Environments(v))
	case []refs.Status:
		out.Print(format.Statuses(v))
	default:
		out.Println(v)
	}
}

// completeEnvironments completes environment names below the configured prefix.
func completeEnvironments(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	env, err := newEnv(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	envs, err := env.List(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var matches []string
	for _, e := range envs {
		if strings.HasPrefix(e.Name, toComplete) {
			matches = append(matches, e.Name)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
