package git

import (
	"context"
	"strings"

	"github.com/zicht/zrefs/internal/cmd"
)

// Runner executes git subcommands. Implementations must be safe to reuse
// across calls; ExecRunner is, and tests substitute fakes.
type Runner interface {
	// Output runs git with args and returns stdout with surrounding
	// whitespace trimmed.
	Output(ctx context.Context, args ...string) (string, error)
	// OutputWithInput is Output with input written to git's stdin.
	OutputWithInput(ctx context.Context, input string, args ...string) (string, error)
	// Run runs git with args, discarding stdout.
	Run(ctx context.Context, args ...string) error
}

// ExecRunner runs the git binary in Dir (the process working directory when empty).
type ExecRunner struct {
	Dir string
}

// NewExecRunner returns a Runner that shells out to git in dir.
func NewExecRunner(dir string) *ExecRunner {
	return &ExecRunner{Dir: dir}
}

// Output implements Runner.
func (r *ExecRunner) Output(ctx context.Context, args ...string) (string, error) {
	out, err := cmd.OutputContext(ctx, r.Dir, "git", args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// OutputWithInput implements Runner.
func (r *ExecRunner) OutputWithInput(ctx context.Context, input string, args ...string) (string, error) {
	out, err := cmd.OutputWithInput(ctx, r.Dir, input, "git", args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, args ...string) error {
	return cmd.RunContext(ctx, r.Dir, "git", args...)
}

var _ Runner = (*ExecRunner)(nil)
