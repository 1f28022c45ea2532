package cmd

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/zicht/zrefs/internal/log"
)

// ErrSubprocess matches every *Error via errors.Is. It is the only failure
// kind produced by this package besides context cancellation.
var ErrSubprocess = errors.New("subprocess failed")

// Error describes a command that could not be spawned or exited non-zero.
type Error struct {
	Name   string
	Args   []string
	Stderr string
	Err    error
}

// Error returns the command's stderr when it wrote any, so users see git's
// own message, otherwise the underlying exec error.
func (e *Error) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ErrSubprocess.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrSubprocess.
func (e *Error) Is(target error) bool {
	return target == ErrSubprocess
}

// CommandLine returns the command as it was invoked, for diagnostics.
func (e *Error) CommandLine() string {
	return strings.TrimSpace(e.Name + " " + strings.Join(e.Args, " "))
}

// RunContext executes a command in dir with context support and verbose logging.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	_, err := run(ctx, dir, nil, name, args...)
	return err
}

// OutputContext executes a command in dir and returns its stdout.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	return run(ctx, dir, nil, name, args...)
}

// OutputWithInput executes a command with stdin attached and returns its stdout.
func OutputWithInput(ctx context.Context, dir, input, name string, args ...string) ([]byte, error) {
	return run(ctx, dir, strings.NewReader(input), name, args...)
}

func run(ctx context.Context, dir string, stdin *strings.Reader, name string, args ...string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	if stdin != nil {
		c.Stdin = stdin
	}
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	done(time.Since(start))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &Error{
			Name:   name,
			Args:   args,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return stdout.Bytes(), nil
}
