package refs

import (
	"context"
	"fmt"

	"github.com/zicht/zrefs/internal/config"
	"github.com/zicht/zrefs/internal/git"
)

// Env is passed to every command: configuration, git access, the
// memoization cache and the registry for calling other commands.
type Env struct {
	Config   config.RefsConfig
	Git      git.Runner
	Dir      string
	Cache    *Cache
	Registry *Registry
}

// NewEnv returns an Env for the repository at dir with a fresh cache and
// the default command set.
func NewEnv(cfg config.RefsConfig, dir string, runner git.Runner) *Env {
	return &Env{
		Config:   cfg,
		Git:      runner,
		Dir:      dir,
		Cache:    NewCache(),
		Registry: DefaultRegistry(),
	}
}

// Call invokes a registered command by name.
func (e *Env) Call(ctx context.Context, name string, args ...string) (any, error) {
	return e.Registry.Call(ctx, e, name, args...)
}

func call[T any](ctx context.Context, e *Env, name string, args ...string) (T, error) {
	var zero T
	v, err := e.Call(ctx, name, args...)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%s returned %T, want %T", name, v, zero)
	}
	return t, nil
}

// Path returns the full ref name for an environment.
func (e *Env) Path(ctx context.Context, name string) (string, error) {
	return call[string](ctx, e, CmdPath, name)
}

// LocalExists reports whether the environment ref exists locally.
func (e *Env) LocalExists(ctx context.Context, name string) bool {
	ok, _ := call[bool](ctx, e, CmdLocalExists, name)
	return ok
}

// RemoteExists reports whether the environment ref exists on remote.
// An empty remote selects the default remote.
func (e *Env) RemoteExists(ctx context.Context, name, remote string, push bool) bool {
	// Trailing empty arguments are dropped so the cache key matches a
	// "refs.remote.exists NAME" call.
	args := []string{name}
	if remote != "" || push {
		args = append(args, remote)
	}
	if push {
		args = append(args, "push")
	}
	ok, _ := call[bool](ctx, e, CmdRemoteExists, args...)
	return ok
}

// DefaultRemote returns the configured or first listed remote.
func (e *Env) DefaultRemote(ctx context.Context) (string, error) {
	return call[string](ctx, e, CmdRemoteDefault)
}

// Resolve returns the commit hash the environment ref points to.
func (e *Env) Resolve(ctx context.Context, name string) (string, error) {
	return call[string](ctx, e, CmdResolve, name)
}

// ResolveTree returns the tree hash of rev.
func (e *Env) ResolveTree(ctx context.Context, rev string) (string, error) {
	return call[string](ctx, e, CmdResolveTree, rev)
}

// LogMessage returns the formatted log line of rev.
func (e *Env) LogMessage(ctx context.Context, rev string) (string, error) {
	return call[string](ctx, e, CmdLogMessage, rev)
}

// CreateCommand builds the update-ref command that points name at a new
// commit carrying the tree of rev.
func (e *Env) CreateCommand(ctx context.Context, msg, rev, name string) (*git.Command, error) {
	return call[*git.Command](ctx, e, CmdCreateCommand, msg, rev, name)
}

// List returns the environments below the configured prefix.
func (e *Env) List(ctx context.Context) ([]Environment, error) {
	return call[[]Environment](ctx, e, CmdList)
}

// Flush drops the cached result of a memoized command invocation.
func (e *Env) Flush(ctx context.Context, name string, args ...string) (string, error) {
	return call[string](ctx, e, CmdCacheFlush, append([]string{name}, args...)...)
}

// Apply evaluates c and invalidates the cached state of environment name,
// which c is expected to have changed.
func (e *Env) Apply(ctx context.Context, c *git.Command, name string) (string, error) {
	out, err := c.Eval(ctx, e.Git)
	for _, id := range []string{CmdLocalExists, CmdResolve} {
		if _, ferr := e.Flush(ctx, id, name); ferr != nil && err == nil {
			err = ferr
		}
	}
	if _, ferr := e.Flush(ctx, CmdList); ferr != nil && err == nil {
		err = ferr
	}
	if err != nil {
		return "", fmt.Errorf("apply %s: %w", name, err)
	}
	return out, nil
}
