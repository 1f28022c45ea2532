package refs

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/zicht/zrefs/internal/git"
	"github.com/zicht/zrefs/internal/log"
)

// Registered command names.
const (
	CmdPath          = "refs.path"
	CmdLocalExists   = "refs.local.exists"
	CmdRemoteExists  = "refs.remote.exists"
	CmdRemoteDefault = "refs.remote.default"
	CmdResolve       = "refs.resolve"
	CmdResolveTree   = "refs.resolve_tree"
	CmdLogMessage    = "refs.log_message"
	CmdCreateCommand = "refs.create_command"
	CmdRemoteURL     = "refs.fmt.git_remote_url"
	CmdUpdateRemote  = "refs.fmt.update_remote"
	CmdRemotePush    = "refs.fmt.git_remote_push"
	CmdRemoteFetch   = "refs.fmt.git_remote_fetch"
	CmdList          = "refs.list"
	CmdCacheFlush    = "refs.cache.flush"
)

var (
	// ErrNoPrefix is returned when no ref prefix is configured.
	ErrNoPrefix = errors.New("no ref prefix configured (set refs.prefix)")
	// ErrNoRemote is returned when a remote is needed but none is configured or present.
	ErrNoRemote = errors.New("no git remote configured")
	// ErrNotFound is returned when an environment ref does not exist.
	ErrNotFound = errors.New("environment not found")
)

// Environment is a ref below the configured prefix.
type Environment struct {
	Name string `json:"name"`
	Ref  string `json:"ref"`
	Hash string `json:"hash"`
}

// DefaultRegistry returns a registry holding every refs command.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	Register(r)
	return r
}

// Register adds the refs commands to r.
func Register(r *Registry) {
	r.Register(ParseID(CmdPath), pathCommand, Memoized(), WithArgs(1, 1),
		WithUsage("ENV"), WithSummary("full ref name of an environment"))
	r.Register(ParseID(CmdLocalExists), localExistsCommand, Memoized(), WithArgs(1, 1),
		WithUsage("ENV"), WithSummary("whether the environment ref exists locally"))
	r.Register(ParseID(CmdRemoteExists), remoteExistsCommand, Memoized(), WithArgs(1, 3),
		WithUsage("ENV [REMOTE] [push]"), WithSummary("whether the environment ref exists on a remote"))
	r.Register(ParseID(CmdRemoteDefault), remoteDefaultCommand, Memoized(), WithArgs(0, 0),
		WithSummary("configured remote, or the first one git lists"))
	r.Register(ParseID(CmdResolve), resolveCommand, Memoized(), WithArgs(1, 1),
		WithUsage("ENV"), WithSummary("commit hash an environment points to"))
	r.Register(ParseID(CmdResolveTree), resolveTreeCommand, Memoized(), WithArgs(1, 1),
		WithUsage("REV"), WithSummary("tree hash of a revision"))
	r.Register(ParseID(CmdLogMessage), logMessageCommand, Memoized(), WithArgs(1, 1),
		WithUsage("REV"), WithSummary("formatted log line of a revision"))
	r.Register(ParseID(CmdCreateCommand), createCommand, WithArgs(3, 3),
		WithUsage("MSG REV ENV"), WithSummary("git command pointing an environment at a revision's tree"))
	r.Register(ParseID(CmdRemoteURL), remoteURLCommand, WithArgs(0, 2),
		WithUsage("[REMOTE] [push]"), WithSummary("git command printing a remote's url"))
	r.Register(ParseID(CmdUpdateRemote), updateRemoteCommand, WithArgs(1, 3),
		WithUsage("ENV [REMOTE] [push|fetch]"), WithSummary("git command syncing an environment with a remote"))
	r.Register(ParseID(CmdRemotePush), func(ctx context.Context, env *Env, args []string) (any, error) {
		return updateRemoteCommand(ctx, env, []string{args[0], arg(args, 1), "push"})
	}, WithArgs(1, 2), WithUsage("ENV [REMOTE]"), WithSummary("git command pushing an environment"))
	r.Register(ParseID(CmdRemoteFetch), func(ctx context.Context, env *Env, args []string) (any, error) {
		return updateRemoteCommand(ctx, env, []string{args[0], arg(args, 1), "fetch"})
	}, WithArgs(1, 2), WithUsage("ENV [REMOTE]"), WithSummary("git command fetching an environment"))
	r.Register(ParseID(CmdList), listCommand, Memoized(), WithArgs(0, 0),
		WithSummary("environments below the ref prefix"))
	r.Register(ParseID(CmdCacheFlush), flushCommand, WithArgs(1, -1),
		WithUsage("NAME [ARGS...]"), WithSummary("drop a memoized result"))
}

// RefPath joins prefix and name, adding a "/" only when prefix lacks one.
func RefPath(prefix, name string) (string, error) {
	if prefix == "" {
		return "", ErrNoPrefix
	}
	if strings.HasSuffix(prefix, "/") {
		return prefix + name, nil
	}
	return prefix + "/" + name, nil
}

func pathCommand(_ context.Context, env *Env, args []string) (any, error) {
	return RefPath(env.Config.Prefix, args[0])
}

func localExistsCommand(ctx context.Context, env *Env, args []string) (any, error) {
	l := log.FromContext(ctx)
	path, err := env.Path(ctx, args[0])
	if err != nil {
		l.Debug("local exists", "env", args[0], "err", err)
		return false, nil
	}
	argv, err := git.NewCommand("show-ref").Arg("--verify", "--quiet").Ref(path).Argv()
	if err != nil {
		l.Debug("local exists", "ref", path, "err", err)
		return false, nil
	}
	if err := env.Git.Run(ctx, argv...); err != nil {
		return false, nil
	}
	return true, nil
}

func remoteExistsCommand(ctx context.Context, env *Env, args []string) (any, error) {
	l := log.FromContext(ctx)
	path, err := env.Path(ctx, args[0])
	if err != nil {
		l.Debug("remote exists", "env", args[0], "err", err)
		return false, nil
	}

	url := "."
	remote := arg(args, 1)
	if remote == "" {
		remote, _ = env.DefaultRemote(ctx)
	}
	if remote != "" {
		urlArgv, err := remoteURL(remote, isPush(arg(args, 2))).Argv()
		if err != nil {
			l.Debug("remote exists", "remote", remote, "err", err)
			return false, nil
		}
		url, err = env.Git.Output(ctx, urlArgv...)
		if err != nil || url == "" || strings.HasPrefix(url, "-") {
			l.Debug("remote exists", "remote", remote, "url", url, "err", err)
			return false, nil
		}
	}

	argv, err := git.NewCommand("ls-remote").Arg("--exit-code", url).Ref(path).Argv()
	if err != nil {
		l.Debug("remote exists", "ref", path, "err", err)
		return false, nil
	}
	if err := env.Git.Run(ctx, argv...); err != nil {
		return false, nil
	}
	return true, nil
}

func remoteDefaultCommand(ctx context.Context, env *Env, _ []string) (any, error) {
	if env.Config.Remote != "" {
		return env.Config.Remote, nil
	}
	out, err := env.Git.Output(ctx, "remote")
	if err != nil {
		return nil, fmt.Errorf("list remotes: %w", err)
	}
	first, _, _ := strings.Cut(out, "\n")
	if first = strings.TrimSpace(first); first == "" {
		return nil, ErrNoRemote
	}
	return first, nil
}

func resolveCommand(ctx context.Context, env *Env, args []string) (any, error) {
	path, err := env.Path(ctx, args[0])
	if err != nil {
		return nil, err
	}
	argv, err := git.NewCommand("show-ref").Arg("--verify", "--hash").Ref(path).Argv()
	if err != nil {
		return nil, err
	}
	out, err := env.Git.Output(ctx, argv...)
	if err != nil {
		if ctx.Err() == nil && !env.LocalExists(ctx, args[0]) {
			return nil, notFound(ctx, env, args[0], err)
		}
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	return out, nil
}

func notFound(ctx context.Context, env *Env, name string, cause error) error {
	envs, err := env.List(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrNotFound, name, cause)
	}
	names := make([]string, len(envs))
	for i, e := range envs {
		names[i] = e.Name
	}
	if s := suggest(name, names); len(s) > 0 {
		return fmt.Errorf("%w: %s (did you mean %s?): %w", ErrNotFound, name, strings.Join(s, ", "), cause)
	}
	return fmt.Errorf("%w: %s: %w", ErrNotFound, name, cause)
}

func resolveTreeCommand(ctx context.Context, env *Env, args []string) (any, error) {
	if err := git.ValidateRevision(args[0]); err != nil {
		return nil, err
	}
	argv, err := git.NewCommand("rev-parse").Rev(args[0] + "^{tree}").Argv()
	if err != nil {
		return nil, err
	}
	out, err := env.Git.Output(ctx, argv...)
	if err != nil {
		return nil, fmt.Errorf("resolve tree of %s: %w", args[0], err)
	}
	return out, nil
}

func logMessageCommand(ctx context.Context, env *Env, args []string) (any, error) {
	format := env.Config.LogFormat
	if format == "" {
		format = "%H %s"
	}
	argv, err := git.NewCommand("log").Arg("-1", "--pretty=format:"+format).Rev(args[0]).Argv()
	if err != nil {
		return nil, err
	}
	out, err := env.Git.Output(ctx, argv...)
	if err != nil {
		return nil, fmt.Errorf("log message of %s: %w", args[0], err)
	}
	return out, nil
}

// createCommand builds:
//
//	git update-ref -m MSG --no-deref --create-reflog PATH "$(git commit-tree TREE -p HASH)" HASH
//
// when the environment exists, and otherwise
//
//	git update-ref -m MSG --no-deref --create-reflog PATH "$(git commit-tree TREE -m LOG)"
func createCommand(ctx context.Context, env *Env, args []string) (any, error) {
	msg, rev, name := args[0], args[1], args[2]

	path, err := env.Path(ctx, name)
	if err != nil {
		return nil, err
	}
	tree, err := env.ResolveTree(ctx, rev)
	if err != nil {
		return nil, err
	}

	commitTree := git.NewCommand("commit-tree").Arg(tree)
	var parent string
	if env.LocalExists(ctx, name) {
		if parent, err = env.Resolve(ctx, name); err != nil {
			return nil, err
		}
		// commit-tree reads the message from stdin when no -m is given.
		commitTree.Arg("-p", parent).Stdin(msg)
	} else {
		logMsg, err := env.LogMessage(ctx, rev)
		if err != nil {
			return nil, err
		}
		commitTree.Arg("-m", logMsg)
	}

	c := git.NewCommand("update-ref").
		Arg("-m", msg).
		Arg("--no-deref", "--create-reflog").
		Ref(path).
		Sub(commitTree)
	if parent != "" {
		c.Arg(parent)
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

func remoteURL(remote string, push bool) *git.Command {
	c := git.NewCommand("remote", "get-url").Arg(remote)
	if push {
		c.Arg("--push")
	}
	return c
}

func remoteURLCommand(ctx context.Context, env *Env, args []string) (any, error) {
	remote, err := remoteOrDefault(ctx, env, arg(args, 0))
	if err != nil {
		return nil, err
	}
	c := remoteURL(remote, isPush(arg(args, 1)))
	if err := c.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

func updateRemoteCommand(ctx context.Context, env *Env, args []string) (any, error) {
	path, err := env.Path(ctx, args[0])
	if err != nil {
		return nil, err
	}
	if err := git.ValidateRefName(path); err != nil {
		return nil, err
	}
	remote, err := remoteOrDefault(ctx, env, arg(args, 1))
	if err != nil {
		return nil, err
	}
	method := arg(args, 2)
	switch method {
	case "":
		method = "push"
	case "push", "fetch":
	default:
		return nil, fmt.Errorf("%w: method must be push or fetch, got %q", ErrArgs, method)
	}
	c := git.NewCommand(method).Arg(remote).Arg("+" + path + ":" + path)
	if err := c.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

func listCommand(ctx context.Context, env *Env, _ []string) (any, error) {
	prefix := env.Config.Prefix
	if prefix == "" {
		return nil, ErrNoPrefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	refs, err := git.ListRefs(env.Dir, prefix)
	if err != nil {
		return nil, err
	}
	envs := make([]Environment, len(refs))
	for i, r := range refs {
		envs[i] = Environment{Name: strings.TrimPrefix(r.Name, prefix), Ref: r.Name, Hash: r.Hash}
	}
	log.FromContext(ctx).Debug("listed environments", "prefix", prefix, "count", len(envs))
	return envs, nil
}

func flushCommand(_ context.Context, env *Env, args []string) (any, error) {
	id := ParseID(args[0])
	desc := strings.TrimSpace(id.String() + " " + strings.Join(args[1:], " "))
	if env.Cache != nil && env.Cache.Flush(Key(id, args[1:])) {
		return "flushed " + desc, nil
	}
	return "no cache entry for " + desc, nil
}

func remoteOrDefault(ctx context.Context, env *Env, remote string) (string, error) {
	if remote != "" {
		if strings.HasPrefix(remote, "-") {
			return "", fmt.Errorf("%w: invalid remote name %q", ErrArgs, remote)
		}
		return remote, nil
	}
	return env.DefaultRemote(ctx)
}

func isPush(s string) bool {
	if s == "push" {
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
