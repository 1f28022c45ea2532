package refs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zicht/zrefs/internal/git"
)

const (
	showStaging    = "show-ref --verify --quiet refs/deploy/staging"
	hashStaging    = "show-ref --verify --hash refs/deploy/staging"
	treeMain       = "rev-parse main^{tree}"
	logMain        = "log -1 --pretty=format:[z] Commit from: '%H %s' main"
	originURL      = "remote get-url origin"
	originPushURL  = "remote get-url origin --push"
	lsRemoteOrigin = "ls-remote --exit-code git@example.com:site.git refs/deploy/staging"
)

func TestRefPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prefix, name, want string
	}{
		{"refs/deploy/", "staging", "refs/deploy/staging"},
		{"refs/deploy", "staging", "refs/deploy/staging"},
		{"refs/z/envs/", "production", "refs/z/envs/production"},
	}
	for _, tt := range tests {
		got, err := RefPath(tt.prefix, tt.name)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := RefPath("", "staging")
	assert.ErrorIs(t, err, ErrNoPrefix)
}

func TestPath_Memoized(t *testing.T) {
	t.Parallel()

	env, _ := newTestEnv(t, nil)
	ctx := context.Background()

	p, err := env.Path(ctx, "staging")
	require.NoError(t, err)
	assert.Equal(t, "refs/deploy/staging", p)
	assert.Equal(t, 1, env.Cache.Len())

	_, err = env.Path(ctx, "staging")
	require.NoError(t, err)
	hits, _ := env.Cache.Stats()
	assert.Equal(t, 1, hits)
}

func TestLocalExists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	env, _ := newTestEnv(t, map[string]string{showStaging: ""})
	assert.True(t, env.LocalExists(ctx, "staging"))
	assert.False(t, env.LocalExists(ctx, "production"))

	// Invalid ref names and a missing prefix yield false, never an error.
	assert.False(t, env.LocalExists(ctx, "bad name"))
	v, err := env.Call(ctx, CmdLocalExists, "..")
	require.NoError(t, err)
	assert.Equal(t, false, v)

	env.Config.Prefix = ""
	env.Cache.Reset()
	v, err = env.Call(ctx, CmdLocalExists, "staging")
	require.NoError(t, err)
	assert.Equal(t, false, v)
}

func TestRemoteExists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("configured remote", func(t *testing.T) {
		env, r := newTestEnv(t, map[string]string{
			originURL:      "git@example.com:site.git",
			lsRemoteOrigin: "1111\trefs/deploy/staging",
		})
		assert.True(t, env.RemoteExists(ctx, "staging", "", false))
		assert.True(t, env.RemoteExists(ctx, "staging", "", false))
		assert.Equal(t, 1, r.count(originURL))
		assert.False(t, env.RemoteExists(ctx, "production", "", false))
	})

	t.Run("push url", func(t *testing.T) {
		env, r := newTestEnv(t, map[string]string{
			originPushURL:  "git@example.com:site.git",
			lsRemoteOrigin: "",
		})
		assert.True(t, env.RemoteExists(ctx, "staging", "origin", true))
		assert.Equal(t, 0, r.count(originURL))
	})

	t.Run("unknown remote", func(t *testing.T) {
		env, _ := newTestEnv(t, nil)
		v, err := env.Call(ctx, CmdRemoteExists, "staging", "upstream")
		require.NoError(t, err)
		assert.Equal(t, false, v)
	})

	t.Run("flushed by name alone", func(t *testing.T) {
		env, r := newTestEnv(t, map[string]string{
			originURL:      "git@example.com:site.git",
			lsRemoteOrigin: "1111\trefs/deploy/staging",
		})
		assert.True(t, env.RemoteExists(ctx, "staging", "", false))

		msg, err := env.Flush(ctx, CmdRemoteExists, "staging")
		require.NoError(t, err)
		assert.Equal(t, "flushed refs.remote.exists staging", msg)

		assert.True(t, env.RemoteExists(ctx, "staging", "", false))
		assert.Equal(t, 2, r.count(lsRemoteOrigin))
	})

	t.Run("no remote queries the local repository", func(t *testing.T) {
		env, r := newTestEnv(t, map[string]string{
			"remote": "",
			"ls-remote --exit-code . refs/deploy/staging": "",
		})
		env.Config.Remote = ""
		assert.True(t, env.RemoteExists(ctx, "staging", "", false))
		assert.Equal(t, 1, r.count("ls-remote --exit-code . refs/deploy/staging"))
	})
}

func TestRemoteDefault(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	env, _ := newTestEnv(t, map[string]string{"remote": "upstream\norigin"})
	remote, err := env.DefaultRemote(ctx)
	require.NoError(t, err)
	assert.Equal(t, "origin", remote, "configured remote wins")

	env.Config.Remote = ""
	env.Cache.Reset()
	remote, err = env.DefaultRemote(ctx)
	require.NoError(t, err)
	assert.Equal(t, "upstream", remote)

	env, _ = newTestEnv(t, map[string]string{"remote": ""})
	env.Config.Remote = ""
	_, err = env.DefaultRemote(ctx)
	assert.ErrorIs(t, err, ErrNoRemote)
}

func TestResolve(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	env, r := newTestEnv(t, map[string]string{hashStaging: "1111"})

	hash, err := env.Resolve(ctx, "staging")
	require.NoError(t, err)
	assert.Equal(t, "1111", hash)

	_, err = env.Resolve(ctx, "staging")
	require.NoError(t, err)
	assert.Equal(t, 1, r.count(hashStaging), "second call is served from cache")

	msg, err := env.Flush(ctx, CmdResolve, "staging")
	require.NoError(t, err)
	assert.Equal(t, "flushed refs.resolve staging", msg)

	_, err = env.Resolve(ctx, "staging")
	require.NoError(t, err)
	assert.Equal(t, 2, r.count(hashStaging), "flush forces recomputation")

	_, err = env.Resolve(ctx, "production")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, errFake)
}

func TestResolveTreeAndLogMessage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	env, _ := newTestEnv(t, map[string]string{
		treeMain: "4b825dc",
		logMain:  "[z] Commit from: 'abc123 Initial commit'",
	})

	tree, err := env.ResolveTree(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, "4b825dc", tree)

	msg, err := env.LogMessage(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, "[z] Commit from: 'abc123 Initial commit'", msg)

	_, err = env.ResolveTree(ctx, "unknown")
	assert.ErrorIs(t, err, errFake)

	_, err = env.ResolveTree(ctx, "--all")
	assert.ErrorIs(t, err, git.ErrInvalidRevision)
	assert.Equal(t, 2, env.Cache.Len(), "failures are not cached")
}

func TestCreateCommand_ExistingEnvironment(t *testing.T) {
	t.Parallel()

	env, r := newTestEnv(t, map[string]string{
		treeMain:    "4b825dc",
		showStaging: "",
		hashStaging: "1111",
	})

	c, err := env.CreateCommand(context.Background(), "Deploy to staging", "main", "staging")
	require.NoError(t, err)
	assert.Equal(t,
		`git update-ref -m 'Deploy to staging' --no-deref --create-reflog refs/deploy/staging "$(git commit-tree 4b825dc -p 1111)" 1111`,
		c.Render())
	assert.Zero(t, r.count(logMain), "log message is only used for new environments")

	const commitTree = "commit-tree 4b825dc -p 1111"
	r.outputs[commitTree] = "cafe"
	r.outputs["update-ref -m Deploy to staging --no-deref --create-reflog refs/deploy/staging cafe 1111"] = ""
	_, err = c.Eval(context.Background(), env.Git)
	require.NoError(t, err)
	assert.Equal(t, "Deploy to staging", r.inputs[commitTree], "commit-tree gets the message on stdin")
}

func TestCreateCommand_NewEnvironment(t *testing.T) {
	t.Parallel()

	const logLine = "[z] Commit from: 'abc123 Initial commit'"
	env, r := newTestEnv(t, map[string]string{
		treeMain: "4b825dc",
		logMain:  logLine,
	})

	c, err := env.CreateCommand(context.Background(), "Deploy to staging", "main", "staging")
	require.NoError(t, err)
	assert.Zero(t, r.count(hashStaging))

	args := c.Args()
	last := args[len(args)-1]
	require.NotNil(t, last.Subst, "no old value guard is appended")

	var literals []string
	for _, a := range last.Subst.Args() {
		literals = append(literals, a.Literal)
	}
	assert.Equal(t, []string{"commit-tree", "4b825dc", "-m", logLine}, literals)
	assert.Contains(t, c.Render(), "git update-ref -m 'Deploy to staging' --no-deref --create-reflog refs/deploy/staging")
}

func TestCreateCommand_Errors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	env, _ := newTestEnv(t, nil)
	_, err := env.CreateCommand(ctx, "msg", "main", "staging")
	assert.ErrorIs(t, err, errFake, "tree resolution failure propagates")

	env, _ = newTestEnv(t, map[string]string{treeMain: "4b825dc", logMain: "log"})
	_, err = env.CreateCommand(ctx, "msg", "main", "bad name")
	assert.ErrorIs(t, err, git.ErrInvalidRefName)

	_, err = env.Call(ctx, CmdCreateCommand, "msg", "main")
	assert.ErrorIs(t, err, ErrArgs)
}

func TestFormatCommands(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	env, _ := newTestEnv(t, nil)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{CmdRemoteURL, nil, "git remote get-url origin"},
		{CmdRemoteURL, []string{"upstream", "push"}, "git remote get-url upstream --push"},
		{CmdUpdateRemote, []string{"staging"}, "git push origin +refs/deploy/staging:refs/deploy/staging"},
		{CmdUpdateRemote, []string{"staging", "upstream", "fetch"}, "git fetch upstream +refs/deploy/staging:refs/deploy/staging"},
		{CmdRemotePush, []string{"staging"}, "git push origin +refs/deploy/staging:refs/deploy/staging"},
		{CmdRemoteFetch, []string{"staging", "upstream"}, "git fetch upstream +refs/deploy/staging:refs/deploy/staging"},
	}
	for _, tt := range tests {
		v, err := env.Call(ctx, tt.name, tt.args...)
		require.NoError(t, err, tt.name)
		c, ok := v.(*git.Command)
		require.True(t, ok)
		assert.Equal(t, tt.want, c.Render())
	}

	_, err := env.Call(ctx, CmdUpdateRemote, "staging", "origin", "pull")
	assert.ErrorIs(t, err, ErrArgs)

	_, err = env.Call(ctx, CmdRemoteURL, "--upload-pack=x")
	assert.ErrorIs(t, err, ErrArgs)

	assert.Equal(t, 2, env.Cache.Len(), "only the path and default remote are cached")
}

func TestCacheFlush_Missing(t *testing.T) {
	t.Parallel()

	env, _ := newTestEnv(t, nil)
	msg, err := env.Flush(context.Background(), CmdResolve, "staging")
	require.NoError(t, err)
	assert.Equal(t, "no cache entry for refs.resolve staging", msg)
}
