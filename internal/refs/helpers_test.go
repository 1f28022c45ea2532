package refs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/zicht/zrefs/internal/config"
	"github.com/zicht/zrefs/internal/git"
)

var errFake = errors.New("exit status 1")

// fakeRunner answers git invocations from a table keyed by the joined argv.
// Unknown invocations fail.
type fakeRunner struct {
	mu      sync.Mutex
	outputs map[string]string
	calls   []string
	inputs  map[string]string
}

func newFakeRunner(outputs map[string]string) *fakeRunner {
	return &fakeRunner{outputs: outputs}
}

func (f *fakeRunner) Output(_ context.Context, args ...string) (string, error) {
	key := strings.Join(args, " ")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, key)
	out, ok := f.outputs[key]
	if !ok {
		return "", errFake
	}
	return out, nil
}

func (f *fakeRunner) OutputWithInput(ctx context.Context, input string, args ...string) (string, error) {
	f.mu.Lock()
	if f.inputs == nil {
		f.inputs = make(map[string]string)
	}
	f.inputs[strings.Join(args, " ")] = input
	f.mu.Unlock()
	return f.Output(ctx, args...)
}

func (f *fakeRunner) Run(ctx context.Context, args ...string) error {
	_, err := f.Output(ctx, args...)
	return err
}

// count returns how often the given argv was invoked.
func (f *fakeRunner) count(argv string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == argv {
			n++
		}
	}
	return n
}

func testConfig() config.RefsConfig {
	return config.RefsConfig{
		Prefix:    config.DefaultPrefix,
		Remote:    "origin",
		LogFormat: config.DefaultLogFormat,
	}
}

func newTestEnv(t *testing.T, outputs map[string]string) (*Env, *fakeRunner) {
	t.Helper()
	r := newFakeRunner(outputs)
	// Dir points at an empty directory so listing never picks up a real repository.
	return NewEnv(testConfig(), t.TempDir(), r), r
}

// setupTestRepo creates a git repository with one commit and returns its path.
func setupTestRepo(t *testing.T) string {
	t.Helper()
	tmp, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolve temp dir: %v", err)
	}
	repoPath := filepath.Join(tmp, "repo")

	ctx := context.Background()
	if err := git.NewExecRunner("").Run(ctx, "init", "-b", "main", repoPath); err != nil {
		t.Fatalf("git init: %v", err)
	}
	r := git.NewExecRunner(repoPath)
	for _, args := range [][]string{
		{"config", "user.email", "test@test.com"},
		{"config", "user.name", "Test User"},
		{"config", "commit.gpgsign", "false"},
	} {
		if err := r.Run(ctx, args...); err != nil {
			t.Fatalf("git %v: %v", args, err)
		}
	}
	if err := os.WriteFile(filepath.Join(repoPath, "README.md"), []byte("# test\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := r.Run(ctx, "add", "README.md"); err != nil {
		t.Fatalf("git add: %v", err)
	}
	if err := r.Run(ctx, "commit", "-m", "Initial commit"); err != nil {
		t.Fatalf("git commit: %v", err)
	}
	return repoPath
}
