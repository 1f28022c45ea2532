package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// resolveTempDir creates a temp directory and resolves macOS symlinks.
func resolveTempDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("failed to resolve symlinks for %s: %v", tmpDir, err)
	}
	return resolved
}

// setupTestRepo creates a git repo with main branch, an initial commit and
// git identity config. Returns the resolved repo path.
func setupTestRepo(t *testing.T) string {
	t.Helper()
	repoPath := filepath.Join(resolveTempDir(t), "test-repo")

	ctx := context.Background()
	if err := NewExecRunner("").Run(ctx, "init", "-b", "main", repoPath); err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}

	r := NewExecRunner(repoPath)
	for _, args := range [][]string{
		{"config", "user.email", "test@test.com"},
		{"config", "user.name", "Test User"},
		{"config", "commit.gpgsign", "false"},
	} {
		if err := r.Run(ctx, args...); err != nil {
			t.Fatalf("failed to run git %v: %v", args, err)
		}
	}

	if err := os.WriteFile(filepath.Join(repoPath, "README.md"), []byte("# test\n"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := r.Run(ctx, "add", "README.md"); err != nil {
		t.Fatalf("failed to add file: %v", err)
	}
	if err := r.Run(ctx, "commit", "-m", "Initial commit"); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}

	return repoPath
}

// headHash returns the commit hash of HEAD in repoPath.
func headHash(t *testing.T, repoPath string) string {
	t.Helper()
	out, err := NewExecRunner(repoPath).Output(context.Background(), "rev-parse", "HEAD")
	if err != nil {
		t.Fatalf("rev-parse HEAD: %v", err)
	}
	return out
}

// fakeRunner answers Output calls from a table keyed by the joined argv.
type fakeRunner struct {
	outputs map[string]string
	calls   []string
	inputs  map[string]string
}

func (f *fakeRunner) Output(_ context.Context, args ...string) (string, error) {
	key := joinArgs(args)
	f.calls = append(f.calls, key)
	out, ok := f.outputs[key]
	if !ok {
		return "", &os.PathError{Op: "git", Path: key, Err: os.ErrNotExist}
	}
	return out, nil
}

func (f *fakeRunner) OutputWithInput(ctx context.Context, input string, args ...string) (string, error) {
	if f.inputs == nil {
		f.inputs = make(map[string]string)
	}
	f.inputs[joinArgs(args)] = input
	return f.Output(ctx, args...)
}

func (f *fakeRunner) Run(ctx context.Context, args ...string) error {
	_, err := f.Output(ctx, args...)
	return err
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
