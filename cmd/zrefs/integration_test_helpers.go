//go:build integration

package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

// setupTestRepo creates a git repo with an initial commit in a temp dir.
// Returns the absolute path to the created repo (with symlinks resolved).
func setupTestRepo(t *testing.T) string {
	t.Helper()

	repoPath := filepath.Join(resolvePath(t, t.TempDir()), "repo")
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		t.Fatalf("failed to create repo dir: %v", err)
	}

	for _, args := range [][]string{
		{"init", "-b", "main"},
		{"config", "user.email", "test@test.com"},
		{"config", "user.name", "Test User"},
		{"config", "commit.gpgsign", "false"},
	} {
		runGitCommand(t, repoPath, args...)
	}

	if err := os.WriteFile(filepath.Join(repoPath, "README.md"), []byte("# repo\n"), 0644); err != nil {
		t.Fatalf("failed to write README: %v", err)
	}
	runGitCommand(t, repoPath, "add", "README.md")
	runGitCommand(t, repoPath, "commit", "-m", "Initial commit")

	return repoPath
}

// runGitCommand runs git in dir and returns its trimmed output.
func runGitCommand(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
	return strings.TrimSpace(string(out))
}

// runZrefs runs the root command in dir with stdin and returns stdout.
// The global config is pointed at a missing file so defaults apply.
func runZrefs(t *testing.T, dir, stdin string, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(append([]string{"-C", dir, "--config", filepath.Join(t.TempDir(), "config.toml")}, args...))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))

	err := root.ExecuteContext(context.Background())
	if err != nil {
		t.Logf("zrefs %v stderr:\n%s", args, stderr.String())
	}
	return stdout.String(), err
}
