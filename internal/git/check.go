package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ErrGitNotFound indicates git is not installed or not in PATH
var ErrGitNotFound = fmt.Errorf("git not found: please install git (https://git-scm.com)")

// ErrNotRepository is returned when a directory is not inside a git repository.
var ErrNotRepository = errors.New("not a git repository")

// CheckGit verifies that git is available in PATH
func CheckGit() error {
	_, err := exec.LookPath("git")
	if err != nil {
		return ErrGitNotFound
	}
	return nil
}

// IsInsideRepo returns true if the runner's directory is inside a git repository
func IsInsideRepo(ctx context.Context, r Runner) bool {
	return r.Run(ctx, "rev-parse", "--git-dir") == nil
}

// TopLevel returns the root directory of the repository containing the
// runner's directory. Bare repositories have no top level and return an error.
func TopLevel(ctx context.Context, r Runner) (string, error) {
	out, err := r.Output(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not in a git work tree: %w", err)
	}
	return out, nil
}

// RepoDir returns the directory zrefs operates in for the runner's
// directory: the work tree root, or the git directory of a bare repository.
func RepoDir(ctx context.Context, r Runner) (string, error) {
	if !IsInsideRepo(ctx, r) {
		return "", ErrNotRepository
	}
	if top, err := TopLevel(ctx, r); err == nil && top != "" {
		return top, nil
	}
	// Bare repositories have no work tree.
	dir, err := r.Output(ctx, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", fmt.Errorf("locate git directory: %w", err)
	}
	return dir, nil
}
