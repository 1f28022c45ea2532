// Package cmd provides helpers for executing external commands with proper error handling.
//
// Every failure to spawn a process or a non-zero exit is reported as an
// [*Error], which carries the command line and the trimmed stderr and matches
// [ErrSubprocess] with [errors.Is]. Context cancellation is returned as the
// context's own error so callers can tell an interrupt from a git failure.
//
// # Usage
//
//	out, err := cmd.OutputContext(ctx, repoDir, "git", "show-ref", "--hash", "refs/deploy/staging")
//	if errors.Is(err, cmd.ErrSubprocess) {
//	    // git ran (or failed to start) and reported a problem
//	}
//
// Commands are logged through the context logger when verbose output is on.
package cmd
