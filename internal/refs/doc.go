// Package refs implements the ref command registry: named commands that
// manage environment refs stored below a configurable prefix such as
// refs/deploy/.
//
// Commands are registered once in a Registry and invoked by name with an
// explicit Env carrying configuration, a git.Runner and a result Cache.
// Read-only queries are memoized per argument list for the lifetime of the
// Env; refs.cache.flush drops a single entry after the underlying ref has
// changed.
//
// Commands that change refs are never executed here. refs.create_command
// and the refs.fmt.* commands return a *git.Command for the caller to
// print, copy or apply.
package refs
