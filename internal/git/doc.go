// Package git provides git operations for zrefs.
//
// Commands that read or write refs shell out to the git CLI through a
// [Runner], so user configuration (credential helpers, remotes, aliases)
// applies exactly as on the command line. [ExecRunner] is the production
// implementation; tests substitute fakes.
//
// # Command Builder
//
// [Command] is a structured git command line: literal arguments plus nested
// command substitutions. It validates ref names and revisions as they are
// added, renders to a shell string with proper quoting ([Command.Render],
// [Command.RenderMultiline]) and can be executed directly with
// [Command.Eval], which runs substitutions first.
//
// # Ref Listing
//
// [ListRefs] enumerates refs below a namespace with go-git, which reads
// loose and packed refs without spawning a process per ref.
package git
