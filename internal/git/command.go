package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
)

// ErrUnresolved is returned by Argv when a command still contains
// substitutions that have to be evaluated first.
var ErrUnresolved = errors.New("command contains unevaluated substitutions")

// Arg is a single argument: a literal string or the output of a nested command.
type Arg struct {
	Literal string
	Subst   *Command
}

// Command is a structured git command line. Arguments are kept in groups;
// a group is what a human would put on one line (a flag and its value).
// Substitutions render as "$(...)" and are executed by Eval.
type Command struct {
	groups [][]Arg
	input  string
	err    error
}

// NewCommand starts a git command with the given subcommand words,
// e.g. NewCommand("update-ref").
func NewCommand(subcommand ...string) *Command {
	c := &Command{}
	return c.Arg(subcommand...)
}

// Arg appends literals as one group. Literals containing NUL bytes are
// recorded as an error, reported by Err.
func (c *Command) Arg(args ...string) *Command {
	if len(args) == 0 {
		return c
	}
	group := make([]Arg, 0, len(args))
	for _, a := range args {
		if strings.ContainsRune(a, 0) {
			c.setErr(fmt.Errorf("argument %q contains a NUL byte", a))
		}
		group = append(group, Arg{Literal: a})
	}
	c.groups = append(c.groups, group)
	return c
}

// Ref appends a validated full ref name.
func (c *Command) Ref(name string) *Command {
	if err := ValidateRefName(name); err != nil {
		c.setErr(err)
	}
	return c.Arg(name)
}

// Rev appends a validated revision. Suffixes like "^{tree}" are allowed.
func (c *Command) Rev(rev string) *Command {
	if err := ValidateRevision(rev); err != nil {
		c.setErr(err)
	}
	return c.Arg(rev)
}

// Stdin sets the text fed to the command's standard input by Eval.
// It is not part of the rendered command line.
func (c *Command) Stdin(input string) *Command {
	c.input = input
	return c
}

// Sub appends the output of sub as one argument, optionally preceded by
// flag literals in the same group (e.g. Sub(show, "-p")).
func (c *Command) Sub(sub *Command, flags ...string) *Command {
	group := make([]Arg, 0, len(flags)+1)
	for _, f := range flags {
		group = append(group, Arg{Literal: f})
	}
	group = append(group, Arg{Subst: sub})
	c.groups = append(c.groups, group)
	return c
}

func (c *Command) setErr(err error) {
	if c.err == nil {
		c.err = err
	}
}

// Err returns the first validation error of c or any nested command.
func (c *Command) Err() error {
	if c.err != nil {
		return c.err
	}
	for _, g := range c.groups {
		for _, a := range g {
			if a.Subst != nil {
				if err := a.Subst.Err(); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Args returns a copy of the top-level arguments in order.
func (c *Command) Args() []Arg {
	var out []Arg
	for _, g := range c.groups {
		out = append(out, g...)
	}
	return out
}

// Argv returns the arguments after "git". It fails if validation failed or
// substitutions remain.
func (c *Command) Argv() ([]string, error) {
	if err := c.Err(); err != nil {
		return nil, err
	}
	var argv []string
	for _, a := range c.Args() {
		if a.Subst != nil {
			return nil, ErrUnresolved
		}
		argv = append(argv, a.Literal)
	}
	return argv, nil
}

// Eval executes substitutions depth-first, then the command itself, and
// returns the trimmed output of the outermost command.
func (c *Command) Eval(ctx context.Context, r Runner) (string, error) {
	if err := c.Err(); err != nil {
		return "", err
	}
	var argv []string
	for _, a := range c.Args() {
		if a.Subst == nil {
			argv = append(argv, a.Literal)
			continue
		}
		out, err := a.Subst.Eval(ctx, r)
		if err != nil {
			return "", err
		}
		argv = append(argv, out)
	}
	if c.input != "" {
		return r.OutputWithInput(ctx, c.input, argv...)
	}
	return r.Output(ctx, argv...)
}

// String renders the command on one line.
func (c *Command) String() string {
	return c.Render()
}

// Render renders the command as a single shell line.
func (c *Command) Render() string {
	return c.render(false, 0)
}

// RenderMultiline renders the command with one argument group per line,
// joined by backslash continuations.
func (c *Command) RenderMultiline() string {
	return c.render(true, 0)
}

func (c *Command) render(multiline bool, depth int) string {
	parts := make([]string, 0, len(c.groups))
	for _, g := range c.groups {
		parts = append(parts, renderGroup(g, multiline, depth+1))
	}

	// Short commands stay on one line even in multiline mode.
	if !multiline || len(c.groups) <= 2 {
		return "git " + strings.Join(parts, " ")
	}

	indent := strings.Repeat("    ", depth+1)
	var b strings.Builder
	b.WriteString("git ")
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		b.WriteString(" \\\n")
		b.WriteString(indent)
		b.WriteString(p)
	}
	return b.String()
}

func renderGroup(g []Arg, multiline bool, depth int) string {
	words := make([]string, 0, len(g))
	for _, a := range g {
		if a.Subst != nil {
			words = append(words, `"$(`+a.Subst.render(multiline, depth)+`)"`)
			continue
		}
		words = append(words, shellquote.Join(a.Literal))
	}
	return strings.Join(words, " ")
}
