package refs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

var (
	// ErrUnknownCommand is returned when no command is registered under a name.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrArgs is returned when a command is called with the wrong number of arguments.
	ErrArgs = errors.New("invalid arguments")
)

// HandlerFunc implements a registered command.
type HandlerFunc func(ctx context.Context, env *Env, args []string) (any, error)

// Command describes a registered command.
type Command struct {
	ID       ID
	Summary  string
	Usage    string
	MinArgs  int
	MaxArgs  int // negative means unbounded
	Memoized bool

	handler HandlerFunc
}

// Name returns the dotted command name.
func (c *Command) Name() string {
	return c.ID.String()
}

func (c *Command) checkArgs(args []string) error {
	if len(args) < c.MinArgs || (c.MaxArgs >= 0 && len(args) > c.MaxArgs) {
		usage := c.Usage
		if usage == "" {
			usage = "no arguments"
		}
		return fmt.Errorf("%w: %s expects %s, got %d", ErrArgs, c.Name(), usage, len(args))
	}
	return nil
}

// Option configures a command at registration.
type Option func(*Command)

// Memoized caches successful results per argument list in the Env cache.
func Memoized() Option {
	return func(c *Command) { c.Memoized = true }
}

// WithSummary sets the one-line description shown by "zrefs commands".
func WithSummary(s string) Option {
	return func(c *Command) { c.Summary = s }
}

// WithUsage sets the argument synopsis, e.g. "ENV [REMOTE]".
func WithUsage(u string) Option {
	return func(c *Command) { c.Usage = u }
}

// WithArgs bounds the number of positional arguments.
func WithArgs(min, max int) Option {
	return func(c *Command) {
		c.MinArgs = min
		c.MaxArgs = max
	}
}

// UnknownCommandError carries the requested name and close matches.
type UnknownCommandError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownCommandError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("unknown command %q", e.Name)
	}
	return fmt.Sprintf("unknown command %q (did you mean %s?)", e.Name, strings.Join(e.Suggestions, ", "))
}

func (e *UnknownCommandError) Is(target error) bool {
	return target == ErrUnknownCommand
}

// Registry maps command names to handlers.
type Registry struct {
	commands map[string]*Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]*Command)}
}

// Register binds id to h. Registering a name twice replaces the earlier command.
func (r *Registry) Register(id ID, h HandlerFunc, opts ...Option) {
	c := &Command{ID: id, MaxArgs: -1}
	for _, opt := range opts {
		opt(c)
	}
	if c.Memoized {
		h = Memoize(id, h)
	}
	c.handler = h
	r.commands[id.String()] = c
}

// Lookup returns the command registered under name.
func (r *Registry) Lookup(name string) (*Command, error) {
	if c, ok := r.commands[name]; ok {
		return c, nil
	}
	return nil, &UnknownCommandError{Name: name, Suggestions: r.suggest(name)}
}

// Call validates the arguments and invokes the command registered under name.
func (r *Registry) Call(ctx context.Context, env *Env, name string, args ...string) (any, error) {
	c, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	if err := c.checkArgs(args); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.handler(ctx, env, args)
}

// Commands returns all registered commands sorted by name.
func (r *Registry) Commands() []*Command {
	cmds := make([]*Command, 0, len(r.commands))
	for _, c := range r.commands {
		cmds = append(cmds, c)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })
	return cmds
}

// Names returns all registered command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) suggest(name string) []string {
	return suggest(name, r.Names())
}

// suggest returns up to three fuzzy matches of name in candidates.
func suggest(name string, candidates []string) []string {
	if name == "" {
		return nil
	}
	matches := fuzzy.Find(name, candidates)
	var out []string
	for i, m := range matches {
		if i == 3 {
			break
		}
		out = append(out, m.Str)
	}
	return out
}
