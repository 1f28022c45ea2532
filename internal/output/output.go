// Package output provides context-aware output for zrefs.
// Stdout is used for primary data output (hashes, paths, commands, tables).
// Stderr (via log package) is used for diagnostics.
package output

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/mattn/go-isatty"
)

type ctxKey struct{}

// Printer writes primary output to stdout.
type Printer struct {
	w        io.Writer
	terminal bool
}

// New creates a new Printer writing to the given writer.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// NewTerminal creates a Printer for f whose styled output is downsampled
// to what f supports (plain text when piped or NO_COLOR is set).
func NewTerminal(f *os.File) *Printer {
	return &Printer{
		w:        colorprofile.NewWriter(f, os.Environ()),
		terminal: isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()),
	}
}

// WithPrinter attaches a Printer writing to w to the context.
func WithPrinter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, ctxKey{}, New(w))
}

// WithTerminalPrinter attaches p to the context.
func WithTerminalPrinter(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext retrieves the Printer from context.
// Returns a Printer writing to os.Stdout if none is attached.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return &Printer{w: os.Stdout}
}

// Print writes output without a newline.
func (p *Printer) Print(a ...any) {
	fmt.Fprint(p.w, a...)
}

// Printf writes formatted output.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

// Println writes a line of output.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// IsTerminal reports whether output goes to an interactive terminal.
func (p *Printer) IsTerminal() bool {
	return p.terminal
}
