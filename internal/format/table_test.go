package format

import (
	"strings"
	"testing"

	"github.com/zicht/zrefs/internal/refs"
)

func TestTable_Empty(t *testing.T) {
	t.Parallel()

	if got := Table([]string{"A"}, nil); got != "" {
		t.Errorf("Table(no rows) = %q, want empty", got)
	}
}

func TestEnvironments(t *testing.T) {
	t.Parallel()

	out := Environments([]refs.Environment{
		{Name: "production", Ref: "refs/deploy/production", Hash: "abc1234def5678"},
		{Name: "staging", Ref: "refs/deploy/staging", Hash: "0123456789abcdef"},
	})

	for _, want := range []string{"ENV", "COMMIT", "production", "refs/deploy/staging", "abc1234", "0123456"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "abc1234def") {
		t.Errorf("hash should be shortened:\n%s", out)
	}
	if lines := strings.Count(out, "\n"); lines != 3 {
		t.Errorf("got %d lines, want 3 (header + 2 rows):\n%s", lines, out)
	}
}

func TestStatusRow(t *testing.T) {
	t.Parallel()

	row := StatusRow(refs.Status{
		Environment: refs.Environment{Name: "staging", Ref: "refs/deploy/staging", Hash: "abc1234def"},
		Remote:      true,
	})
	if len(row) != len(StatusHeaders) {
		t.Fatalf("expected %d columns, got %d", len(StatusHeaders), len(row))
	}
	if !strings.Contains(row[3], "yes") {
		t.Errorf("REMOTE column = %q, want it to contain %q", row[3], "yes")
	}
}

func TestCommands(t *testing.T) {
	t.Parallel()

	out := Commands(refs.DefaultRegistry().Commands())
	for _, want := range []string{"NAME", refs.CmdCreateCommand, "MSG REV ENV", refs.CmdCacheFlush} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestShortHash(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{"abc1234def", "abc1234"},
		{"abc", "abc"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ShortHash(tt.in); got != tt.want {
			t.Errorf("ShortHash(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBool(t *testing.T) {
	t.Parallel()

	if !strings.Contains(Bool(true), "yes") || !strings.Contains(Bool(false), "no") {
		t.Errorf("Bool rendered %q / %q", Bool(true), Bool(false))
	}
}
