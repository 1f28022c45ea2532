package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/zicht/zrefs/internal/log"
	"github.com/zicht/zrefs/internal/output"
)

// errInteractiveStdin is returned when batch would wait on a terminal.
var errInteractiveStdin = errors.New("batch reads commands from stdin; pipe a script into it")

// batchLine is one parsed command of a batch script.
type batchLine struct {
	num  int
	name string
	args []string
}

// parseBatch splits a script into command lines. Blank lines and lines
// starting with # are skipped; words are split with shell quoting rules.
func parseBatch(r io.Reader) ([]batchLine, error) {
	var lines []batchLine
	scanner := bufio.NewScanner(r)
	num := 0
	for scanner.Scan() {
		num++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		words, err := shellquote.Split(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", num, err)
		}
		lines = append(lines, batchLine{num: num, name: words[0], args: words[1:]})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func newBatchCmd() *cobra.Command {
	var keepGoing bool

	cmd := &cobra.Command{
		Use:     "batch",
		Short:   "Run registered commands read from stdin",
		GroupID: GroupUtility,
		Long: `Run registered commands read from stdin, one per line.

All lines share one result cache, so repeated lookups run git once. Use
"refs.cache.flush NAME ARGS..." to drop a result after changing a ref.
Blank lines and lines starting with # are ignored.`,
		Example: `  printf '%s\n' 'refs.resolve staging' 'refs.remote.exists staging origin' | zrefs batch`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			in := cmd.InOrStdin()
			if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
				return errInteractiveStdin
			}

			lines, err := parseBatch(in)
			if err != nil {
				return err
			}

			env, err := newEnv(ctx)
			if err != nil {
				return err
			}

			var failed int
			for _, line := range lines {
				v, err := env.Call(ctx, line.name, line.args...)
				if err != nil {
					if !keepGoing {
						return fmt.Errorf("line %d: %w", line.num, err)
					}
					l.Printf("line %d: %v\n", line.num, err)
					failed++
					continue
				}
				printResult(out, v, true)
			}

			hits, misses := env.Cache.Stats()
			l.Debug("batch done", "commands", len(lines), "cache_hits", hits, "cache_misses", misses)
			if failed > 0 {
				return fmt.Errorf("%d of %d commands failed", failed, len(lines))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false, "Continue after a failing command")

	return cmd
}
