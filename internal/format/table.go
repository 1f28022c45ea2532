package format

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/zicht/zrefs/internal/refs"
)

// Table renders headers and rows with aligned columns and no borders.
// Returns "" when there are no rows.
func Table(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle.PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// EnvironmentHeaders are the columns of EnvironmentRow.
var EnvironmentHeaders = []string{"ENV", "REF", "COMMIT"}

// EnvironmentRow renders one environment.
func EnvironmentRow(e refs.Environment) []string {
	return []string{e.Name, e.Ref, MutedStyle.Render(ShortHash(e.Hash))}
}

// Environments renders the environments table.
func Environments(envs []refs.Environment) string {
	rows := make([][]string, len(envs))
	for i, e := range envs {
		rows[i] = EnvironmentRow(e)
	}
	return Table(EnvironmentHeaders, rows)
}

// StatusHeaders are the columns of StatusRow.
var StatusHeaders = []string{"ENV", "REF", "COMMIT", "REMOTE"}

// StatusRow renders one environment with its remote presence.
func StatusRow(s refs.Status) []string {
	return append(EnvironmentRow(s.Environment), Bool(s.Remote))
}

// Statuses renders the environments table with a remote column.
func Statuses(statuses []refs.Status) string {
	rows := make([][]string, len(statuses))
	for i, s := range statuses {
		rows[i] = StatusRow(s)
	}
	return Table(StatusHeaders, rows)
}

// CommandHeaders are the columns of CommandRow.
var CommandHeaders = []string{"NAME", "ARGS", "CACHED", "DESCRIPTION"}

// CommandRow renders one registered command.
func CommandRow(c *refs.Command) []string {
	cached := ""
	if c.Memoized {
		cached = SuccessStyle.Render("yes")
	}
	return []string{c.Name(), c.Usage, cached, c.Summary}
}

// Commands renders the registered commands table.
func Commands(cmds []*refs.Command) string {
	rows := make([][]string, len(cmds))
	for i, c := range cmds {
		rows[i] = CommandRow(c)
	}
	return Table(CommandHeaders, rows)
}
