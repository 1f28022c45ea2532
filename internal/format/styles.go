package format

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Theme defines the colors used in rendered output.
type Theme struct {
	Primary color.Color // headers
	Success color.Color // positive states
	Error   color.Color // negative states
	Muted   color.Color // hashes and secondary text
}

var (
	// DefaultTheme is the standard palette.
	DefaultTheme = Theme{
		Primary: lipgloss.Color("62"),  // cyan/teal
		Success: lipgloss.Color("82"),  // green
		Error:   lipgloss.Color("196"), // red
		Muted:   lipgloss.Color("240"), // dark gray
	}

	// NoneTheme renders without colors; bold is preserved.
	NoneTheme = Theme{
		Primary: lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Muted:   lipgloss.NoColor{},
	}
)

// Styles derived from the active theme.
var (
	HeaderStyle  lipgloss.Style
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	MutedStyle   lipgloss.Style
)

func init() {
	SetTheme(DefaultTheme)
}

// SetTheme replaces the active palette.
func SetTheme(t Theme) {
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	SuccessStyle = lipgloss.NewStyle().Foreground(t.Success)
	ErrorStyle = lipgloss.NewStyle().Foreground(t.Error)
	MutedStyle = lipgloss.NewStyle().Foreground(t.Muted)
}

// Bool renders b as a colored yes/no.
func Bool(b bool) string {
	if b {
		return SuccessStyle.Render("yes")
	}
	return ErrorStyle.Render("no")
}

// ShortHash abbreviates a commit hash to seven characters.
func ShortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
