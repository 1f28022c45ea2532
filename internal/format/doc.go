// Package format renders command results for humans.
//
// Tables are rendered with lipgloss/table without borders; colors come from
// a small palette and are stripped by the output printer when stdout is
// not a terminal or NO_COLOR is set.
package format
