// Package cliutil holds the small terminal-rendering helpers shared by
// coopctl's subcommands, grounded on the teacher's internal/ui truncate
// helper and cmd/surge's isTerminal check.
package cliutil

import (
	"os"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Truncate shortens s to fit width display columns, appending an ellipsis
// when it does not fit, using rune-width-aware measurement so wide
// characters don't throw off column alignment.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 1 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width-1, "") + "…"
}

// IsTerminal reports whether f is attached to an interactive terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// ResolveColor interprets the --color flag value (auto|on|off) against
// whether stdout is a terminal.
func ResolveColor(mode string) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return IsTerminal(os.Stdout)
	}
}
