package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ASCII art banner and the version to out.
func PrintBanner(out *termenv.Output, version string) {
	// teal to indigo
	lines := []struct{ text, color string }{
		{" _____           _             ", "#2dd4bf"},
		{"|_   _|   _ _ __(_)_ __   __ _ ", "#22d3ee"},
		{"  | || | | | '__| | '_ \\ / _` |", "#38bdf8"},
		{"  | || |_| | |  | | | | | (_| |", "#60a5fa"},
		{"  |_| \\__,_|_|  |_|_| |_|\\__, |", "#818cf8"},
		{"                         |___/ ", "#a78bfa"},
	}

	fmt.Fprintln(out)
	for _, l := range lines {
		fmt.Fprintln(out, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(out, out.String("  v"+strings.TrimSpace(version)).Faint())
	fmt.Fprintln(out)
}

// NewOutput wraps w for styled output. Colours are only used when w is a terminal.
func NewOutput(w io.Writer) *termenv.Output {
	if !IsTerminal(w) {
		return termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))
	}
	return termenv.NewOutput(w)
}
