package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/internal/dto"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer(width int) (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // detect light/dark background
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	return r.Render, nil
}

// CatalogMarkdown lists machines as a markdown table.
func CatalogMarkdown(infos []dto.MachineInfo) string {
	var b strings.Builder
	b.WriteString("# Machines\n\n")
	if len(infos) == 0 {
		b.WriteString("_No machines registered._\n")
		return b.String()
	}

	b.WriteString("| Name | Alphabet | Fill | Cursor | States | Halts | Description |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, m := range infos {
		halts := strings.Join(m.SortedLabels(), ", ")
		if halts == "" {
			halts = "-"
		}
		fmt.Fprintf(&b, "| %s | `%s` | `%s` | %d | %d | %s | %s |\n",
			m.Name, m.Alphabet, m.Fill, m.Cursor, m.States, escapeCell(halts), escapeCell(m.Description))
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
