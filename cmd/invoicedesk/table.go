package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const maxColumnWidth = 40

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	cellStyle   = lipgloss.NewStyle()
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// table renders rows as aligned columns.
type table struct {
	headers []string
	rows    [][]string
}

func newTable(headers ...string) *table {
	return &table{headers: headers}
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) widths() []int {
	w := make([]int, len(t.headers))
	for i, h := range t.headers {
		w[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, c := range row {
			if i < len(w) && lipgloss.Width(c) > w[i] {
				w[i] = min(lipgloss.Width(c), maxColumnWidth)
			}
		}
	}
	return w
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

func (t *table) render(w io.Writer) {
	if len(t.rows) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("(no records)"))
		return
	}
	widths := t.widths()
	line := func(style lipgloss.Style, cells []string) string {
		parts := make([]string, len(widths))
		for i, width := range widths {
			c := ""
			if i < len(cells) {
				c = truncate(cells[i], width)
			}
			parts[i] = style.Width(width).Render(c)
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}
	fmt.Fprintln(w, line(headerStyle, t.headers))
	for _, row := range t.rows {
		fmt.Fprintln(w, line(cellStyle, row))
	}
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d record(s)", len(t.rows))))
}
