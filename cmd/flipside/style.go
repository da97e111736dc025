package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	cellStyle  = lipgloss.NewStyle().PaddingRight(2)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

// table lays rows out in left-aligned columns, the first row styled as a
// header.
func table(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	lines := make([]string, 0, len(rows))
	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			style := cellStyle.Width(widths[i] + 2)
			if r == 0 {
				style = style.Inherit(labelStyle)
			}
			cells[i] = style.Render(cell)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// field renders "label value".
func field(label string, value any) string {
	return labelStyle.Render(label+":") + " " + fmt.Sprint(value)
}
