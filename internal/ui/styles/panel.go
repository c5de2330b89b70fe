package styles

import "github.com/charmbracelet/lipgloss"

// FieldStyle returns the border style of an input field based on focus state.
func FieldStyle(focused bool) lipgloss.Style {
	t := T()
	border := t.Border
	if focused {
		border = t.BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}
