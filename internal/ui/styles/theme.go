// Package styles holds the TUI color palette and shared lipgloss styles.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/classbell/internal/ticker"
)

// Theme defines the color palette and pre-built styles for the application.
type Theme struct {
	// Brand/accent colors
	Primary   lipgloss.Color // focused field, title start
	Secondary lipgloss.Color // title end, alerts

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	// Borders
	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	// Phase colors
	Class lipgloss.Color
	Break lipgloss.Color
	Rest  lipgloss.Color

	// Status colors
	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Title   lipgloss.Style
	Label   lipgloss.Style // input field labels
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	Border:      lipgloss.Color("#585858"),
	BorderFocus: lipgloss.Color("#a78bfa"),

	Class: lipgloss.Color("#7aa2f7"),
	Break: lipgloss.Color("#f1a208"),
	Rest:  lipgloss.Color("#42b883"),

	Success: lipgloss.Color("#42b883"),
	Error:   lipgloss.Color("#ff5555"),
	Warning: lipgloss.Color("#f1a208"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:    base,
		Muted:   lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle:  lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:   base.Bold(true),
		Label:   lipgloss.NewStyle().Foreground(t.FgMuted).Width(labelWidth),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
	}
}

const labelWidth = 14

// PhaseColor returns the color a session phase is drawn in.
func (t *Theme) PhaseColor(p ticker.Phase) lipgloss.Color {
	switch p {
	case ticker.PhaseClass:
		return t.Class
	case ticker.PhaseBreak:
		return t.Break
	case ticker.PhaseRest:
		return t.Rest
	default:
		return t.FgSubtle
	}
}

// Phase renders a phase badge in its color.
func (t *Theme) Phase(p ticker.Phase) string {
	return lipgloss.NewStyle().
		Foreground(t.PhaseColor(p)).
		Bold(p != ticker.PhaseIdle).
		Render(p.String())
}
