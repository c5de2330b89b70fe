package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/classbell/internal/keymap"
	"github.com/llehouerou/classbell/internal/ui/render"
	"github.com/llehouerou/classbell/internal/ui/sessionbar"
	"github.com/llehouerou/classbell/internal/ui/styles"
)

// helpLine lists the actions shown when the full help is hidden.
var helpLine = []keymap.Action{
	keymap.ActionStart,
	keymap.ActionResume,
	keymap.ActionStop,
	keymap.ActionApply,
	keymap.ActionHelp,
	keymap.ActionQuit,
}

// View renders the application UI.
func (m Model) View() string {
	t := styles.T()
	st := t.S()

	title := styles.Gradient("Class Bell", t.Primary, t.Secondary, true)

	fields := make([]string, 0, fieldCount)
	for i := range fieldCount {
		label := st.Label.Render(fieldLabels[i])
		box := styles.FieldStyle(i == m.focus).Render(m.inputs[i].View())
		fields = append(fields, lipgloss.JoinVertical(lipgloss.Left, label, box))
	}
	inputs := lipgloss.JoinHorizontal(lipgloss.Top, joinSpaced(fields)...)

	bar := sessionbar.Render(sessionbar.State{
		Snapshot: m.snap,
		Now:      m.now,
		Volume:   m.player.Volume(),
		LastCue:  m.lastCue,
	}, m.width)

	status := st.Muted.Render(m.status)
	if m.statusErr {
		status = st.Error.Render(m.status)
	}

	sections := []string{title, inputs, bar, render.TruncateStyled(status, m.width)}
	if m.showHelp {
		sections = append(sections, m.renderHelp())
	} else {
		sections = append(sections, m.renderHelpLine())
	}
	return strings.Join(sections, "\n")
}

func joinSpaced(blocks []string) []string {
	out := make([]string, 0, 2*len(blocks))
	for i, b := range blocks {
		if i > 0 {
			out = append(out, "  ")
		}
		out = append(out, b)
	}
	return out
}

func (m Model) renderHelpLine() string {
	st := styles.T().S()
	parts := make([]string, 0, len(helpLine))
	for _, a := range helpLine {
		keys := m.keys.KeysFor(a)
		if len(keys) == 0 {
			continue
		}
		parts = append(parts, st.Base.Render(keys[0])+" "+st.Subtle.Render(string(a)))
	}
	return render.TruncateStyled(strings.Join(parts, st.Subtle.Render(" · ")), m.width)
}

func (m Model) renderHelp() string {
	st := styles.T().S()
	var lines []string
	for _, ctx := range []string{"global", "session", "input"} {
		lines = append(lines, st.Title.Render(helpTitles[ctx]))
		for _, b := range keymap.ByContext(ctx) {
			keys := st.Base.Render(render.Pad(strings.Join(b.Keys, "/"), 20))
			lines = append(lines, "  "+keys+st.Muted.Render(b.Description))
		}
	}
	return strings.Join(lines, "\n")
}

var helpTitles = map[string]string{
	"global":  "Global",
	"session": "Session",
	"input":   "Fields",
}
