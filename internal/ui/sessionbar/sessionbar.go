// Package sessionbar renders the session summary: phase, progress through
// the class phase, end of class and next class times.
package sessionbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/classbell/internal/ticker"
	"github.com/llehouerou/classbell/internal/ui/render"
	"github.com/llehouerou/classbell/internal/ui/styles"
)

// Height is the rendered height including borders.
const Height = 6

// State holds everything needed to render the session bar.
type State struct {
	Snapshot ticker.Snapshot
	Now      time.Time
	Volume   float64 // 0.0-1.0
	LastCue  string  // title of the last cue played, empty if none
}

// Render returns the session bar for the given width.
func Render(s State, width int) string {
	t := styles.T()
	st := t.S()
	inner := max(width-6, 10) // border + padding

	snap := s.Snapshot

	status := st.Muted.Render(snap.Status.String())
	if snap.Status == ticker.StatusRunning {
		status = st.Success.Render(snap.Status.String())
	}
	vol := st.Muted.Render(fmt.Sprintf("vol %d%%", int(s.Volume*100+0.5)))
	header := render.Row(t.Phase(snap.Phase)+"  "+status, vol, inner)

	progress := RenderProgressBar(snap, inner, t.PhaseColor(snap.Phase))

	end := "Class ends " + clock(snap.EndTime, s.Now)
	next := "Next class " + clock(snap.NextClass, s.Now)
	times := render.Row(st.Base.Render(end), st.Muted.Render(next), inner)

	cue := st.Subtle.Render("No cue played yet")
	if s.LastCue != "" {
		cue = st.Subtle.Render("Last cue: ") + st.Base.Render(render.Truncate(s.LastCue, inner-10))
	}

	lines := []string{header, progress, times, cue}
	for i, l := range lines {
		lines[i] = render.TruncateStyled(l, inner)
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 2).
		Width(width - 2).
		Render(strings.Join(lines, "\n"))
}

// clock formats t as a wall-clock time followed by how far it is from now.
func clock(t, now time.Time) string {
	if t.IsZero() {
		return "--:--"
	}
	return fmt.Sprintf("%s (%s)", t.Format("15:04"), humanize.RelTime(t, now, "ago", "from now"))
}
