package sessionbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/classbell/internal/ticker"
	"github.com/llehouerou/classbell/internal/ui/styles"
)

var (
	filledBlock = "━"
	emptyBlock  = "─"
)

// RenderProgressBar renders the class phase progress.
// Format: ━━━━━─────  0:45:10 / 1:30:00
func RenderProgressBar(snap ticker.Snapshot, width int, color lipgloss.Color) string {
	times := formatSeconds(snap.Elapsed) + " / " + formatSeconds(snap.ClassTime)
	barWidth := width - lipgloss.Width(times) - 2

	if barWidth < 3 {
		// Too narrow for bar, just show times
		return times
	}

	filled := min(int(float64(barWidth)*snap.Progress()), barWidth)

	t := styles.T()
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat(filledBlock, filled)) +
		lipgloss.NewStyle().Foreground(t.FgSubtle).Render(strings.Repeat(emptyBlock, barWidth-filled))

	return bar + "  " + t.S().Base.Render(times)
}

// formatSeconds renders a second count as h:mm:ss, or m:ss under an hour.
func formatSeconds(sec uint64) string {
	d := time.Duration(sec) * time.Second //nolint:gosec // display only
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
