package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathgen/internal/ui/theme"
)

const (
	filledCell = "█"
	emptyCell  = "░"
)

// ProgressBar renders curriculum completion as a block bar followed by
// the percentage. Block glyphs keep the bar readable when color is
// stripped for pipes and files.
type ProgressBar struct {
	Label   string
	Percent float64 // 0..1, clamped when rendered
	Width   int     // total rendered width
}

func NewProgressBar(label string, percent float64, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, Width: width}
}

func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(theme.Label.Render(p.Label))
		b.WriteString(" ")
	}

	pct := min(max(p.Percent, 0), 1)
	suffix := fmt.Sprintf(" %3d%%", int(pct*100))

	cells := max(p.Width-lipgloss.Width(b.String())-len(suffix), 4)
	filled := int(float64(cells) * pct)

	b.WriteString(theme.ProgressFilled.Render(strings.Repeat(filledCell, filled)))
	b.WriteString(theme.ProgressEmpty.Render(strings.Repeat(emptyCell, cells-filled)))
	b.WriteString(theme.Label.Render(suffix))
	return b.String()
}
