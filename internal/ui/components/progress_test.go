package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestProgressBar_KeepsWidth(t *testing.T) {
	for _, pct := range []float64{0, 0.25, 1, 1.5, -1} {
		bar := NewProgressBar("", pct, 20)
		assert.Equal(t, 20, lipgloss.Width(bar.View()), "percent %v", pct)
	}
}

func TestProgressBar_FillsProportionally(t *testing.T) {
	view := NewProgressBar("grade_1", 0.5, 41).View()
	assert.Contains(t, view, "grade_1")
	assert.Contains(t, view, " 50%")
	assert.Equal(t, 41, lipgloss.Width(view))

	assert.Equal(t, strings.Count(view, filledCell), strings.Count(view, emptyCell))
	assert.NotContains(t, NewProgressBar("", 0, 20).View(), filledCell)
	assert.Contains(t, NewProgressBar("", 1, 20).View(), "100%")
}
