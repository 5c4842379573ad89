package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/estudos/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar. Percent is a fraction
// in [0, 1].
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
	Fill        lipgloss.Style
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
		Fill:        theme.ProgressFilled,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 7 // "  100%"
	}

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	empty := barWidth - filled

	result += p.Fill.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty))

	if p.ShowPercent {
		result += theme.Subtitle.Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}

	return result
}

// ChartRow is one bar of a BarChart, with Value in [0, 100].
type ChartRow struct {
	Label string
	Value float64
}

// BarChart renders horizontal bars with aligned labels.
func BarChart(rows []ChartRow, width int) string {
	labelWidth := 0
	for _, r := range rows {
		if w := lipgloss.Width(r.Label); w > labelWidth {
			labelWidth = w
		}
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		label := r.Label + strings.Repeat(" ", labelWidth-lipgloss.Width(r.Label))
		bar := ProgressBar{
			Label:   label,
			Percent: r.Value / 100,
			Width:   width - 8,
			Fill:    theme.ChartBar,
		}
		lines = append(lines, bar.View()+theme.Score(r.Value).Render(fmt.Sprintf(" %5.1f%%", r.Value)))
	}
	return strings.Join(lines, "\n")
}
