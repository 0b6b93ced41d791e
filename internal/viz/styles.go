package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	canvas  lipgloss.Style
	panel   lipgloss.Style
	header  lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	running lipgloss.Style
	paused  lipgloss.Style
	graph   lipgloss.Style
	help    lipgloss.Style
	bar     lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		canvas: lipgloss.NewStyle().Foreground(t.Secondary).Padding(1, 2),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(panelWidth),
		header:  lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		running: lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		paused:  lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		graph:   lipgloss.NewStyle().Foreground(t.Accent).Padding(1, 0),
		help:    lipgloss.NewStyle().Foreground(t.Muted).Italic(true).MarginTop(1),
		bar:     lipgloss.NewStyle().Foreground(t.Accent),
	}
}

// ProgressBar renders percent of width as a filled bar.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
