// ABOUTME: Share bars for tier allocations and service-mix percentages
// ABOUTME: Renders fixed-width filled bars with an optional percent label

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ShareBarConfig holds configuration for a share bar
type ShareBarConfig struct {
	Width       int
	FilledColor lipgloss.Color
	EmptyColor  lipgloss.Color
}

// DefaultShareBarConfig returns sensible defaults
func DefaultShareBarConfig() ShareBarConfig {
	return ShareBarConfig{
		Width:       20,
		FilledColor: lipgloss.Color("#7C3AED"), // Purple
		EmptyColor:  lipgloss.Color("#374151"), // Dark gray
	}
}

// filledCells returns how many of width cells percent covers
func filledCells(percent float64, width int) int {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return int(percent / 100.0 * float64(width))
}

// ShareBar renders percent of the configured width as a filled bar
func ShareBar(percent float64, config ShareBarConfig) string {
	if config.Width <= 0 {
		config.Width = 20
	}

	filled := filledCells(percent, config.Width)

	var bar strings.Builder
	bar.WriteString("[")
	bar.WriteString(lipgloss.NewStyle().Foreground(config.FilledColor).Render(strings.Repeat("█", filled)))
	bar.WriteString(lipgloss.NewStyle().Foreground(config.EmptyColor).Render(strings.Repeat("░", config.Width-filled)))
	bar.WriteString("]")
	return bar.String()
}

// ShareBarWithLabel renders a share bar followed by its percentage
func ShareBarWithLabel(percent float64, config ShareBarConfig) string {
	return fmt.Sprintf("%s %3.0f%%", ShareBar(percent, config), percent)
}
