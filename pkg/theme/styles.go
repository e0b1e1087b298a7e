package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TitleStyle returns the lipgloss style for a tile title.
func (t Theme) TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Title)).
		Bold(true)
}

// BorderStyle returns the lipgloss style for a tile border.
func (t Theme) BorderStyle(focused bool) lipgloss.Style {
	color := t.Border
	if focused {
		color = t.BorderFocus
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(color))
}

// DimStyle returns the style for secondary text.
func (t Theme) DimStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Dim))
}

// AccentStyle returns the style for highlighted values.
func (t Theme) AccentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent))
}

// ErrorStyle returns the style for tile error text.
func (t Theme) ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.StatusError))
}

// StatusStyle returns a style colored for the given status string.
// Recognized statuses: "ok", "warn", "warning", "error", anything else
// renders as unknown.
func (t Theme) StatusStyle(status string) lipgloss.Style {
	var color string
	switch strings.ToLower(status) {
	case "ok", "healthy", "running", "online":
		color = t.StatusOK
	case "warn", "warning", "pending":
		color = t.StatusWarn
	case "error", "err", "critical", "failed", "offline":
		color = t.StatusError
	default:
		color = t.StatusUnknown
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// GaugeColors returns the filled and empty hex colors for a gauge based on
// the current ratio. Thresholds: >=0.9 critical, >=0.7 warning, else normal.
func (t Theme) GaugeColors(ratio float64) (filled, empty string) {
	empty = t.GaugeEmpty
	switch {
	case ratio >= 0.9:
		filled = t.GaugeCrit
	case ratio >= 0.7:
		filled = t.GaugeWarn
	default:
		filled = t.GaugeFilled
	}
	return filled, empty
}
