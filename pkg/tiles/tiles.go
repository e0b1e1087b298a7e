// Package tiles provides the concrete tile implementations for the panel.
// Each tile implements the app.Tile interface, owns the deferred value
// pipelines it renders, and receives resolved data via TileDataEvent
// messages.
package tiles

import (
	"fmt"
	"strings"

	"gitlab.com/tinyland/lab/tile-pulse/pkg/components"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/sources"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/theme"
)

// maxHistory bounds the sparkline rolling buffers.
const maxHistory = 60

// centerMessage renders msg centered in a width x height area.
func centerMessage(msg string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	var lines []string
	topPad := (height - 1) / 2
	for i := 0; i < topPad; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, components.PadCenter(components.Truncate(msg, width, "…"), width))
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines[:height], "\n")
}

// errorView renders a refresh error dimmed and centered.
func errorView(err error, width, height int) string {
	msg := theme.Current.ErrorStyle().Render(components.Truncate(err.Error(), width, "…"))
	return centerMessage(msg, width, height)
}

// push appends v to a rolling history capped at maxHistory.
func push(hist []float64, v float64) []float64 {
	hist = append(hist, v)
	if len(hist) > maxHistory {
		hist = hist[len(hist)-maxHistory:]
	}
	return hist
}

// rate formats a bytes-per-second figure like "1.5MiB/s".
func rate(bytesPerSec float64) string {
	if bytesPerSec < 0 {
		bytesPerSec = 0
	}
	h, err := sources.HumanBytes(bytesPerSec)
	if err != nil {
		return fmt.Sprintf("%.0fB/s", bytesPerSec)
	}
	return fmt.Sprintf("%v/s", h)
}

// clampLines truncates or pads lines to exactly height entries.
func clampLines(lines []string, height int) string {
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
