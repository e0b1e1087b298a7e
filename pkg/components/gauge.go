package components

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Block characters for sub-cell precision (8 levels per cell).
var gaugeBlocks = [9]rune{
	' ',      // 0/8 empty
	'▏', // 1/8 ▏
	'▎', // 2/8 ▎
	'▍', // 3/8 ▍
	'▌', // 4/8 ▌
	'▋', // 5/8 ▋
	'▊', // 6/8 ▊
	'▉', // 7/8 ▉
	'█', // 8/8 █
}

// Gauge renders a horizontal bar at the given cell width with sub-cell
// precision. ratio is clamped to [0, 1]. filled and empty are hex colors;
// either may be empty to skip coloring.
func Gauge(ratio float64, width int, filled, empty string) string {
	if width <= 0 {
		return ""
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	totalUnits := width * 8
	filledUnits := int(math.Round(ratio * float64(totalUnits)))

	fullCells := filledUnits / 8
	partialEighths := filledUnits % 8
	emptyCells := width - fullCells
	if partialEighths > 0 {
		emptyCells--
	}
	if emptyCells < 0 {
		emptyCells = 0
	}

	fgFill := ansiFg(filled)
	fgEmpty := ansiFg(empty)
	const reset = "\x1b[0m"

	var b strings.Builder
	if fullCells > 0 || partialEighths > 0 {
		b.WriteString(fgFill)
		b.WriteString(strings.Repeat(string(gaugeBlocks[8]), fullCells))
		if partialEighths > 0 {
			b.WriteRune(gaugeBlocks[partialEighths])
		}
		if fgFill != "" {
			b.WriteString(reset)
		}
	}
	if emptyCells > 0 {
		b.WriteString(fgEmpty)
		b.WriteString(strings.Repeat(string(gaugeBlocks[1]), emptyCells))
		if fgEmpty != "" {
			b.WriteString(reset)
		}
	}
	return b.String()
}

// GaugeRow renders "label bar pct%" with the label padded to labelWidth.
func GaugeRow(label string, ratio float64, labelWidth, barWidth int, filled, empty string) string {
	pct := int(math.Round(ratio * 100))
	return fmt.Sprintf("%s %s %3d%%", PadRight(label, labelWidth), Gauge(ratio, barWidth, filled, empty), pct)
}

// ansiFg returns an ANSI true-color foreground escape from a hex color
// like "#ff5500". Returns "" for empty or malformed input.
func ansiFg(hex string) string {
	r, g, b, ok := parseHexColor(hex)
	if !ok {
		return ""
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
}

// parseHexColor parses "#RRGGBB" or "RRGGBB" into r, g, b components.
func parseHexColor(hex string) (r, g, b uint8, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	rv, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return 0, 0, 0, false
	}
	gv, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return 0, 0, 0, false
	}
	bv, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(rv), uint8(gv), uint8(bv), true
}
