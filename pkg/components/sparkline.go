package components

import (
	"math"
	"strings"
)

// Sparkline block characters: 8 vertical levels per cell.
var sparkBlocks = [8]rune{
	'▁', // 1/8 ▁
	'▂', // 2/8 ▂
	'▃', // 3/8 ▃
	'▄', // 4/8 ▄
	'▅', // 5/8 ▅
	'▆', // 6/8 ▆
	'▇', // 7/8 ▇
	'█', // 8/8 █
}

// Sparkline renders the last width points of data as a row of block
// characters, auto-scaled to the visible range. color is a hex color or
// empty for no coloring.
func Sparkline(data []float64, width int, color string) string {
	return SparklineRange(data, width, color, nil, nil)
}

// SparklineRange is Sparkline with an optionally pinned Y range. A nil
// bound auto-scales to the visible data.
func SparklineRange(data []float64, width int, color string, minY, maxY *float64) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}

	points := data
	if len(points) > width {
		points = points[len(points)-width:]
	}

	lo, hi := autoRange(points)
	if minY != nil {
		lo = *minY
	}
	if maxY != nil {
		hi = *maxY
	}

	var b strings.Builder
	span := hi - lo
	for _, v := range points {
		var idx int
		if span <= 0 {
			// All values equal: render at mid-height.
			idx = 3
		} else {
			n := (v - lo) / span
			if n < 0 {
				n = 0
			}
			if n > 1 {
				n = 1
			}
			idx = int(math.Round(n * 7))
		}
		b.WriteRune(sparkBlocks[idx])
	}

	fg := ansiFg(color)
	if fg == "" {
		return b.String()
	}
	return fg + b.String() + "\x1b[0m"
}

func autoRange(data []float64) (lo, hi float64) {
	lo, hi = data[0], data[0]
	for _, v := range data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
