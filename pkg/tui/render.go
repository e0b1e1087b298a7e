// Package tui composites rendered tiles into the terminal grid.
package tui

import (
	"strings"
	"unicode/utf8"

	"gitlab.com/tinyland/lab/tile-pulse/pkg/components"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/theme"
)

// Rect is a tile's assigned area in terminal cells.
type Rect struct {
	X, Y, W, H int
}

// Cell pairs a tile's rendered content with its grid position.
type Cell struct {
	Rect
	Title   string
	Content string
	Focused bool
}

// Grid assigns n rectangles within a width x height area. Tiles flow left
// to right, top to bottom; every tile gets the same cell size, computed
// from how many columns of at least minW fit. Tiles that do not fit
// vertically are clipped by the compositor.
func Grid(n, width, height, minW, minH int) []Rect {
	if n == 0 || width <= 0 || height <= 0 {
		return nil
	}
	if minW < 2 {
		minW = 2
	}
	if minH < 2 {
		minH = 2
	}

	cols := width / minW
	if cols < 1 {
		cols = 1
	}
	if cols > n {
		cols = n
	}
	rows := (n + cols - 1) / cols

	cellW := width / cols
	cellH := height / rows
	if cellH < minH {
		cellH = minH
	}

	rects := make([]Rect, 0, n)
	for i := 0; i < n; i++ {
		col := i % cols
		row := i / cols
		rects = append(rects, Rect{
			X: col * cellW,
			Y: row * cellH,
			W: cellW,
			H: cellH,
		})
	}
	return rects
}

// RenderGrid composites the cells into a single width x height string.
// Each cell is wrapped in a bordered box with its title; the focused cell
// gets the theme's focus border color.
func RenderGrid(cells []Cell, width, height int, th theme.Theme) string {
	if len(cells) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	buf := newBuffer(width, height)
	for _, c := range cells {
		box := components.Box(c.Title, c.Content, c.W, c.H, boxStyle(th, c.Focused))
		blit(buf, box, c.X, c.Y)
	}
	return bufferString(buf)
}

// RenderExpanded renders a single cell at full size.
func RenderExpanded(c Cell, width, height int, th theme.Theme) string {
	return components.Box(c.Title, c.Content, width, height, boxStyle(th, true))
}

// RenderStatusBar renders the one-line key hint bar, padded or truncated
// to exactly width cells.
func RenderStatusBar(msg string, width int, th theme.Theme) string {
	hints := "tab:focus  enter:expand  r:refresh  t:theme  q:quit"
	if msg != "" {
		hints = msg + "  |  " + hints
	}
	if width <= 0 {
		return ""
	}
	line := components.FitLine(hints, width)
	return th.DimStyle().Render(line)
}

func boxStyle(th theme.Theme, focused bool) components.BoxStyle {
	border := th.Border
	if focused {
		border = th.BorderFocus
	}
	return components.BoxStyle{
		BorderColor: border,
		TitleColor:  th.Title,
	}
}

// --- compositing buffer ---

// The buffer holds one string per screen cell so a cell can carry its
// ANSI color escapes along with the visible character.
func newBuffer(width, height int) [][]string {
	buf := make([][]string, height)
	for y := range buf {
		row := make([]string, width)
		for x := range row {
			row[x] = " "
		}
		buf[y] = row
	}
	return buf
}

// blit writes a rendered multi-line string into the buffer at (x, y),
// clipping to the buffer boundaries. Escape sequences stay attached to
// the visible character that follows them.
func blit(buf [][]string, rendered string, x, y int) {
	if len(buf) == 0 {
		return
	}
	bufH := len(buf)
	bufW := len(buf[0])

	for dy, line := range strings.Split(rendered, "\n") {
		ry := y + dy
		if ry < 0 || ry >= bufH {
			continue
		}
		dx := 0
		pending := ""
		rest := line
		for rest != "" {
			if strings.HasPrefix(rest, "\x1b") {
				seq, tail := splitEscape(rest)
				pending += seq
				rest = tail
				continue
			}
			r, size := utf8.DecodeRuneInString(rest)
			rest = rest[size:]
			rx := x + dx
			if rx >= 0 && rx < bufW {
				buf[ry][rx] = pending + string(r)
			}
			pending = ""
			dx++
		}
		// A trailing reset belongs to the last written cell.
		if pending != "" {
			rx := x + dx - 1
			if rx >= 0 && rx < bufW {
				buf[ry][rx] += pending
			}
		}
	}
}

func bufferString(buf [][]string) string {
	lines := make([]string, len(buf))
	for i, row := range buf {
		lines[i] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}

// splitEscape splits a leading ANSI escape sequence off s.
func splitEscape(s string) (seq, rest string) {
	for i := 1; i < len(s); i++ {
		c := s[i]
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
			return s[:i+1], s[i+1:]
		}
	}
	return s, ""
}
