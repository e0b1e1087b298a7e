package components

import (
	"strings"
)

// Rounded box-drawing characters. Tiles share a single border style; the
// theme controls its color.
const (
	boxTopLeft     = "╭"
	boxTopRight    = "╮"
	boxBottomLeft  = "╰"
	boxBottomRight = "╯"
	boxHorizontal  = "─"
	boxVertical    = "│"
)

// BoxStyle colors the frame of a tile box.
type BoxStyle struct {
	BorderColor string // hex color for the border characters
	TitleColor  string // hex color for the title text
}

// Box renders content inside a rounded border with the title embedded in
// the top edge, returning a multi-line string of exactly width x height
// cells (including the border). Content lines are truncated or padded to
// the interior width; missing lines are filled with blanks. Returns ""
// when the box is too small to draw.
func Box(title, content string, width, height int, style BoxStyle) string {
	if width < 2 || height < 2 {
		return ""
	}

	inner := width - 2
	rows := height - 2

	borderPre := ansiFg(style.BorderColor)
	titlePre := ansiFg(style.TitleColor)
	const reset = "\x1b[0m"
	wrap := func(pre, s string) string {
		if pre == "" {
			return s
		}
		return pre + s + reset
	}

	var b strings.Builder

	// Top edge: ╭─ Title ────╮
	b.WriteString(wrap(borderPre, boxTopLeft))
	fill := inner
	if title != "" && inner > 4 {
		label := " " + Truncate(title, inner-4, "…") + " "
		b.WriteString(wrap(borderPre, boxHorizontal))
		b.WriteString(wrap(titlePre, label))
		fill = inner - 1 - VisibleLen(label)
	}
	if fill > 0 {
		b.WriteString(wrap(borderPre, strings.Repeat(boxHorizontal, fill)))
	}
	b.WriteString(wrap(borderPre, boxTopRight))
	b.WriteString("\n")

	var lines []string
	if content != "" {
		lines = strings.Split(content, "\n")
	}
	for i := 0; i < rows; i++ {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		b.WriteString(wrap(borderPre, boxVertical))
		b.WriteString(FitLine(line, inner))
		b.WriteString(wrap(borderPre, boxVertical))
		b.WriteString("\n")
	}

	b.WriteString(wrap(borderPre, boxBottomLeft))
	b.WriteString(wrap(borderPre, strings.Repeat(boxHorizontal, inner)))
	b.WriteString(wrap(borderPre, boxBottomRight))

	return b.String()
}
