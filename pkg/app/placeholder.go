package app

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// PlaceholderTile is a minimal tile that displays its ID and the
// dimensions it was rendered at. It is used for testing layout and
// navigation before real tiles are wired in.
type PlaceholderTile struct {
	id    string
	title string
}

// NewPlaceholder creates a PlaceholderTile with the given id and title.
func NewPlaceholder(id, title string) *PlaceholderTile {
	return &PlaceholderTile{id: id, title: title}
}

func (t *PlaceholderTile) ID() string    { return t.id }
func (t *PlaceholderTile) Title() string { return t.title }

// Interval returns a long interval so the placeholder rarely refreshes.
func (t *PlaceholderTile) Interval() time.Duration { return time.Hour }

// Refresh is a no-op for the placeholder tile.
func (t *PlaceholderTile) Refresh() tea.Cmd { return nil }

// Update is a no-op for the placeholder tile.
func (t *PlaceholderTile) Update(_ tea.Msg) tea.Cmd { return nil }

// HandleKey is a no-op for the placeholder tile.
func (t *PlaceholderTile) HandleKey(_ tea.KeyMsg) tea.Cmd { return nil }

// View renders the tile's title and the dimensions it was asked for,
// vertically centered.
func (t *PlaceholderTile) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	var lines []string
	topPad := (height - 2) / 2
	for i := 0; i < topPad; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, t.title)
	if height > 1 {
		lines = append(lines, fmt.Sprintf("%dx%d", width, height))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// MinSize returns the minimum dimensions for the placeholder tile.
func (t *PlaceholderTile) MinSize() (int, int) {
	return 10, 3
}
