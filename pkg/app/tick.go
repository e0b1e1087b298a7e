package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickCmd returns a bubbletea Cmd that sends a TickEvent after the given
// duration. This drives the periodic UI refresh cycle.
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickEvent{Time: t}
	})
}

// FetchCmd returns a Cmd that runs fetchFn in a goroutine and delivers the
// result as a TileDataEvent for the named tile. If fetchFn returns an
// error, the event's Err field is set and Data is nil.
func FetchCmd(tile string, fetchFn func() (any, error)) tea.Cmd {
	return func() tea.Msg {
		data, err := fetchFn()
		if err != nil {
			return TileDataEvent{Tile: tile, Err: err, At: time.Now()}
		}
		return TileDataEvent{Tile: tile, Data: data, At: time.Now()}
	}
}
