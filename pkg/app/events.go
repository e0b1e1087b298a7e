// Package app provides the Bubbletea application skeleton for the tile
// panel: the event types, root model, tile interface, and navigation logic.
package app

import "time"

// TileDataEvent carries the result of a tile refresh back into the
// bubbletea update loop. Receivers type-assert Data based on Tile.
type TileDataEvent struct {
	Tile string // tile ID (e.g. "clock", "network")
	Data any    // type-asserted by the receiving tile
	Err  error  // non-nil if the refresh failed
	At   time.Time
}

// TickEvent is sent by the render ticker to trigger UI refresh and to
// schedule tile refreshes whose interval has elapsed.
type TickEvent struct {
	Time time.Time
}

// ThemeChangeEvent switches the active color theme.
type ThemeChangeEvent struct {
	Theme string
}
