package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global key bindings for the panel.
type KeyMap struct {
	Quit     key.Binding
	NextTile key.Binding
	PrevTile key.Binding
	Expand   key.Binding
	Collapse key.Binding
	Refresh  key.Binding
	Theme    key.Binding
}

// DefaultKeyMap returns the standard key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		NextTile: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tile"),
		),
		PrevTile: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tile"),
		),
		Expand: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "expand"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "collapse"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle theme"),
		),
	}
}
