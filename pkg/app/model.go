package app

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/tile-pulse/pkg/theme"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/tui"
)

// Tile is the interface every panel tile implements. Tiles receive data
// through TileDataEvent messages and render into the area the layout
// assigns them.
type Tile interface {
	// ID returns the tile's unique identifier.
	ID() string

	// Title returns the display name shown in the tile border.
	Title() string

	// Interval returns how often the tile's data should be refreshed.
	Interval() time.Duration

	// Refresh returns a Cmd that fetches fresh data and delivers it as a
	// TileDataEvent. The model guarantees at most one outstanding Refresh
	// per tile.
	Refresh() tea.Cmd

	// Update handles messages directed at this tile.
	Update(msg tea.Msg) tea.Cmd

	// HandleKey processes key events when this tile has focus.
	HandleKey(key tea.KeyMsg) tea.Cmd

	// View renders the tile content into the given interior dimensions.
	View(width, height int) string

	// MinSize returns the minimum outer width and height for the tile.
	MinSize() (int, int)
}

// Config holds the model's runtime settings.
type Config struct {
	// Refresh is the UI tick interval.
	Refresh time.Duration

	// Theme names the active color theme.
	Theme string
}

// DefaultConfig returns the model defaults: 1s tick, tokyo-night theme.
func DefaultConfig() Config {
	return Config{
		Refresh: time.Second,
		Theme:   "tokyo-night",
	}
}

// Model is the root bubbletea model: it owns the tiles, drives their
// refresh schedule, and routes key and data events.
type Model struct {
	cfg   Config
	tiles map[string]Tile
	order []string

	focused  string
	expanded string

	width  int
	height int

	// inflight tracks tiles with an outstanding Refresh so a slow fetch
	// is never stacked behind a second one.
	inflight    map[string]bool
	lastRefresh map[string]time.Time

	keys KeyMap
}

// NewModel creates a Model managing the given tiles. Focus starts on the
// first tile.
func NewModel(cfg Config, tiles ...Tile) Model {
	if cfg.Refresh <= 0 {
		cfg.Refresh = time.Second
	}
	m := Model{
		cfg:         cfg,
		tiles:       make(map[string]Tile, len(tiles)),
		inflight:    make(map[string]bool, len(tiles)),
		lastRefresh: make(map[string]time.Time, len(tiles)),
		keys:        DefaultKeyMap(),
	}
	for _, t := range tiles {
		m.tiles[t.ID()] = t
		m.order = append(m.order, t.ID())
	}
	if len(m.order) > 0 {
		m.focused = m.order[0]
	}
	theme.SetCurrent(cfg.Theme)
	return m
}

// Init kicks off the tick loop and an initial refresh of every tile.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{TickCmd(m.cfg.Refresh)}
	for _, id := range m.order {
		if cmd := m.tiles[id].Refresh(); cmd != nil {
			m.inflight[id] = true
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickEvent:
		cmds := m.refreshDue(msg.Time)
		cmds = append(cmds, TickCmd(m.cfg.Refresh))
		return m, tea.Batch(cmds...)

	case TileDataEvent:
		m.inflight[msg.Tile] = false
		m.lastRefresh[msg.Tile] = msg.At
		if t, ok := m.tiles[msg.Tile]; ok {
			return m, t.Update(msg)
		}
		return m, nil

	case ThemeChangeEvent:
		theme.SetCurrent(msg.Theme)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "loading..."
	}

	th := theme.Current
	gridH := m.height - 1 // bottom row is the status bar

	var body string
	if m.expanded != "" {
		t := m.tiles[m.expanded]
		body = tui.RenderExpanded(tui.Cell{
			Title:   t.Title(),
			Content: t.View(max(m.width-2, 1), max(gridH-2, 1)),
			Focused: true,
		}, m.width, gridH, th)
	} else {
		body = tui.RenderGrid(m.cells(gridH), m.width, gridH, th)
	}

	return body + "\n" + tui.RenderStatusBar("", m.width, th)
}

// cells lays the tiles out and renders each one into its assigned area.
func (m Model) cells(gridH int) []tui.Cell {
	minW, minH := 20, 5
	for _, id := range m.order {
		w, h := m.tiles[id].MinSize()
		if w > minW {
			minW = w
		}
		if h > minH {
			minH = h
		}
	}

	rects := tui.Grid(len(m.order), m.width, gridH, minW, minH)
	cells := make([]tui.Cell, 0, len(rects))
	for i, r := range rects {
		id := m.order[i]
		t := m.tiles[id]
		cells = append(cells, tui.Cell{
			Rect:    r,
			Title:   t.Title(),
			Content: t.View(max(r.W-2, 1), max(r.H-2, 1)),
			Focused: id == m.focused && m.expanded == "",
		})
	}
	return cells
}

// refreshDue dispatches Refresh for every tile whose interval has elapsed
// and that has no refresh already in flight.
func (m Model) refreshDue(now time.Time) []tea.Cmd {
	var cmds []tea.Cmd
	for _, id := range m.order {
		if m.inflight[id] {
			continue
		}
		t := m.tiles[id]
		if now.Sub(m.lastRefresh[id]) < t.Interval() {
			continue
		}
		if cmd := t.Refresh(); cmd != nil {
			m.inflight[id] = true
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextTile):
		m.CycleFocusForward()
		return m, nil

	case key.Matches(msg, m.keys.PrevTile):
		m.CycleFocusBackward()
		return m, nil

	case key.Matches(msg, m.keys.Expand):
		m.ToggleExpand()
		return m, nil

	case key.Matches(msg, m.keys.Collapse):
		m.expanded = ""
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.focused != "" && !m.inflight[m.focused] {
			if cmd := m.tiles[m.focused].Refresh(); cmd != nil {
				m.inflight[m.focused] = true
				return m, cmd
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		m.cfg.Theme = nextTheme(m.cfg.Theme)
		theme.SetCurrent(m.cfg.Theme)
		return m, nil
	}

	if m.focused != "" {
		return m, m.tiles[m.focused].HandleKey(msg)
	}
	return m, nil
}

// nextTheme returns the theme after name in alphabetical registry order,
// wrapping around.
func nextTheme(name string) string {
	names := theme.Names()
	if len(names) == 0 {
		return name
	}
	for i, n := range names {
		if n == name {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

// --- accessors used by the renderer and tests ---

// Width returns the last known terminal width.
func (m Model) Width() int { return m.width }

// Height returns the last known terminal height.
func (m Model) Height() int { return m.height }

// FocusedTileID returns the ID of the focused tile.
func (m Model) FocusedTileID() string { return m.focused }

// ExpandedTileID returns the ID of the expanded tile, or "".
func (m Model) ExpandedTileID() string { return m.expanded }

// InFlight reports whether the named tile has an outstanding refresh.
func (m Model) InFlight(id string) bool { return m.inflight[id] }
