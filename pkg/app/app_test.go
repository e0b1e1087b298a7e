package app

import (
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// fetchTile is a placeholder variant whose Refresh actually produces a
// TileDataEvent, for exercising the in-flight bookkeeping.
type fetchTile struct {
	PlaceholderTile
	interval time.Duration
	fetches  atomic.Int64
	fail     bool
	got      []any
}

func newFetchTile(id string, interval time.Duration) *fetchTile {
	return &fetchTile{
		PlaceholderTile: PlaceholderTile{id: id, title: id},
		interval:        interval,
	}
}

func (t *fetchTile) Interval() time.Duration { return t.interval }

func (t *fetchTile) Refresh() tea.Cmd {
	return FetchCmd(t.id, func() (any, error) {
		n := t.fetches.Add(1)
		if t.fail {
			return nil, errors.New("fetch failed")
		}
		return n, nil
	})
}

func (t *fetchTile) Update(msg tea.Msg) tea.Cmd {
	if ev, ok := msg.(TileDataEvent); ok && ev.Tile == t.id && ev.Err == nil {
		t.got = append(t.got, ev.Data)
	}
	return nil
}

func newTestModel() Model {
	return NewModel(DefaultConfig(),
		NewPlaceholder("cpu", "CPU"),
		NewPlaceholder("mem", "Memory"),
		NewPlaceholder("net", "Network"),
	)
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func TestInitReturnsCmd(t *testing.T) {
	m := newTestModel()
	if m.Init() == nil {
		t.Fatal("Init() returned nil, expected a tick command")
	}
}

func TestWindowSizeUpdatesDimensions(t *testing.T) {
	m := newTestModel()
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.Width() != 120 || m.Height() != 40 {
		t.Errorf("dimensions = %dx%d, want 120x40", m.Width(), m.Height())
	}
}

func TestTabCyclesFocusForward(t *testing.T) {
	m := newTestModel()
	if m.FocusedTileID() != "cpu" {
		t.Fatalf("initial focus = %q, want cpu", m.FocusedTileID())
	}

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.FocusedTileID() != "mem" {
		t.Errorf("after Tab, focus = %q, want mem", m.FocusedTileID())
	}

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.FocusedTileID() != "cpu" {
		t.Errorf("focus should wrap to cpu, got %q", m.FocusedTileID())
	}
}

func TestShiftTabCyclesFocusBackward(t *testing.T) {
	m := newTestModel()
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.FocusedTileID() != "net" {
		t.Errorf("backward from first should wrap to net, got %q", m.FocusedTileID())
	}
}

func TestEnterTogglesExpand(t *testing.T) {
	m := newTestModel()
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.ExpandedTileID() != "cpu" {
		t.Errorf("expanded = %q, want cpu", m.ExpandedTileID())
	}

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.ExpandedTileID() != "" {
		t.Errorf("second Enter should collapse, got %q", m.ExpandedTileID())
	}
}

func TestEscCollapses(t *testing.T) {
	m := newTestModel()
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.ExpandedTileID() != "" {
		t.Errorf("Esc should collapse, got %q", m.ExpandedTileID())
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel()
	_, cmd := update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
	if msg := cmd(); msg != (tea.QuitMsg{}) {
		t.Errorf("q produced %T, want tea.QuitMsg", msg)
	}
}

func TestTickSchedulesDueTiles(t *testing.T) {
	ft := newFetchTile("disk", time.Millisecond)
	m := NewModel(DefaultConfig(), ft)

	m, cmd := update(m, TickEvent{Time: time.Now()})
	if cmd == nil {
		t.Fatal("tick should return a batch")
	}
	if !m.InFlight("disk") {
		t.Error("tile should be marked in flight after dispatch")
	}
}

func TestInFlightTileNotRedispatched(t *testing.T) {
	ft := newFetchTile("disk", time.Millisecond)
	m := NewModel(DefaultConfig(), ft)

	m, _ = update(m, TickEvent{Time: time.Now()})
	before := ft.fetches.Load()

	// A second tick while the first fetch is outstanding must not stack
	// another fetch.
	m, cmd := update(m, TickEvent{Time: time.Now().Add(time.Second)})
	if cmd != nil {
		for _, msg := range drain(cmd) {
			if _, ok := msg.(TileDataEvent); ok {
				t.Error("second tick dispatched a fetch while one was in flight")
			}
		}
	}
	if ft.fetches.Load() != before {
		t.Errorf("fetches = %d, want %d", ft.fetches.Load(), before)
	}

	// Delivering the result clears the in-flight flag.
	m, _ = update(m, TileDataEvent{Tile: "disk", Data: int64(1), At: time.Now()})
	if m.InFlight("disk") {
		t.Error("in-flight flag should clear after TileDataEvent")
	}
}

func TestTileDataEventRoutedToTile(t *testing.T) {
	ft := newFetchTile("disk", time.Hour)
	m := NewModel(DefaultConfig(), ft)

	m, _ = update(m, TileDataEvent{Tile: "disk", Data: "payload", At: time.Now()})
	if len(ft.got) != 1 || ft.got[0] != "payload" {
		t.Errorf("tile received %v", ft.got)
	}

	// Events for other tiles are not delivered to this one.
	m, _ = update(m, TileDataEvent{Tile: "other", Data: "x", At: time.Now()})
	if len(ft.got) != 1 {
		t.Errorf("tile received foreign event: %v", ft.got)
	}
	_ = m
}

func TestIntervalNotElapsedSkipsRefresh(t *testing.T) {
	ft := newFetchTile("disk", time.Hour)
	m := NewModel(DefaultConfig(), ft)

	now := time.Now()
	m, _ = update(m, TileDataEvent{Tile: "disk", Data: int64(1), At: now})
	m, _ = update(m, TickEvent{Time: now.Add(time.Second)})
	if m.InFlight("disk") {
		t.Error("tile refreshed before its interval elapsed")
	}
}

func TestFetchCmdDeliversError(t *testing.T) {
	cmd := FetchCmd("x", func() (any, error) {
		return nil, errors.New("boom")
	})
	ev, ok := cmd().(TileDataEvent)
	if !ok {
		t.Fatalf("got %T", ev)
	}
	if ev.Err == nil || ev.Data != nil {
		t.Errorf("event = %+v", ev)
	}
}

func TestViewBeforeSize(t *testing.T) {
	m := newTestModel()
	if v := m.View(); !strings.Contains(v, "loading") {
		t.Errorf("View before size = %q", v)
	}
}

func TestViewRendersTiles(t *testing.T) {
	m := newTestModel()
	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	v := m.View()
	if !strings.Contains(v, "CPU") {
		t.Error("view missing tile title")
	}
	lines := strings.Split(v, "\n")
	if len(lines) != 24 {
		t.Errorf("view height = %d, want 24", len(lines))
	}
}

func TestNewModelWithNoTiles(t *testing.T) {
	m := NewModel(DefaultConfig())
	if m.FocusedTileID() != "" {
		t.Errorf("focus = %q, want empty", m.FocusedTileID())
	}
	// Navigation on an empty model must not panic.
	m.CycleFocusForward()
	m.CycleFocusBackward()
	m.ToggleExpand()
}

// drain executes a Cmd, flattening batches into individual messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}
