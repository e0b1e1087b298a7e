package tiles

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/tile-pulse/pkg/app"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/components"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/config"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/jit"
)

// ClockTile shows the current time and date. The time strings are deferred
// values, formatted fresh on every refresh.
type ClockTile struct {
	cfg  config.ClockTileConfig
	tmpl *jit.Template

	text string
	err  error
}

// NewClock builds a clock tile from its config.
func NewClock(cfg config.ClockTileConfig) *ClockTile {
	if cfg.Format == "" {
		cfg.Format = "15:04:05"
	}

	timeCmd := jit.MustCommand(jit.Thunk(func() (any, error) {
		return time.Now().Format(cfg.Format), nil
	}))

	tmpl := jit.NewTemplate("{}", timeCmd)
	if cfg.DateFormat != "" {
		dateCmd := jit.MustCommand(jit.Thunk(func() (any, error) {
			return time.Now().Format(cfg.DateFormat), nil
		}))
		// Extend never fails for binding-backed templates.
		_ = tmpl.ExtendLine("{}", dateCmd)
	}

	return &ClockTile{cfg: cfg, tmpl: tmpl}
}

func (t *ClockTile) ID() string    { return "clock" }
func (t *ClockTile) Title() string { return "Clock" }

func (t *ClockTile) Interval() time.Duration {
	if d := t.cfg.Interval.Duration; d > 0 {
		return d
	}
	return time.Second
}

func (t *ClockTile) Refresh() tea.Cmd {
	return app.FetchCmd(t.ID(), func() (any, error) {
		return t.tmpl.Render()
	})
}

func (t *ClockTile) Update(msg tea.Msg) tea.Cmd {
	if ev, ok := msg.(app.TileDataEvent); ok && ev.Tile == t.ID() {
		if ev.Err != nil {
			t.err = ev.Err
			return nil
		}
		if s, ok := ev.Data.(string); ok {
			t.text = s
			t.err = nil
		}
	}
	return nil
}

func (t *ClockTile) HandleKey(_ tea.KeyMsg) tea.Cmd { return nil }

func (t *ClockTile) View(width, height int) string {
	if t.err != nil {
		return errorView(t.err, width, height)
	}
	if t.text == "" {
		return centerMessage("…", width, height)
	}

	lines := []string{}
	parts := strings.Split(t.text, "\n")
	topPad := (height - len(parts)) / 2
	for i := 0; i < topPad; i++ {
		lines = append(lines, "")
	}
	for _, p := range parts {
		lines = append(lines, components.PadCenter(p, width))
	}
	return clampLines(lines, height)
}

func (t *ClockTile) MinSize() (int, int) { return 24, 4 }
