package tiles

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/tile-pulse/pkg/app"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/components"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/config"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/jit"
)

// CustomTile is a user-defined tile: a template string whose placeholders
// are bound to deferred shell commands. Every refresh re-runs the
// commands, so the tile always shows live output.
type CustomTile struct {
	name     string
	title    string
	interval time.Duration
	fallback string
	tmpl     *jit.Template

	text string
	err  error
}

// NewCustom builds a tile from a [[tiles.custom]] config entry.
func NewCustom(cfg config.CustomTileConfig) (*CustomTile, error) {
	if cfg.Name == "" {
		return nil, errors.New("custom tile: name is required")
	}
	if cfg.Template == "" {
		return nil, fmt.Errorf("custom tile %q: template is required", cfg.Name)
	}

	bindings := make([]jit.Evaluable, 0, len(cfg.Commands))
	for _, line := range cfg.Commands {
		var opts []jit.ShellOption
		if cfg.Timeout.Duration > 0 {
			opts = append(opts, jit.WithTimeout(cfg.Timeout.Duration))
		}
		bindings = append(bindings, jit.NewShell(line, opts...))
	}

	title := cfg.Title
	if title == "" {
		title = cfg.Name
	}
	interval := cfg.Interval.Duration
	if interval <= 0 {
		interval = time.Minute
	}

	return &CustomTile{
		name:     cfg.Name,
		title:    title,
		interval: interval,
		fallback: cfg.Fallback,
		tmpl:     jit.NewTemplate(cfg.Template, bindings...),
	}, nil
}

func (t *CustomTile) ID() string              { return "custom:" + t.name }
func (t *CustomTile) Title() string           { return t.title }
func (t *CustomTile) Interval() time.Duration { return t.interval }

func (t *CustomTile) Refresh() tea.Cmd {
	return app.FetchCmd(t.ID(), func() (any, error) {
		out, err := t.tmpl.Render()
		if err != nil {
			if t.fallback != "" {
				return t.fallback, nil
			}
			return nil, err
		}
		return out, nil
	})
}

func (t *CustomTile) Update(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(app.TileDataEvent)
	if !ok || ev.Tile != t.ID() {
		return nil
	}
	if ev.Err != nil {
		t.err = ev.Err
		return nil
	}
	if s, ok := ev.Data.(string); ok {
		t.text = s
		t.err = nil
	}
	return nil
}

func (t *CustomTile) HandleKey(_ tea.KeyMsg) tea.Cmd { return nil }

func (t *CustomTile) View(width, height int) string {
	if t.err != nil {
		return errorView(t.err, width, height)
	}
	if t.text == "" {
		return centerMessage("running…", width, height)
	}

	var lines []string
	for _, l := range strings.Split(t.text, "\n") {
		lines = append(lines, components.Truncate(l, width, "…"))
	}
	return clampLines(lines, height)
}

func (t *CustomTile) MinSize() (int, int) { return 20, 4 }
