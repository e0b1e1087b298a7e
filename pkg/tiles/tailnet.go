package tiles

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/tile-pulse/pkg/app"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/components"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/config"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/sources/tailnet"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/theme"
)

// TailnetTile shows the tailscaled backend state and peer counts, with
// the peer list when there is room.
type TailnetTile struct {
	cfg config.TailnetTileConfig
	src *tailnet.Source

	snap *tailnet.Snapshot
	err  error
}

// NewTailnet builds a tailnet tile reading through src.
func NewTailnet(cfg config.TailnetTileConfig, src *tailnet.Source) *TailnetTile {
	if src == nil {
		src = tailnet.New(tailnet.NewLocalClient(cfg.Socket))
	}
	return &TailnetTile{cfg: cfg, src: src}
}

func (t *TailnetTile) ID() string    { return "tailnet" }
func (t *TailnetTile) Title() string { return "Tailnet" }

func (t *TailnetTile) Interval() time.Duration {
	if d := t.cfg.Interval.Duration; d > 0 {
		return d
	}
	return 10 * time.Second
}

func (t *TailnetTile) Refresh() tea.Cmd {
	return app.FetchCmd(t.ID(), func() (any, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return t.src.Snapshot(ctx)
	})
}

func (t *TailnetTile) Update(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(app.TileDataEvent)
	if !ok || ev.Tile != t.ID() {
		return nil
	}
	if ev.Err != nil {
		t.err = ev.Err
		return nil
	}
	if s, ok := ev.Data.(*tailnet.Snapshot); ok {
		t.snap = s
		t.err = nil
	}
	return nil
}

func (t *TailnetTile) HandleKey(_ tea.KeyMsg) tea.Cmd { return nil }

func (t *TailnetTile) View(width, height int) string {
	if t.err != nil {
		return errorView(t.err, width, height)
	}
	if t.snap == nil {
		return centerMessage("connecting…", width, height)
	}

	th := theme.Current
	s := t.snap

	state := s.BackendState
	status := "unknown"
	if state == "Running" {
		status = "ok"
	} else if state == "Stopped" || state == "NeedsLogin" {
		status = "error"
	}

	lines := []string{
		fmt.Sprintf("%s  %s", th.StatusStyle(status).Render(state), th.DimStyle().Render(s.SelfHostname)),
		fmt.Sprintf("peers %d/%d online", s.OnlinePeers, s.TotalPeers),
	}

	// Peer rows fill whatever space remains.
	for _, p := range s.Peers {
		if len(lines) >= height {
			break
		}
		mark := th.StatusStyle("error").Render("●")
		if p.Online {
			mark = th.StatusStyle("ok").Render("●")
		}
		row := fmt.Sprintf("%s %s", mark, components.Truncate(p.Hostname, width-4, "…"))
		if p.ExitNode {
			row += " *"
		}
		lines = append(lines, row)
	}
	return clampLines(lines, height)
}

func (t *TailnetTile) MinSize() (int, int) { return 28, 5 }
