package tiles

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/tile-pulse/pkg/app"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/components"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/config"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/jit"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/sources/netstat"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/theme"
)

// netSample is one resolved throughput observation in bytes per second.
type netSample struct {
	Recv float64
	Sent float64
}

// NetworkTile shows receive/send throughput with sparklines. The rates are
// stateful delta commands: each refresh reports bytes moved since the
// previous one, divided by the refresh interval.
type NetworkTile struct {
	cfg config.NetworkTileConfig

	recv *jit.DeltaCommand
	sent *jit.DeltaCommand

	sample      *netSample
	recvHistory []float64
	sentHistory []float64
	err         error
}

// NewNetwork builds a network tile from its config. Constructing the rate
// commands takes an eager first reading of the interface counters; an
// unreadable counter surfaces here rather than at first render.
func NewNetwork(cfg config.NetworkTileConfig) (*NetworkTile, error) {
	interval := cfg.Interval.Duration
	if interval <= 0 {
		interval = 2 * time.Second
	}
	recv, err := netstat.RecvRate(interval)
	if err != nil {
		return nil, fmt.Errorf("network tile: %w", err)
	}
	sent, err := netstat.SentRate(interval)
	if err != nil {
		return nil, fmt.Errorf("network tile: %w", err)
	}
	return &NetworkTile{cfg: cfg, recv: recv, sent: sent}, nil
}

func (t *NetworkTile) ID() string    { return "network" }
func (t *NetworkTile) Title() string { return "Network" }

func (t *NetworkTile) Interval() time.Duration {
	if d := t.cfg.Interval.Duration; d > 0 {
		return d
	}
	return 2 * time.Second
}

func (t *NetworkTile) Refresh() tea.Cmd {
	return app.FetchCmd(t.ID(), func() (any, error) {
		recv, err := jit.Float(t.recv)
		if err != nil {
			return nil, err
		}
		sent, err := jit.Float(t.sent)
		if err != nil {
			return nil, err
		}
		return netSample{Recv: recv, Sent: sent}, nil
	})
}

func (t *NetworkTile) Update(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(app.TileDataEvent)
	if !ok || ev.Tile != t.ID() {
		return nil
	}
	if ev.Err != nil {
		t.err = ev.Err
		return nil
	}
	s, ok := ev.Data.(netSample)
	if !ok {
		return nil
	}
	t.sample = &s
	t.err = nil
	t.recvHistory = push(t.recvHistory, s.Recv)
	t.sentHistory = push(t.sentHistory, s.Sent)
	return nil
}

func (t *NetworkTile) HandleKey(_ tea.KeyMsg) tea.Cmd { return nil }

func (t *NetworkTile) View(width, height int) string {
	if t.err != nil {
		return errorView(t.err, width, height)
	}
	if t.sample == nil {
		return centerMessage("collecting…", width, height)
	}

	th := theme.Current
	sparkW := width - 14
	if sparkW < 4 {
		sparkW = 4
	}

	lines := []string{
		fmt.Sprintf("%s %s",
			components.PadRight("↓ "+rate(t.sample.Recv), 13),
			components.Sparkline(t.recvHistory, sparkW, th.ChartLine)),
		fmt.Sprintf("%s %s",
			components.PadRight("↑ "+rate(t.sample.Sent), 13),
			components.Sparkline(t.sentHistory, sparkW, th.ChartFill)),
	}
	return clampLines(lines, height)
}

func (t *NetworkTile) MinSize() (int, int) { return 30, 4 }
