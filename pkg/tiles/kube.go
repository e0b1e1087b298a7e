package tiles

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/tile-pulse/pkg/app"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/config"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/sources/kubeinfo"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/theme"
)

// KubeTile shows cluster node readiness and pod phase counts.
type KubeTile struct {
	cfg config.KubeTileConfig
	src *kubeinfo.Source

	snap *kubeinfo.Snapshot
	err  error
}

// NewKube builds a cluster tile reading through src. Pass nil to connect
// with the tile's kubeconfig settings.
func NewKube(cfg config.KubeTileConfig, src *kubeinfo.Source) (*KubeTile, error) {
	if src == nil {
		client, err := kubeinfo.NewClient(cfg.Kubeconfig, cfg.Context)
		if err != nil {
			return nil, fmt.Errorf("kube tile: %w", err)
		}
		src = kubeinfo.New(client, cfg.Namespace)
	}
	return &KubeTile{cfg: cfg, src: src}, nil
}

func (t *KubeTile) ID() string    { return "kube" }
func (t *KubeTile) Title() string { return "Cluster" }

func (t *KubeTile) Interval() time.Duration {
	if d := t.cfg.Interval.Duration; d > 0 {
		return d
	}
	return 30 * time.Second
}

func (t *KubeTile) Refresh() tea.Cmd {
	return app.FetchCmd(t.ID(), func() (any, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return t.src.Snapshot(ctx)
	})
}

func (t *KubeTile) Update(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(app.TileDataEvent)
	if !ok || ev.Tile != t.ID() {
		return nil
	}
	if ev.Err != nil {
		t.err = ev.Err
		return nil
	}
	if s, ok := ev.Data.(*kubeinfo.Snapshot); ok {
		t.snap = s
		t.err = nil
	}
	return nil
}

func (t *KubeTile) HandleKey(_ tea.KeyMsg) tea.Cmd { return nil }

func (t *KubeTile) View(width, height int) string {
	if t.err != nil {
		return errorView(t.err, width, height)
	}
	if t.snap == nil {
		return centerMessage("connecting…", width, height)
	}

	th := theme.Current
	s := t.snap

	nodeStatus := "ok"
	if s.NodesReady < s.NodesTotal {
		nodeStatus = "warn"
	}
	podStatus := "ok"
	if s.PodsFailed > 0 {
		podStatus = "error"
	} else if s.PodsPending > 0 {
		podStatus = "warn"
	}

	lines := []string{
		fmt.Sprintf("nodes %s",
			th.StatusStyle(nodeStatus).Render(fmt.Sprintf("%d/%d ready", s.NodesReady, s.NodesTotal))),
		fmt.Sprintf("pods  %s",
			th.StatusStyle(podStatus).Render(fmt.Sprintf("%d running", s.PodsRunning))),
	}
	if s.PodsPending > 0 || s.PodsFailed > 0 {
		lines = append(lines, th.DimStyle().Render(
			fmt.Sprintf("      %d pending, %d failed", s.PodsPending, s.PodsFailed)))
	}
	return clampLines(lines, height)
}

func (t *KubeTile) MinSize() (int, int) { return 26, 4 }
