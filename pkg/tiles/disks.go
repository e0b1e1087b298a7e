package tiles

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/tile-pulse/pkg/app"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/components"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/config"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/jit"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/sources/sysstat"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/theme"
)

// diskStat is one mount's resolved usage.
type diskStat struct {
	Mount   string
	UsedPct float64
	Used    string
	Total   string
}

// DisksTile shows per-mount disk usage gauges. The mount list comes from
// the config, or from the physical partitions when unset.
type DisksTile struct {
	cfg    config.DisksTileConfig
	mounts *jit.Command

	stats []diskStat
	err   error
}

// NewDisks builds a disks tile from its config.
func NewDisks(cfg config.DisksTileConfig) *DisksTile {
	return &DisksTile{
		cfg:    cfg,
		mounts: sysstat.Mountpoints(),
	}
}

func (t *DisksTile) ID() string    { return "disks" }
func (t *DisksTile) Title() string { return "Disks" }

func (t *DisksTile) Interval() time.Duration {
	if d := t.cfg.Interval.Duration; d > 0 {
		return d
	}
	return 30 * time.Second
}

func (t *DisksTile) Refresh() tea.Cmd {
	return app.FetchCmd(t.ID(), func() (any, error) {
		mounts := t.cfg.Mounts
		if len(mounts) == 0 {
			seq, err := jit.Seq(t.mounts)
			if err != nil {
				return nil, err
			}
			for _, m := range seq {
				if s, ok := m.(string); ok {
					mounts = append(mounts, s)
				}
			}
		}

		stats := make([]diskStat, 0, len(mounts))
		for _, m := range mounts {
			pct, err := jit.Float(sysstat.DiskUsedPercent(m))
			if err != nil {
				return nil, fmt.Errorf("disk %s: %w", m, err)
			}
			used, err := jit.String(sysstat.DiskUsed(m))
			if err != nil {
				return nil, fmt.Errorf("disk %s: %w", m, err)
			}
			total, err := jit.String(sysstat.DiskTotal(m))
			if err != nil {
				return nil, fmt.Errorf("disk %s: %w", m, err)
			}
			stats = append(stats, diskStat{Mount: m, UsedPct: pct, Used: used, Total: total})
		}
		return stats, nil
	})
}

func (t *DisksTile) Update(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(app.TileDataEvent)
	if !ok || ev.Tile != t.ID() {
		return nil
	}
	if ev.Err != nil {
		t.err = ev.Err
		return nil
	}
	if stats, ok := ev.Data.([]diskStat); ok {
		t.stats = stats
		t.err = nil
	}
	return nil
}

func (t *DisksTile) HandleKey(_ tea.KeyMsg) tea.Cmd { return nil }

func (t *DisksTile) View(width, height int) string {
	if t.err != nil {
		return errorView(t.err, width, height)
	}
	if len(t.stats) == 0 {
		return centerMessage("collecting…", width, height)
	}

	th := theme.Current
	labelW := 0
	for _, s := range t.stats {
		if len(s.Mount) > labelW {
			labelW = len(s.Mount)
		}
	}
	if labelW > 12 {
		labelW = 12
	}
	barW := width - labelW - 8
	if barW < 4 {
		barW = 4
	}

	var lines []string
	for _, s := range t.stats {
		f, e := th.GaugeColors(s.UsedPct / 100)
		label := components.Truncate(s.Mount, labelW, "…")
		lines = append(lines, components.GaugeRow(label, s.UsedPct/100, labelW, barW, f, e))
		if len(lines) >= height {
			break
		}
	}
	return clampLines(lines, height)
}

func (t *DisksTile) MinSize() (int, int) { return 30, 4 }
