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

// systemSample is one resolved observation of the machine.
type systemSample struct {
	CPU      float64 // percent 0-100
	MemPct   float64 // percent 0-100
	MemUsed  string
	MemTotal string
	Load     string
	Uptime   string
}

// SystemTile shows CPU, memory, load average, and uptime, with a CPU
// sparkline. All values are deferred commands resolved on each refresh.
type SystemTile struct {
	cfg config.SystemTileConfig

	cpu      *jit.Command
	memPct   *jit.Command
	memUsed  *jit.Command
	memTotal *jit.Command
	load     *jit.Command
	uptime   *jit.Command

	sample     *systemSample
	cpuHistory []float64
	err        error
}

// NewSystem builds a system tile from its config.
func NewSystem(cfg config.SystemTileConfig) *SystemTile {
	return &SystemTile{
		cfg:      cfg,
		cpu:      sysstat.CPUPercent(),
		memPct:   sysstat.MemoryUsedPercent(),
		memUsed:  sysstat.MemoryUsed(),
		memTotal: sysstat.MemoryTotal(),
		load:     sysstat.LoadAvg(),
		uptime:   sysstat.Uptime(),
	}
}

func (t *SystemTile) ID() string    { return "system" }
func (t *SystemTile) Title() string { return "System" }

func (t *SystemTile) Interval() time.Duration {
	if d := t.cfg.Interval.Duration; d > 0 {
		return d
	}
	return 2 * time.Second
}

func (t *SystemTile) Refresh() tea.Cmd {
	return app.FetchCmd(t.ID(), func() (any, error) {
		cpu, err := jit.Float(t.cpu)
		if err != nil {
			return nil, err
		}
		memPct, err := jit.Float(t.memPct)
		if err != nil {
			return nil, err
		}
		memUsed, err := jit.String(t.memUsed)
		if err != nil {
			return nil, err
		}
		memTotal, err := jit.String(t.memTotal)
		if err != nil {
			return nil, err
		}
		load, err := jit.String(t.load)
		if err != nil {
			return nil, err
		}
		up, err := jit.String(t.uptime)
		if err != nil {
			return nil, err
		}
		return systemSample{
			CPU:      cpu,
			MemPct:   memPct,
			MemUsed:  memUsed,
			MemTotal: memTotal,
			Load:     load,
			Uptime:   up,
		}, nil
	})
}

func (t *SystemTile) Update(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(app.TileDataEvent)
	if !ok || ev.Tile != t.ID() {
		return nil
	}
	if ev.Err != nil {
		t.err = ev.Err
		return nil
	}
	s, ok := ev.Data.(systemSample)
	if !ok {
		return nil
	}
	t.sample = &s
	t.err = nil
	t.cpuHistory = push(t.cpuHistory, s.CPU)
	return nil
}

func (t *SystemTile) HandleKey(_ tea.KeyMsg) tea.Cmd { return nil }

func (t *SystemTile) View(width, height int) string {
	if t.err != nil {
		return errorView(t.err, width, height)
	}
	if t.sample == nil {
		return centerMessage("collecting…", width, height)
	}

	th := theme.Current
	s := t.sample
	barW := width - 12
	if barW < 4 {
		barW = 4
	}

	var lines []string
	cf, ce := th.GaugeColors(s.CPU / 100)
	lines = append(lines, components.GaugeRow("cpu", s.CPU/100, 4, barW, cf, ce))
	mf, me := th.GaugeColors(s.MemPct / 100)
	lines = append(lines, components.GaugeRow("mem", s.MemPct/100, 4, barW, mf, me))
	lines = append(lines, th.DimStyle().Render(fmt.Sprintf("mem  %s / %s", s.MemUsed, s.MemTotal)))
	lines = append(lines, th.DimStyle().Render(fmt.Sprintf("load %s  up %s", s.Load, s.Uptime)))

	if height > len(lines) && len(t.cpuHistory) > 1 {
		lines = append(lines, components.Sparkline(t.cpuHistory, width, th.ChartLine))
	}
	return clampLines(lines, height)
}

func (t *SystemTile) MinSize() (int, int) { return 30, 6 }
