package tiles

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/tile-pulse/pkg/app"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/components"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/config"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/jit"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/sources"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/sources/hostinfo"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/sources/sysstat"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/theme"
)

// hostSample is one resolved machine-identity reading.
type hostSample struct {
	Hostname string
	Distro   string
	Kernel   string
	CPUModel string
	Platform string
}

// HostTile shows who this machine is: hostname, distribution, kernel, and
// CPU model. Identity barely changes, so the default interval is long; the
// shell-backed values still resolve fresh on every refresh.
type HostTile struct {
	cfg     config.HostTileConfig
	catalog sources.Catalog
	host    jit.Evaluable

	sample *hostSample
	err    error
}

// NewHost builds a host identity tile.
func NewHost(cfg config.HostTileConfig) *HostTile {
	return &HostTile{
		cfg:     cfg,
		catalog: hostinfo.Catalog(),
		host:    sysstat.Hostname(),
	}
}

func (t *HostTile) ID() string    { return "host" }
func (t *HostTile) Title() string { return "Host" }

func (t *HostTile) Interval() time.Duration {
	if d := t.cfg.Interval.Duration; d > 0 {
		return d
	}
	return time.Hour
}

func (t *HostTile) Refresh() tea.Cmd {
	return app.FetchCmd(t.ID(), func() (any, error) {
		hostname, err := jit.String(t.host)
		if err != nil {
			return nil, err
		}
		s := hostSample{Hostname: hostname}
		for name, dst := range map[string]*string{
			"distro":    &s.Distro,
			"kernel":    &s.Kernel,
			"cpu.model": &s.CPUModel,
			"platform":  &s.Platform,
		} {
			v, err := jit.String(t.catalog[name])
			if err != nil {
				return nil, err
			}
			*dst = v
		}
		return s, nil
	})
}

func (t *HostTile) Update(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(app.TileDataEvent)
	if !ok || ev.Tile != t.ID() {
		return nil
	}
	if ev.Err != nil {
		t.err = ev.Err
		return nil
	}
	if s, ok := ev.Data.(hostSample); ok {
		t.sample = &s
		t.err = nil
	}
	return nil
}

func (t *HostTile) HandleKey(_ tea.KeyMsg) tea.Cmd { return nil }

func (t *HostTile) View(width, height int) string {
	if t.err != nil {
		return errorView(t.err, width, height)
	}
	if t.sample == nil {
		return centerMessage("probing…", width, height)
	}

	th := theme.Current
	s := t.sample
	lines := []string{
		components.PadCenter(th.AccentStyle().Render(s.Hostname), width),
		components.PadCenter(components.Truncate(s.Distro, width, "…"), width),
		components.PadCenter(th.DimStyle().Render(components.Truncate(s.CPUModel, width, "…")), width),
		components.PadCenter(th.DimStyle().Render(s.Kernel+" · "+s.Platform), width),
	}
	return clampLines(lines, height)
}

func (t *HostTile) MinSize() (int, int) { return 28, 6 }
