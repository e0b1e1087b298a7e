package tiles

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/tile-pulse/pkg/app"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/components"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/config"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/jit"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/sources/webstat"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/theme"
)

// ipSample is one resolved public-IP observation.
type ipSample struct {
	IP      string
	City    string
	Country string
	ISP     string
}

// IPInfoTile shows the public IP and its geolocation.
type IPInfoTile struct {
	cfg config.IPInfoTileConfig

	ip      jit.Evaluable
	city    jit.Evaluable
	country jit.Evaluable
	isp     jit.Evaluable

	sample *ipSample
	err    error
}

// NewIPInfo builds a public-IP tile. client may be customized for tests.
func NewIPInfo(cfg config.IPInfoTileConfig, client *webstat.Client) *IPInfoTile {
	if client == nil {
		client = webstat.NewClient()
	}
	return &IPInfoTile{
		cfg:     cfg,
		ip:      client.IPField("query"),
		city:    client.IPField("city"),
		country: client.IPField("country"),
		isp:     client.IPField("isp"),
	}
}

func (t *IPInfoTile) ID() string    { return "ipinfo" }
func (t *IPInfoTile) Title() string { return "Public IP" }

func (t *IPInfoTile) Interval() time.Duration {
	if d := t.cfg.Interval.Duration; d > 0 {
		return d
	}
	return 30 * time.Minute
}

func (t *IPInfoTile) Refresh() tea.Cmd {
	return app.FetchCmd(t.ID(), func() (any, error) {
		ip, err := jit.String(t.ip)
		if err != nil {
			return nil, err
		}
		city, err := jit.String(t.city)
		if err != nil {
			return nil, err
		}
		country, err := jit.String(t.country)
		if err != nil {
			return nil, err
		}
		isp, err := jit.String(t.isp)
		if err != nil {
			return nil, err
		}
		return ipSample{IP: ip, City: city, Country: country, ISP: isp}, nil
	})
}

func (t *IPInfoTile) Update(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(app.TileDataEvent)
	if !ok || ev.Tile != t.ID() {
		return nil
	}
	if ev.Err != nil {
		t.err = ev.Err
		return nil
	}
	if s, ok := ev.Data.(ipSample); ok {
		t.sample = &s
		t.err = nil
	}
	return nil
}

func (t *IPInfoTile) HandleKey(_ tea.KeyMsg) tea.Cmd { return nil }

func (t *IPInfoTile) View(width, height int) string {
	if t.err != nil {
		return errorView(t.err, width, height)
	}
	if t.sample == nil {
		return centerMessage("fetching…", width, height)
	}

	th := theme.Current
	s := t.sample
	lines := []string{
		components.PadCenter(th.AccentStyle().Render(s.IP), width),
		components.PadCenter(s.City+", "+s.Country, width),
		components.PadCenter(th.DimStyle().Render(components.Truncate(s.ISP, width, "…")), width),
	}
	return clampLines(lines, height)
}

func (t *IPInfoTile) MinSize() (int, int) { return 26, 5 }
