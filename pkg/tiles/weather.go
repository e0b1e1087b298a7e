package tiles

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/tile-pulse/pkg/app"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/components"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/config"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/jit"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/sources/webstat"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/theme"
)

// weatherSample is one resolved forecast observation.
type weatherSample struct {
	TempC float64
	Code  int
	Wind  float64
	Desc  string
	Icon  image.Image
}

// IconRenderer draws an image into a cell grid. The terminal image
// renderer satisfies it; tests substitute a stub.
type IconRenderer interface {
	Render(img image.Image, cols, rows int) (string, error)
}

// WeatherTile shows the current conditions from the Open-Meteo API. When
// no coordinates are configured the location is resolved once from IP
// geolocation on the first refresh.
type WeatherTile struct {
	cfg    config.WeatherTileConfig
	client *webstat.Client

	locOnce sync.Once
	locErr  error
	temp    *jit.Command
	code    *jit.Command
	wind    *jit.Command

	icon IconRenderer

	sample *weatherSample
	err    error
}

// NewWeather builds a weather tile. client may be customized for tests.
func NewWeather(cfg config.WeatherTileConfig, client *webstat.Client) *WeatherTile {
	if client == nil {
		client = webstat.NewClient()
	}
	return &WeatherTile{cfg: cfg, client: client}
}

// SetIconRenderer enables condition-icon output. Without a renderer (or
// with show_icon off) the tile stays text only.
func (t *WeatherTile) SetIconRenderer(r IconRenderer) { t.icon = r }

func (t *WeatherTile) ID() string    { return "weather" }
func (t *WeatherTile) Title() string { return "Weather" }

func (t *WeatherTile) Interval() time.Duration {
	if d := t.cfg.Interval.Duration; d > 0 {
		return d
	}
	return 15 * time.Minute
}

// ensurePipelines resolves coordinates (if needed) and builds the deferred
// forecast commands. Runs once; a geolocation failure is sticky.
func (t *WeatherTile) ensurePipelines() error {
	t.locOnce.Do(func() {
		lat, lon := t.cfg.Latitude, t.cfg.Longitude
		if lat == 0 && lon == 0 {
			var err error
			lat, err = jit.Float(t.client.IPField("lat"))
			if err != nil {
				t.locErr = fmt.Errorf("geolocate: %w", err)
				return
			}
			lon, err = jit.Float(t.client.IPField("lon"))
			if err != nil {
				t.locErr = fmt.Errorf("geolocate: %w", err)
				return
			}
		}

		current := t.client.CurrentWeather(lat, lon)
		t.temp = t.client.CurrentTemperature(lat, lon)
		t.code = jit.MustCommand(jit.Thunk(current.Resolve), jit.WithIndex("weathercode"))
		t.wind = jit.MustCommand(jit.Thunk(current.Resolve), jit.WithIndex("windspeed"))
	})
	return t.locErr
}

func (t *WeatherTile) Refresh() tea.Cmd {
	return app.FetchCmd(t.ID(), func() (any, error) {
		if err := t.ensurePipelines(); err != nil {
			return nil, err
		}
		temp, err := jit.Float(t.temp)
		if err != nil {
			return nil, err
		}
		code, err := jit.Int(t.code)
		if err != nil {
			return nil, err
		}
		wind, err := jit.Float(t.wind)
		if err != nil {
			return nil, err
		}
		s := weatherSample{
			TempC: temp,
			Code:  int(code),
			Wind:  wind,
			Desc:  webstat.WeatherDescription(int(code)),
		}
		if t.cfg.ShowIcon && t.icon != nil {
			s.Icon = t.fetchIcon(int(code))
		}
		return s, nil
	})
}

// fetchIcon downloads and decodes the condition icon. Icon trouble never
// fails the refresh; the tile just falls back to text.
func (t *WeatherTile) fetchIcon(code int) image.Image {
	hour := time.Now().Hour()
	day := hour >= 6 && hour < 18
	raw, err := t.client.WeatherIcon(code, day).Resolve()
	if err != nil {
		return nil
	}
	data, ok := raw.([]byte)
	if !ok {
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	return img
}

func (t *WeatherTile) Update(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(app.TileDataEvent)
	if !ok || ev.Tile != t.ID() {
		return nil
	}
	if ev.Err != nil {
		t.err = ev.Err
		return nil
	}
	if s, ok := ev.Data.(weatherSample); ok {
		t.sample = &s
		t.err = nil
	}
	return nil
}

func (t *WeatherTile) HandleKey(_ tea.KeyMsg) tea.Cmd { return nil }

func (t *WeatherTile) View(width, height int) string {
	if t.err != nil {
		return errorView(t.err, width, height)
	}
	if t.sample == nil {
		return centerMessage("fetching…", width, height)
	}

	th := theme.Current
	s := t.sample
	lines := []string{
		components.PadCenter(fmt.Sprintf("%.1f°C", s.TempC), width),
		components.PadCenter(s.Desc, width),
		components.PadCenter(th.DimStyle().Render(fmt.Sprintf("wind %.0f km/h", s.Wind)), width),
	}

	if s.Icon != nil && t.icon != nil && height >= len(lines)+3 {
		rows := min(height-len(lines)-1, 6)
		if art, err := t.icon.Render(s.Icon, width-2, rows); err == nil && art != "" {
			var centered []string
			for _, ln := range strings.Split(art, "\n") {
				centered = append(centered, components.PadCenter(ln, width))
			}
			lines = append(centered, lines...)
		}
	}
	return clampLines(lines, height)
}

func (t *WeatherTile) MinSize() (int, int) { return 24, 5 }
