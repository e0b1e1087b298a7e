package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// tomlTheme is the TOML-serializable representation of a Theme.
type tomlTheme struct {
	Name   string     `toml:"name"`
	Base   tomlBase   `toml:"base"`
	Tile   tomlTile   `toml:"tile"`
	Status tomlStatus `toml:"status"`
	Gauge  tomlGauge  `toml:"gauge"`
	Chart  tomlChart  `toml:"chart"`
	Help   tomlHelp   `toml:"help"`
}

type tomlBase struct {
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
	Dim        string `toml:"dim"`
	Accent     string `toml:"accent"`
}

type tomlTile struct {
	Border      string `toml:"border"`
	BorderFocus string `toml:"border_focus"`
	Title       string `toml:"title"`
}

type tomlStatus struct {
	OK      string `toml:"ok"`
	Warn    string `toml:"warn"`
	Error   string `toml:"error"`
	Unknown string `toml:"unknown"`
}

type tomlGauge struct {
	Filled string `toml:"filled"`
	Empty  string `toml:"empty"`
	Warn   string `toml:"warn"`
	Crit   string `toml:"crit"`
}

type tomlChart struct {
	Line string `toml:"line"`
	Fill string `toml:"fill"`
}

type tomlHelp struct {
	Key  string `toml:"key"`
	Desc string `toml:"desc"`
}

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// LoadFromTOML parses a TOML theme definition from raw bytes.
func LoadFromTOML(data []byte) (Theme, error) {
	var tt tomlTheme
	if err := toml.Unmarshal(data, &tt); err != nil {
		return Theme{}, fmt.Errorf("theme: parse TOML: %w", err)
	}

	t := Theme{
		Name:       tt.Name,
		Background: tt.Base.Background,
		Foreground: tt.Base.Foreground,
		Dim:        tt.Base.Dim,
		Accent:     tt.Base.Accent,

		Border:      tt.Tile.Border,
		BorderFocus: tt.Tile.BorderFocus,
		Title:       tt.Tile.Title,

		StatusOK:      tt.Status.OK,
		StatusWarn:    tt.Status.Warn,
		StatusError:   tt.Status.Error,
		StatusUnknown: tt.Status.Unknown,

		GaugeFilled: tt.Gauge.Filled,
		GaugeEmpty:  tt.Gauge.Empty,
		GaugeWarn:   tt.Gauge.Warn,
		GaugeCrit:   tt.Gauge.Crit,

		ChartLine: tt.Chart.Line,
		ChartFill: tt.Chart.Fill,

		HelpKey:  tt.Help.Key,
		HelpDesc: tt.Help.Desc,
	}

	if err := validate(t); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// LoadUserThemes reads every *.toml file in dir, registering each valid
// theme. Invalid files are skipped and reported in the returned error list.
func LoadUserThemes(dir string) []error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return []error{err}
	}

	var errs []error
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".toml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("theme: read %s: %w", path, err))
			continue
		}
		t, err := LoadFromTOML(data)
		if err != nil {
			errs = append(errs, fmt.Errorf("theme: %s: %w", e.Name(), err))
			continue
		}
		Register(t)
	}
	return errs
}

// validate checks that all fields are present and every color is #RRGGBB.
func validate(t Theme) error {
	if t.Name == "" {
		return fmt.Errorf("theme: missing required field %q", "name")
	}

	colorFields := []struct {
		name  string
		value string
	}{
		{"background", t.Background},
		{"foreground", t.Foreground},
		{"dim", t.Dim},
		{"accent", t.Accent},
		{"border", t.Border},
		{"border_focus", t.BorderFocus},
		{"title", t.Title},
		{"status.ok", t.StatusOK},
		{"status.warn", t.StatusWarn},
		{"status.error", t.StatusError},
		{"status.unknown", t.StatusUnknown},
		{"gauge.filled", t.GaugeFilled},
		{"gauge.empty", t.GaugeEmpty},
		{"gauge.warn", t.GaugeWarn},
		{"gauge.crit", t.GaugeCrit},
		{"chart.line", t.ChartLine},
		{"chart.fill", t.ChartFill},
		{"help.key", t.HelpKey},
		{"help.desc", t.HelpDesc},
	}

	for _, f := range colorFields {
		if f.value == "" {
			return fmt.Errorf("theme: missing required field %q", f.name)
		}
		if !hexColorRegex.MatchString(f.value) {
			return fmt.Errorf("theme: invalid hex color %q for field %q (expected #RRGGBB)", f.value, f.name)
		}
	}
	return nil
}
