// Package theme defines the color palettes used by the tile panel and a
// registry of built-in and user-supplied themes.
package theme

import (
	"sort"
	"strings"
	"sync"
)

// Theme defines the complete color palette for the panel.
type Theme struct {
	Name string

	// Base colors
	Background string // hex color e.g. "#1a1b26"
	Foreground string // hex color
	Dim        string // dimmed text
	Accent     string // highlights, focused borders

	// Tile chrome
	Border      string // unfocused tile borders
	BorderFocus string // focused tile border
	Title       string // tile title text

	// Status colors
	StatusOK      string
	StatusWarn    string
	StatusError   string
	StatusUnknown string

	// Gauge colors
	GaugeFilled string
	GaugeEmpty  string
	GaugeWarn   string
	GaugeCrit   string

	// Chart colors (sparklines)
	ChartLine string
	ChartFill string

	// Help bar
	HelpKey  string
	HelpDesc string
}

// Current holds the active theme (set via SetCurrent).
var Current Theme

var (
	mu       sync.RWMutex
	registry = map[string]Theme{}
)

func init() {
	registerBuiltins()
	Current = tokyoNight()
}

// Get returns a named theme, falling back to tokyo-night if not found.
func Get(name string) Theme {
	mu.RLock()
	defer mu.RUnlock()
	if t, ok := registry[strings.ToLower(name)]; ok {
		return t
	}
	return registry["tokyo-night"]
}

// Names returns all available theme names sorted alphabetically.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetCurrent sets the active theme by name.
func SetCurrent(name string) {
	Current = Get(name)
}

// Register adds a theme to the registry under its lowercase name.
func Register(t Theme) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(t.Name)] = t
}
