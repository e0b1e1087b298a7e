package config

import "time"

// Config is the root configuration document.
type Config struct {
	General GeneralConfig `toml:"general"`
	Tiles   TilesConfig   `toml:"tiles"`
}

// GeneralConfig holds settings that apply to the whole panel.
type GeneralConfig struct {
	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `toml:"log_level"`

	// Theme names the active color theme.
	Theme string `toml:"theme"`

	// Refresh is the UI tick driving redraws and stale checks. Individual
	// tiles refresh their data on their own intervals.
	Refresh Duration `toml:"refresh"`
}

// TilesConfig enables and tunes each tile.
type TilesConfig struct {
	Clock   ClockTileConfig   `toml:"clock"`
	Host    HostTileConfig    `toml:"host"`
	System  SystemTileConfig  `toml:"system"`
	Disks   DisksTileConfig   `toml:"disks"`
	Network NetworkTileConfig `toml:"network"`
	Weather WeatherTileConfig `toml:"weather"`
	IPInfo  IPInfoTileConfig  `toml:"ipinfo"`
	Tailnet TailnetTileConfig `toml:"tailnet"`
	Kube    KubeTileConfig    `toml:"kube"`

	// Custom holds user-defined tiles that pair shell commands with a
	// template string.
	Custom []CustomTileConfig `toml:"custom"`
}

// ClockTileConfig configures the clock tile.
type ClockTileConfig struct {
	Enabled  bool     `toml:"enabled"`
	Interval Duration `toml:"interval"`

	// Format is a Go time layout, e.g. "15:04:05".
	Format string `toml:"format"`

	// DateFormat is the layout of the second clock line, empty to hide.
	DateFormat string `toml:"date_format"`
}

// HostTileConfig configures the machine identity tile.
type HostTileConfig struct {
	Enabled  bool     `toml:"enabled"`
	Interval Duration `toml:"interval"`
}

// SystemTileConfig configures the CPU/memory/load tile.
type SystemTileConfig struct {
	Enabled  bool     `toml:"enabled"`
	Interval Duration `toml:"interval"`
}

// DisksTileConfig configures the disk usage tile.
type DisksTileConfig struct {
	Enabled  bool     `toml:"enabled"`
	Interval Duration `toml:"interval"`

	// Mounts restricts the tile to these mount paths. Empty shows every
	// physical partition.
	Mounts []string `toml:"mounts"`
}

// NetworkTileConfig configures the throughput tile.
type NetworkTileConfig struct {
	Enabled  bool     `toml:"enabled"`
	Interval Duration `toml:"interval"`
}

// WeatherTileConfig configures the weather tile.
type WeatherTileConfig struct {
	Enabled  bool     `toml:"enabled"`
	Interval Duration `toml:"interval"`

	// Latitude/Longitude select the forecast location. When both are zero
	// the coordinates are resolved once from the IP geolocation API.
	Latitude  float64 `toml:"latitude"`
	Longitude float64 `toml:"longitude"`

	// ShowIcon renders the condition icon when the terminal supports a
	// graphics protocol.
	ShowIcon bool `toml:"show_icon"`
}

// IPInfoTileConfig configures the public-IP tile.
type IPInfoTileConfig struct {
	Enabled  bool     `toml:"enabled"`
	Interval Duration `toml:"interval"`
}

// TailnetTileConfig configures the tailnet status tile.
type TailnetTileConfig struct {
	Enabled  bool     `toml:"enabled"`
	Interval Duration `toml:"interval"`

	// Socket is an optional custom tailscaled socket path.
	Socket string `toml:"socket"`
}

// KubeTileConfig configures the cluster health tile.
type KubeTileConfig struct {
	Enabled  bool     `toml:"enabled"`
	Interval Duration `toml:"interval"`

	// Kubeconfig is a path to a kubeconfig file; empty uses the default
	// loading rules.
	Kubeconfig string `toml:"kubeconfig"`

	// Context selects a kubeconfig context; empty uses the current one.
	Context string `toml:"context"`

	// Namespace restricts pod counts; empty counts all namespaces.
	Namespace string `toml:"namespace"`
}

// CustomTileConfig defines a user tile: each command line becomes a
// deferred shell command bound to the next {} placeholder of the template.
type CustomTileConfig struct {
	Name     string   `toml:"name"`
	Title    string   `toml:"title"`
	Interval Duration `toml:"interval"`

	// Template is the tile body with one {} per command.
	Template string `toml:"template"`

	// Commands are shell command lines, evaluated fresh on every refresh.
	Commands []string `toml:"commands"`

	// Timeout bounds each command evaluation. Zero means no limit.
	Timeout Duration `toml:"timeout"`

	// Fallback replaces the tile body when a command fails. Empty means
	// the error is shown instead.
	Fallback string `toml:"fallback"`
}

// DefaultConfig returns the default configuration: the local tiles on,
// the network-dependent and cluster tiles off.
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			LogLevel: "info",
			Theme:    "tokyo-night",
			Refresh:  Duration{1 * time.Second},
		},
		Tiles: TilesConfig{
			Clock: ClockTileConfig{
				Enabled:    true,
				Interval:   Duration{1 * time.Second},
				Format:     "15:04:05",
				DateFormat: "Monday, January 02",
			},
			Host: HostTileConfig{
				Enabled:  true,
				Interval: Duration{1 * time.Hour},
			},
			System: SystemTileConfig{
				Enabled:  true,
				Interval: Duration{2 * time.Second},
			},
			Disks: DisksTileConfig{
				Enabled:  true,
				Interval: Duration{30 * time.Second},
			},
			Network: NetworkTileConfig{
				Enabled:  true,
				Interval: Duration{2 * time.Second},
			},
			Weather: WeatherTileConfig{
				Enabled:  false,
				Interval: Duration{15 * time.Minute},
				ShowIcon: true,
			},
			IPInfo: IPInfoTileConfig{
				Enabled:  false,
				Interval: Duration{30 * time.Minute},
			},
			Tailnet: TailnetTileConfig{
				Enabled:  false,
				Interval: Duration{10 * time.Second},
			},
			Kube: KubeTileConfig{
				Enabled:  false,
				Interval: Duration{30 * time.Second},
			},
		},
	}
}
