// tile-pulse is a live-tile status panel for the terminal.
//
// It renders a grid of self-refreshing tiles (clock, system load, disks,
// network throughput, weather, public IP, tailnet, kubernetes, and
// user-defined shell tiles) on top of a lazy-evaluation layer: every value
// a tile shows is a deferred command resolved fresh at refresh time.
//
// Usage:
//
//	tile-pulse [flags]
//
// Flags:
//
//	-tui            Launch the interactive panel (default)
//	-once           Render every enabled tile once to stdout and exit
//	-values         Resolve and print every named local data value, then exit
//	-config string  Path to configuration file (default: ~/.config/tile-pulse/config.toml)
//	-theme string   Theme override (see -themes for names)
//	-themes         List available themes and exit
//	-verbose        Enable verbose logging
//	-version        Print version and exit
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/tile-pulse/pkg/app"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/cache"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/components"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/config"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/image"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/sources"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/sources/hostinfo"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/sources/netstat"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/sources/sysstat"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/sources/webstat"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/terminal"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/theme"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/tiles"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		runTUI      = flag.Bool("tui", false, "Launch the interactive panel")
		runOnce     = flag.Bool("once", false, "Render every enabled tile once to stdout and exit")
		listValues  = flag.Bool("values", false, "Resolve and print every named local data value, then exit")
		themeName   = flag.String("theme", "", "Theme override")
		listThemes  = flag.Bool("themes", false, "List available themes and exit")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("tile-pulse %s (%s)\n", version, commit)
		os.Exit(0)
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.General.LogLevel, *verbose),
	}))
	slog.SetDefault(logger)

	// User theme files extend the builtin registry; a broken file is
	// logged, not fatal.
	for _, terr := range theme.LoadUserThemes(config.ThemesDir()) {
		logger.Warn("skipping theme file", "error", terr)
	}
	if *themeName != "" {
		cfg.General.Theme = *themeName
	}
	theme.SetCurrent(cfg.General.Theme)

	if *listThemes {
		fmt.Println(strings.Join(theme.Names(), "\n"))
		os.Exit(0)
	}
	if *listValues {
		printValues(logger)
		os.Exit(0)
	}

	panel, err := buildTiles(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build tiles: %v\n", err)
		os.Exit(1)
	}
	if len(panel) == 0 {
		fmt.Fprintln(os.Stderr, "no tiles enabled; check your configuration")
		os.Exit(1)
	}

	if *runOnce && *runTUI {
		fmt.Fprintln(os.Stderr, "-once and -tui are mutually exclusive")
		os.Exit(1)
	}

	switch {
	case *runOnce:
		renderOnce(panel, terminal.GetSize().Cols)

	default:
		if !terminal.IsInteractive() {
			fmt.Fprintln(os.Stderr, "stdout is not a terminal; use -once for non-interactive output")
			os.Exit(1)
		}
		model := app.NewModel(app.Config{
			Refresh: cfg.General.Refresh.Duration,
			Theme:   cfg.General.Theme,
		}, panel...)
		p := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			logger.Error("panel error", "error", err)
			os.Exit(1)
		}
	}
}

// buildTiles constructs every tile the configuration enables, in display
// order. A tile whose backend is unreachable at startup (network counters,
// kubeconfig) is skipped with a warning rather than aborting the panel.
func buildTiles(cfg *config.Config, logger *slog.Logger) ([]app.Tile, error) {
	var panel []app.Tile

	if cfg.Tiles.Clock.Enabled {
		panel = append(panel, tiles.NewClock(cfg.Tiles.Clock))
	}
	if cfg.Tiles.Host.Enabled {
		panel = append(panel, tiles.NewHost(cfg.Tiles.Host))
	}
	if cfg.Tiles.System.Enabled {
		panel = append(panel, tiles.NewSystem(cfg.Tiles.System))
	}
	if cfg.Tiles.Disks.Enabled {
		panel = append(panel, tiles.NewDisks(cfg.Tiles.Disks))
	}
	if cfg.Tiles.Network.Enabled {
		net, err := tiles.NewNetwork(cfg.Tiles.Network)
		if err != nil {
			logger.Warn("network tile disabled", "error", err)
		} else {
			panel = append(panel, net)
		}
	}
	if cfg.Tiles.Weather.Enabled {
		var opts []webstat.ClientOption
		if store, err := cache.NewStore(cache.DefaultDir(), 24*time.Hour); err != nil {
			logger.Warn("icon cache unavailable", "error", err)
		} else {
			opts = append(opts, webstat.WithDownloadCache(store))
		}
		w := tiles.NewWeather(cfg.Tiles.Weather, webstat.NewClient(opts...))
		if cfg.Tiles.Weather.ShowIcon {
			if term := terminal.Detect(); terminal.SelectProtocol(term) != terminal.ProtocolNone {
				w.SetIconRenderer(image.NewRenderer(term, ""))
			}
		}
		panel = append(panel, w)
	}
	if cfg.Tiles.IPInfo.Enabled {
		panel = append(panel, tiles.NewIPInfo(cfg.Tiles.IPInfo, nil))
	}
	if cfg.Tiles.Tailnet.Enabled {
		panel = append(panel, tiles.NewTailnet(cfg.Tiles.Tailnet, nil))
	}
	if cfg.Tiles.Kube.Enabled {
		kube, err := tiles.NewKube(cfg.Tiles.Kube, nil)
		if err != nil {
			logger.Warn("kube tile disabled", "error", err)
		} else {
			panel = append(panel, kube)
		}
	}
	for _, cc := range cfg.Tiles.Custom {
		ct, err := tiles.NewCustom(cc)
		if err != nil {
			return nil, fmt.Errorf("custom tile %q: %w", cc.Name, err)
		}
		panel = append(panel, ct)
	}

	return panel, nil
}

// renderOnce refreshes each tile synchronously and prints it boxed, for
// scripting and shell startup banners.
func renderOnce(panel []app.Tile, width int) {
	if width <= 0 {
		width = 80
	}
	th := theme.Current
	style := components.BoxStyle{BorderColor: th.Border, TitleColor: th.Title}
	for _, tile := range panel {
		if cmd := tile.Refresh(); cmd != nil {
			tile.Update(cmd())
		}
		w, h := tile.MinSize()
		if w < width {
			w = width
		}
		fmt.Println(components.Box(tile.Title(), tile.View(w-2, h-2), w, h, style))
	}
}

// printValues resolves the local source catalogs and prints each named
// value, a diagnostic for checking what the tiles will see on this host.
func printValues(logger *slog.Logger) {
	groups := map[string]sources.Catalog{
		"sys":  sysstat.Catalog(),
		"host": hostinfo.Catalog(),
	}
	if net, err := netstat.Catalog(); err != nil {
		logger.Warn("network counters unavailable", "error", err)
	} else {
		groups["net"] = net
	}

	merged := sources.Merge(groups)
	for _, name := range merged.Names() {
		v, err := merged[name].Resolve()
		if err != nil {
			fmt.Printf("%-24s !! %v\n", name, err)
			continue
		}
		fmt.Printf("%-24s %v\n", name, v)
	}
}

// logLevel resolves the slog level from config, with -verbose forcing
// debug.
func logLevel(name string, verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
