package theme

// registerBuiltins registers all built-in themes in the registry.
func registerBuiltins() {
	for _, t := range []Theme{
		tokyoNight(),
		nord(),
		gruvbox(),
		catppuccin(),
	} {
		Register(t)
	}
}

// tokyoNight is the default theme.
func tokyoNight() Theme {
	return Theme{
		Name:       "tokyo-night",
		Background: "#1a1b26",
		Foreground: "#c0caf5",
		Dim:        "#565f89",
		Accent:     "#7aa2f7",

		Border:      "#292e42",
		BorderFocus: "#7aa2f7",
		Title:       "#c0caf5",

		StatusOK:      "#9ece6a",
		StatusWarn:    "#e0af68",
		StatusError:   "#f7768e",
		StatusUnknown: "#565f89",

		GaugeFilled: "#9ece6a",
		GaugeEmpty:  "#292e42",
		GaugeWarn:   "#e0af68",
		GaugeCrit:   "#f7768e",

		ChartLine: "#7aa2f7",
		ChartFill: "#7dcfff",

		HelpKey:  "#7aa2f7",
		HelpDesc: "#565f89",
	}
}

func nord() Theme {
	return Theme{
		Name:       "nord",
		Background: "#2e3440",
		Foreground: "#eceff4",
		Dim:        "#4c566a",
		Accent:     "#88c0d0",

		Border:      "#3b4252",
		BorderFocus: "#88c0d0",
		Title:       "#eceff4",

		StatusOK:      "#a3be8c",
		StatusWarn:    "#ebcb8b",
		StatusError:   "#bf616a",
		StatusUnknown: "#4c566a",

		GaugeFilled: "#a3be8c",
		GaugeEmpty:  "#3b4252",
		GaugeWarn:   "#ebcb8b",
		GaugeCrit:   "#bf616a",

		ChartLine: "#88c0d0",
		ChartFill: "#5e81ac",

		HelpKey:  "#88c0d0",
		HelpDesc: "#4c566a",
	}
}

func gruvbox() Theme {
	return Theme{
		Name:       "gruvbox",
		Background: "#282828",
		Foreground: "#ebdbb2",
		Dim:        "#928374",
		Accent:     "#fe8019",

		Border:      "#504945",
		BorderFocus: "#fe8019",
		Title:       "#ebdbb2",

		StatusOK:      "#b8bb26",
		StatusWarn:    "#fabd2f",
		StatusError:   "#fb4934",
		StatusUnknown: "#928374",

		GaugeFilled: "#b8bb26",
		GaugeEmpty:  "#504945",
		GaugeWarn:   "#fabd2f",
		GaugeCrit:   "#fb4934",

		ChartLine: "#fe8019",
		ChartFill: "#d65d0e",

		HelpKey:  "#fe8019",
		HelpDesc: "#928374",
	}
}

// catppuccin is the Mocha variant.
func catppuccin() Theme {
	return Theme{
		Name:       "catppuccin",
		Background: "#1e1e2e",
		Foreground: "#cdd6f4",
		Dim:        "#6c7086",
		Accent:     "#cba6f7",

		Border:      "#313244",
		BorderFocus: "#cba6f7",
		Title:       "#cdd6f4",

		StatusOK:      "#a6e3a1",
		StatusWarn:    "#f9e2af",
		StatusError:   "#f38ba8",
		StatusUnknown: "#6c7086",

		GaugeFilled: "#a6e3a1",
		GaugeEmpty:  "#313244",
		GaugeWarn:   "#f9e2af",
		GaugeCrit:   "#f38ba8",

		ChartLine: "#cba6f7",
		ChartFill: "#9399b2",

		HelpKey:  "#cba6f7",
		HelpDesc: "#6c7086",
	}
}
