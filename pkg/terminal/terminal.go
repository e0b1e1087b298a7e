// Package terminal detects the terminal emulator, its graphics protocol,
// and its dimensions. Detection reads environment variables only, so it
// costs nothing and is safe before the TUI takes over the screen.
package terminal

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Terminal identifies the terminal emulator in use.
type Terminal int

const (
	TermUnknown Terminal = iota
	TermGhostty
	TermKitty
	TermWezTerm
	TermITerm2
	TermAlacritty
	TermVTE // GNOME Terminal, Tilix, and other VTE-based emulators
	TermTmux
	TermScreen
	TermVSCode
	TermGeneric
)

// caps is the capability row for one terminal.
type caps struct {
	name      string
	kitty     bool // kitty graphics protocol
	iterm2    bool // iTerm2 inline images
	sixel     bool
	trueColor bool
}

var capsTable = map[Terminal]caps{
	TermUnknown:   {name: "unknown"},
	TermGhostty:   {name: "ghostty", kitty: true, trueColor: true},
	TermKitty:     {name: "kitty", kitty: true, trueColor: true},
	TermWezTerm:   {name: "wezterm", kitty: true, iterm2: true, sixel: true, trueColor: true},
	TermITerm2:    {name: "iterm2", iterm2: true, trueColor: true},
	TermAlacritty: {name: "alacritty", trueColor: true},
	TermVTE:       {name: "vte", trueColor: true},
	TermTmux:      {name: "tmux"},
	TermScreen:    {name: "screen"},
	TermVSCode:    {name: "vscode", trueColor: true},
	TermGeneric:   {name: "generic"},
}

// String returns the human-readable name of the terminal.
func (t Terminal) String() string {
	if c, ok := capsTable[t]; ok {
		return c.name
	}
	return "unknown"
}

// SupportsKittyGraphics reports whether the terminal can render the kitty
// graphics protocol.
func (t Terminal) SupportsKittyGraphics() bool { return capsTable[t].kitty }

// SupportsITerm2Images reports whether the terminal can render iTerm2
// inline images.
func (t Terminal) SupportsITerm2Images() bool { return capsTable[t].iterm2 }

// SupportsSixel reports whether the terminal can render sixel graphics.
func (t Terminal) SupportsSixel() bool { return capsTable[t].sixel }

// SupportsTrueColor reports whether the terminal natively renders 24-bit
// color. COLORTERM may still enable it for terminals that report false.
func (t Terminal) SupportsTrueColor() bool { return capsTable[t].trueColor }

// Detect identifies the terminal emulator from environment variables.
// Signals are checked in order of reliability: TERM_PROGRAM, TERM,
// terminal-specific variables, then multiplexers.
func Detect() Terminal {
	if tp := os.Getenv("TERM_PROGRAM"); tp != "" {
		switch strings.ToLower(tp) {
		case "ghostty":
			return TermGhostty
		case "kitty":
			return TermKitty
		case "wezterm":
			return TermWezTerm
		case "iterm.app":
			return TermITerm2
		case "vscode":
			return TermVSCode
		case "alacritty":
			return TermAlacritty
		case "tmux":
			return TermTmux
		}
	}

	if term := os.Getenv("TERM"); term != "" {
		switch {
		case term == "xterm-ghostty":
			return TermGhostty
		case term == "xterm-kitty":
			return TermKitty
		case strings.HasPrefix(term, "alacritty"):
			return TermAlacritty
		case strings.HasPrefix(term, "screen") && os.Getenv("STY") != "":
			return TermScreen
		}
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return TermKitty
	}
	if os.Getenv("ITERM_SESSION_ID") != "" || os.Getenv("LC_TERMINAL") == "iTerm2" {
		return TermITerm2
	}
	if os.Getenv("WEZTERM_EXECUTABLE") != "" {
		return TermWezTerm
	}
	if os.Getenv("VTE_VERSION") != "" {
		return TermVTE
	}

	// Multiplexers last, so the inner terminal wins when identifiable.
	if os.Getenv("TMUX") != "" {
		return TermTmux
	}
	if os.Getenv("STY") != "" {
		return TermScreen
	}

	return TermGeneric
}

// IsInteractive reports whether stdout is attached to a terminal.
func IsInteractive() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ColorDepth returns the terminal's color depth in bits: 24, 8, 4, or 1.
func ColorDepth() int {
	if Detect().SupportsTrueColor() {
		return 24
	}
	switch termenv.EnvColorProfile() {
	case termenv.TrueColor:
		return 24
	case termenv.ANSI256:
		return 8
	case termenv.ANSI:
		return 4
	default:
		return 1
	}
}

// IsSSH reports whether the current session is running over SSH.
func IsSSH() bool {
	return os.Getenv("SSH_TTY") != "" ||
		os.Getenv("SSH_CONNECTION") != "" ||
		os.Getenv("SSH_CLIENT") != ""
}
