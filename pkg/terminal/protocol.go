package terminal

import "strings"

// GraphicsProtocol identifies which image rendering protocol to use.
type GraphicsProtocol int

const (
	ProtocolNone       GraphicsProtocol = iota
	ProtocolKitty                       // kitty graphics (Ghostty, Kitty, WezTerm)
	ProtocolITerm2                      // iTerm2 inline images
	ProtocolSixel                       // sixel graphics
	ProtocolHalfblocks                  // unicode half blocks with ANSI color
)

var protocolNames = [...]string{
	ProtocolNone:       "none",
	ProtocolKitty:      "kitty",
	ProtocolITerm2:     "iterm2",
	ProtocolSixel:      "sixel",
	ProtocolHalfblocks: "halfblocks",
}

// String returns the human-readable name of the graphics protocol.
func (p GraphicsProtocol) String() string {
	if int(p) < len(protocolNames) {
		return protocolNames[p]
	}
	return "unknown"
}

// SelectProtocol returns the best graphics protocol for the terminal.
// Pixel protocols are unreliable over SSH, so remote sessions fall back
// to half blocks.
func SelectProtocol(term Terminal) GraphicsProtocol {
	if IsSSH() {
		return ProtocolHalfblocks
	}
	switch {
	case term.SupportsKittyGraphics():
		return ProtocolKitty
	case term.SupportsITerm2Images():
		return ProtocolITerm2
	case term.SupportsSixel():
		return ProtocolSixel
	default:
		return ProtocolHalfblocks
	}
}

// SelectProtocolWithOverride lets configuration force a protocol. An empty
// or unrecognized override falls back to detection.
func SelectProtocolWithOverride(term Terminal, override string) GraphicsProtocol {
	switch strings.ToLower(override) {
	case "kitty":
		return ProtocolKitty
	case "iterm2":
		return ProtocolITerm2
	case "sixel":
		return ProtocolSixel
	case "halfblocks", "unicode":
		return ProtocolHalfblocks
	case "none", "off":
		return ProtocolNone
	default:
		return SelectProtocol(term)
	}
}
