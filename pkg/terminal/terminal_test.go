package terminal

import "testing"

// clearTermEnv blanks every detection signal so each test starts clean.
func clearTermEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{
		"TERM_PROGRAM", "TERM", "KITTY_WINDOW_ID", "ITERM_SESSION_ID",
		"LC_TERMINAL", "WEZTERM_EXECUTABLE", "VTE_VERSION", "TMUX", "STY",
		"SSH_TTY", "SSH_CONNECTION", "SSH_CLIENT", "COLORTERM",
	} {
		t.Setenv(v, "")
	}
}

func TestDetectFromTermProgram(t *testing.T) {
	tests := []struct {
		program string
		want    Terminal
	}{
		{"ghostty", TermGhostty},
		{"Ghostty", TermGhostty},
		{"kitty", TermKitty},
		{"WezTerm", TermWezTerm},
		{"iTerm.app", TermITerm2},
		{"vscode", TermVSCode},
		{"alacritty", TermAlacritty},
	}
	for _, tt := range tests {
		t.Run(tt.program, func(t *testing.T) {
			clearTermEnv(t)
			t.Setenv("TERM_PROGRAM", tt.program)
			if got := Detect(); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFromTermVar(t *testing.T) {
	clearTermEnv(t)
	t.Setenv("TERM", "xterm-kitty")
	if got := Detect(); got != TermKitty {
		t.Errorf("Detect() = %v, want kitty", got)
	}
}

func TestDetectScreenNeedsSTY(t *testing.T) {
	clearTermEnv(t)
	t.Setenv("TERM", "screen-256color")
	if got := Detect(); got == TermScreen {
		t.Error("screen TERM without STY should not detect as screen")
	}

	t.Setenv("STY", "1234.pts-0.host")
	if got := Detect(); got != TermScreen {
		t.Errorf("Detect() = %v, want screen", got)
	}
}

func TestDetectSpecificVars(t *testing.T) {
	clearTermEnv(t)
	t.Setenv("KITTY_WINDOW_ID", "1")
	if got := Detect(); got != TermKitty {
		t.Errorf("Detect() = %v, want kitty", got)
	}

	clearTermEnv(t)
	t.Setenv("VTE_VERSION", "7200")
	if got := Detect(); got != TermVTE {
		t.Errorf("Detect() = %v, want vte", got)
	}
}

func TestDetectFallsBackToGeneric(t *testing.T) {
	clearTermEnv(t)
	if got := Detect(); got != TermGeneric {
		t.Errorf("Detect() = %v, want generic", got)
	}
}

func TestCapabilityTable(t *testing.T) {
	if !TermGhostty.SupportsKittyGraphics() {
		t.Error("ghostty should support kitty graphics")
	}
	if TermAlacritty.SupportsKittyGraphics() {
		t.Error("alacritty should not support kitty graphics")
	}
	if !TermWezTerm.SupportsSixel() || !TermWezTerm.SupportsITerm2Images() {
		t.Error("wezterm supports sixel and iterm2 images")
	}
	if TermGeneric.SupportsTrueColor() {
		t.Error("generic terminal should not claim true color")
	}
}

func TestSelectProtocol(t *testing.T) {
	clearTermEnv(t)
	tests := []struct {
		term Terminal
		want GraphicsProtocol
	}{
		{TermGhostty, ProtocolKitty},
		{TermKitty, ProtocolKitty},
		{TermWezTerm, ProtocolKitty},
		{TermITerm2, ProtocolITerm2},
		{TermAlacritty, ProtocolHalfblocks},
		{TermGeneric, ProtocolHalfblocks},
	}
	for _, tt := range tests {
		if got := SelectProtocol(tt.term); got != tt.want {
			t.Errorf("SelectProtocol(%v) = %v, want %v", tt.term, got, tt.want)
		}
	}
}

func TestSelectProtocolSSHDegrades(t *testing.T) {
	clearTermEnv(t)
	t.Setenv("SSH_CONNECTION", "203.0.113.1 50000 203.0.113.2 22")
	if got := SelectProtocol(TermKitty); got != ProtocolHalfblocks {
		t.Errorf("SSH session protocol = %v, want halfblocks", got)
	}
}

func TestSelectProtocolWithOverride(t *testing.T) {
	clearTermEnv(t)
	if got := SelectProtocolWithOverride(TermGeneric, "kitty"); got != ProtocolKitty {
		t.Errorf("override kitty = %v", got)
	}
	if got := SelectProtocolWithOverride(TermGeneric, "off"); got != ProtocolNone {
		t.Errorf("override off = %v", got)
	}
	if got := SelectProtocolWithOverride(TermGhostty, ""); got != ProtocolKitty {
		t.Errorf("empty override should detect, got %v", got)
	}
	if got := SelectProtocolWithOverride(TermGhostty, "bogus"); got != ProtocolKitty {
		t.Errorf("unknown override should detect, got %v", got)
	}
}

func TestProtocolString(t *testing.T) {
	if ProtocolKitty.String() != "kitty" || ProtocolNone.String() != "none" {
		t.Error("protocol names wrong")
	}
}

func TestGetSizeFallback(t *testing.T) {
	// In a test environment stdout is rarely a TTY, so the env fallback
	// path is what we can exercise deterministically.
	t.Setenv("COLUMNS", "132")
	t.Setenv("LINES", "50")
	s := GetSize()
	if s.Cols <= 0 || s.Rows <= 0 {
		t.Errorf("GetSize() = %+v, want positive dims", s)
	}
}
