// Package hostinfo publishes identity strings for the local machine: CPU
// model, distribution, kernel release. Values that the OS only exposes
// through tooling are ShellCommands resolved per platform; the rest come
// from gopsutil.
package hostinfo

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/host"

	"gitlab.com/tinyland/lab/tile-pulse/pkg/jit"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/sources"
)

// CPUModel is the marketing name of the CPU, e.g. "AMD Ryzen 7 5800X".
// Resolution is deferred: the shell command only runs when the value is
// displayed.
func CPUModel() jit.Evaluable {
	switch runtime.GOOS {
	case "linux":
		return jit.NewShell("lscpu | grep 'Model name'",
			jit.WithShellPostprocess(afterColon))
	case "darwin":
		return jit.NewShell("sysctl -n machdep.cpu.brand_string")
	case "windows":
		return jit.NewShell("wmic cpu get name",
			jit.WithShellPostprocess(secondLine))
	default:
		return jit.Static("unknown CPU")
	}
}

// Distro is the pretty name of the installed distribution or OS release.
func Distro() jit.Evaluable {
	switch runtime.GOOS {
	case "linux":
		return jit.NewShell("lsb_release -ds")
	case "darwin":
		return jit.MustCommand(jit.Thunk(func() (any, error) {
			info, err := host.Info()
			if err != nil {
				return nil, err
			}
			return fmt.Sprintf("macOS %s", info.PlatformVersion), nil
		}))
	case "windows":
		return jit.NewShell("wmic os get caption",
			jit.WithShellPostprocess(secondLine))
	default:
		return jit.Static(runtime.GOOS)
	}
}

// Kernel is the running kernel release string.
func Kernel() jit.Evaluable {
	return jit.MustCommand(jit.Thunk(func() (any, error) {
		return host.KernelVersion()
	}))
}

// Platform is "<os> <arch>", e.g. "linux amd64".
func Platform() jit.Evaluable {
	return jit.Static(runtime.GOOS + " " + runtime.GOARCH)
}

// afterColon keeps the text after the first colon, trimmed. "Model name:
// AMD Ryzen" becomes "AMD Ryzen".
func afterColon(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("hostinfo: expected string output, got %T: %w", v, jit.ErrCoerce)
	}
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("hostinfo: no colon in %q: %w", s, jit.ErrLookup)
	}
	return strings.TrimSpace(parts[1]), nil
}

// secondLine keeps the second line of the output, trimmed. wmic prints a
// header line before the value.
func secondLine(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("hostinfo: expected string output, got %T: %w", v, jit.ErrCoerce)
	}
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf("hostinfo: expected header and value in %q: %w", s, jit.ErrLookup)
	}
	return strings.TrimSpace(lines[1]), nil
}

// Catalog returns the named hostinfo values. The shell-backed entries are
// wrapped with a fallback so a missing tool renders as "unknown" instead
// of failing the whole tile; callers that want the raw error use the
// constructors directly.
func Catalog() sources.Catalog {
	isProcess := func(err error) bool {
		var pe *jit.ProcessError
		return errors.As(err, &pe)
	}
	return sources.Catalog{
		"cpu.model": jit.Fallback(CPUModel(), jit.Static("unknown"), isProcess),
		"distro":    jit.Fallback(Distro(), jit.Static("unknown"), isProcess),
		"kernel":    Kernel(),
		"platform":  Platform(),
	}
}
