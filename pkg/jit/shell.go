package jit

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// ShellCommand is the process-invocation variant of Command: every read
// hands the command line to the host shell, captures stdout, decodes it as
// text, and trims surrounding whitespace before any postprocess step.
// A non-zero exit status fails with a *ProcessError carrying the exit code
// and captured output.
//
// Each evaluation spawns a short-lived process and blocks until it exits;
// callers driving a UI should run slow commands off the render path.
type ShellCommand struct {
	line    string
	shell   []string
	timeout time.Duration
	post    Postprocess
}

// ShellOption configures a ShellCommand.
type ShellOption func(*ShellCommand)

// WithShell overrides the interpreter used to run the command line. The
// default is "/bin/sh -c" on Unix and "cmd /C" on Windows.
func WithShell(argv ...string) ShellOption {
	return func(s *ShellCommand) { s.shell = argv }
}

// WithTimeout bounds a single evaluation. Zero means no limit; a
// long-blocking command then simply delays that one refresh.
func WithTimeout(d time.Duration) ShellOption {
	return func(s *ShellCommand) { s.timeout = d }
}

// WithShellPostprocess sets the transform applied to the trimmed output.
func WithShellPostprocess(fn Postprocess) ShellOption {
	return func(s *ShellCommand) { s.post = fn }
}

// NewShell wraps a command line for deferred execution through the host
// shell.
func NewShell(line string, opts ...ShellOption) *ShellCommand {
	s := &ShellCommand{
		line:  line,
		shell: defaultShell(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func defaultShell() []string {
	if runtime.GOOS == "windows" {
		return []string{"cmd", "/C"}
	}
	return []string{"/bin/sh", "-c"}
}

// RunContext executes the command line once under ctx.
func (s *ShellCommand) RunContext(ctx context.Context) (any, error) {
	argv := append(append([]string{}, s.shell...), s.line)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	out, err := cmd.Output()
	trimmed := strings.TrimSpace(string(out))
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &ProcessError{
				Line:     s.line,
				ExitCode: exitErr.ExitCode(),
				Output:   trimmed,
				Stderr:   strings.TrimSpace(string(exitErr.Stderr)),
			}
		}
		return nil, err
	}

	if s.post != nil {
		return s.post(trimmed)
	}
	return trimmed, nil
}

// Run executes the command line once, honoring the configured timeout.
func (s *ShellCommand) Run() (any, error) {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.RunContext(ctx)
}

// Resolve satisfies Evaluable.
func (s *ShellCommand) Resolve() (any, error) {
	return s.Run()
}
