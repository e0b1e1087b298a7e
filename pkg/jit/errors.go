package jit

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes the value layer produces itself.
// Errors from wrapped computations propagate unmodified and unwrapped.
var (
	// ErrConfiguration reports an invalid construction, such as supplying
	// both ByIndex and ByField extraction on the same Command.
	ErrConfiguration = errors.New("jit: invalid configuration")

	// ErrLookup reports a missing key, out-of-range index, or unknown
	// field during extraction. No default value is ever substituted.
	ErrLookup = errors.New("jit: lookup failed")

	// ErrCoerce reports a value that cannot be converted to the type a
	// typed accessor was asked for.
	ErrCoerce = errors.New("jit: cannot coerce value")
)

// ProcessError reports a shell invocation that exited with non-zero
// status. It carries the exit code and the captured output streams for
// diagnostics.
type ProcessError struct {
	Line     string // the command line handed to the shell
	ExitCode int
	Output   string // trimmed stdout captured before the failure
	Stderr   string
}

func (e *ProcessError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("jit: shell command %q exited %d: %s", e.Line, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("jit: shell command %q exited %d", e.Line, e.ExitCode)
}

// FormatError reports a placeholder/binding count mismatch discovered while
// rendering a Template. It is produced at render time only; a mismatched
// Template constructs without error.
type FormatError struct {
	Placeholders int
	Values       int
	Text         string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("jit: template %q has %d placeholders but %d values",
		e.Text, e.Placeholders, e.Values)
}
