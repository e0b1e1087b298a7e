// Package jit implements the just-in-time value layer for tile-pulse.
//
// A jit value is not a value at all but a deferred computation: every time
// it is read it re-executes the wrapped function, shell invocation, or
// template and hands back a fresh result. Tiles hold jit values as their
// data sources so that a periodic redraw automatically produces live
// numbers without the tile re-implementing polling or subprocess plumbing.
//
// The building blocks compose bottom-up:
//
//   - Command wraps a function with bound arguments, an optional result
//     extractor (ByIndex or ByField), and an optional postprocess step.
//   - ShellCommand does the same for a host-shell invocation, capturing
//     trimmed stdout.
//   - DeltaCommand retains the previous raw result and reports the output
//     of a comparator over (current, previous); it turns cumulative
//     counters into per-refresh rates.
//   - Template binds a static text with {} placeholders to an ordered list
//     of jit values and interpolates fresh results on every Render.
//
// Nothing in this package caches, retries, logs, or swallows errors. Every
// read is a full re-evaluation and every failure propagates to the caller;
// resilience wrappers such as Fallback are layered on top by choice.
package jit

// Evaluable is the single contract every jit value satisfies: produce the
// current value now. Implementations re-execute their underlying
// computation on every call, so two consecutive Resolve calls may return
// different results. Callers that need a stable value across several reads
// within one refresh must call Resolve once and reuse the result.
type Evaluable interface {
	Resolve() (any, error)
}

// TargetFunc is the signature of a base callable wrapped by Command and
// DeltaCommand. The merged positional and named arguments are delivered in
// a single Args value.
type TargetFunc func(args Args) (any, error)

// Args carries positional and named arguments for a TargetFunc.
type Args struct {
	Pos   []any
	Named map[string]any
}

// MergeArgs combines construction-time bound arguments with call-time
// extras. Positional arguments concatenate with the bound ones first.
// Named arguments merge with bound keys overriding call-time keys of the
// same name. The inputs are not mutated.
func MergeArgs(bound, extra Args) Args {
	merged := Args{}

	if n := len(bound.Pos) + len(extra.Pos); n > 0 {
		merged.Pos = make([]any, 0, n)
		merged.Pos = append(merged.Pos, bound.Pos...)
		merged.Pos = append(merged.Pos, extra.Pos...)
	}

	if len(bound.Named)+len(extra.Named) > 0 {
		merged.Named = make(map[string]any, len(bound.Named)+len(extra.Named))
		for k, v := range extra.Named {
			merged.Named[k] = v
		}
		for k, v := range bound.Named {
			merged.Named[k] = v
		}
	}

	return merged
}

// Thunk lifts a plain zero-argument function into a TargetFunc, discarding
// any delivered arguments. Most gopsutil and stdlib calls are wrapped this
// way.
func Thunk(fn func() (any, error)) TargetFunc {
	return func(Args) (any, error) {
		return fn()
	}
}

// staticValue is an Evaluable that always resolves to the same value.
type staticValue struct {
	v any
}

func (s staticValue) Resolve() (any, error) {
	return s.v, nil
}

// Static wraps a fixed value in the Evaluable contract. It is convenient
// for mixing constant text or numbers into a Template next to live values.
func Static(v any) Evaluable {
	return staticValue{v: v}
}
