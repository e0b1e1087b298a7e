package jit

import (
	"fmt"
)

// Comparator folds the current and previous raw results of a DeltaCommand
// into the value it reports. The canonical comparator is Sub, which turns
// cumulative counters into per-refresh deltas.
type Comparator func(current, previous any) (any, error)

// DeltaCommand is a Command variant that retains the previous raw result.
// Each run evaluates the base computation (including extraction), feeds
// (current, previous) through the comparator, overwrites the retained
// previous value with the raw current one, and finally applies postprocess
// to the delta. The comparator always observes the previous value from
// the immediately preceding run.
//
// The retained state makes a DeltaCommand single-writer: calls to Run must
// be serialized per instance. The tile runtime guarantees this by allowing
// at most one outstanding refresh per tile.
type DeltaCommand struct {
	inner    *Command // base + extraction; postprocess is held separately
	compare  Comparator
	post     Postprocess
	previous any
}

// NewDelta wraps fn with retained-state delta semantics. Options are the
// same as NewCommand plus WithInitial. When no initial value is supplied,
// the base computation and extractor run once, eagerly, to seed the
// previous value so the first Run reports a delta against a real sample
// rather than a sentinel. Postprocess deliberately does not apply to that
// seeding evaluation; it transforms deltas only, never raw samples.
func NewDelta(fn TargetFunc, compare Comparator, opts ...Option) (*DeltaCommand, error) {
	if compare == nil {
		return nil, fmt.Errorf("comparator is nil: %w", ErrConfiguration)
	}

	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, fmt.Errorf("base callable is nil: %w", ErrConfiguration)
	}

	d := &DeltaCommand{
		inner: &Command{
			fn:      fn,
			bound:   o.bound,
			extract: o.extractor(),
		},
		compare: compare,
		post:    o.post,
	}

	if o.hasInitial {
		d.previous = o.initial
	} else {
		seed, err := d.inner.runBase(Args{})
		if err != nil {
			return nil, fmt.Errorf("seeding previous value: %w", err)
		}
		d.previous = seed
	}

	return d, nil
}

// MustDelta is like NewDelta but panics on error. Intended for static
// command catalogs.
func MustDelta(fn TargetFunc, compare Comparator, opts ...Option) *DeltaCommand {
	d, err := NewDelta(fn, compare, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// Run performs one delta evaluation with extra call-time positionals.
func (d *DeltaCommand) Run(extra ...any) (any, error) {
	return d.RunWith(Args{Pos: extra})
}

// RunWith performs one delta evaluation. The comparator sees the previous
// value before it is overwritten; a comparator error leaves the previous
// value untouched so the failed sample is not recorded.
func (d *DeltaCommand) RunWith(extra Args) (any, error) {
	current, err := d.inner.runBase(extra)
	if err != nil {
		return nil, err
	}

	delta, err := d.compare(current, d.previous)
	if err != nil {
		return nil, err
	}
	d.previous = current

	if d.post != nil {
		return d.post(delta)
	}
	return delta, nil
}

// Resolve satisfies Evaluable with an argument-free run.
func (d *DeltaCommand) Resolve() (any, error) {
	return d.RunWith(Args{})
}

// Previous returns the currently retained raw value. It exists for tests
// and debugging; display paths should go through Run.
func (d *DeltaCommand) Previous() any {
	return d.previous
}

// Sub is the canonical numeric comparator: current minus previous. Integer
// inputs subtract as int64, anything involving a float subtracts as
// float64. Non-numeric inputs fail with an ErrCoerce-wrapped error.
func Sub(current, previous any) (any, error) {
	if isFloat(current) || isFloat(previous) {
		a, err := asFloat(current)
		if err != nil {
			return nil, err
		}
		b, err := asFloat(previous)
		if err != nil {
			return nil, err
		}
		return a - b, nil
	}

	a, err := asInt(current)
	if err != nil {
		return nil, err
	}
	b, err := asInt(previous)
	if err != nil {
		return nil, err
	}
	return a - b, nil
}

func isFloat(v any) bool {
	switch v.(type) {
	case float32, float64:
		return true
	}
	return false
}
