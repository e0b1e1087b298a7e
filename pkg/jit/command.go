package jit

import (
	"fmt"
)

// Postprocess is the final transform applied to a result, strictly after
// extraction and never before.
type Postprocess func(v any) (any, error)

// Option configures a Command or DeltaCommand at construction time.
type Option func(*options)

type options struct {
	bound      Args
	index      Extractor
	field      Extractor
	post       Postprocess
	initial    any
	hasInitial bool
}

// WithArgs binds positional arguments that are passed to the base callable
// on every run, ahead of any call-time positionals.
func WithArgs(pos ...any) Option {
	return func(o *options) { o.bound.Pos = append(o.bound.Pos, pos...) }
}

// WithNamed binds a named argument. Bound names override call-time named
// arguments of the same name.
func WithNamed(name string, v any) Option {
	return func(o *options) {
		if o.bound.Named == nil {
			o.bound.Named = make(map[string]any)
		}
		o.bound.Named[name] = v
	}
}

// WithIndex narrows the result by indexing with key. Mutually exclusive
// with WithField.
func WithIndex(key any) Option {
	return func(o *options) { o.index = ByIndex(key) }
}

// WithField narrows the result by reading the named struct field or
// zero-argument method. Mutually exclusive with WithIndex.
func WithField(name string) Option {
	return func(o *options) { o.field = ByField(name) }
}

// WithPostprocess sets the final transform applied to every result.
func WithPostprocess(fn Postprocess) Option {
	return func(o *options) { o.post = fn }
}

// WithInitial seeds a DeltaCommand's previous value, suppressing the eager
// base evaluation that would otherwise happen at construction. It is only
// meaningful for NewDelta; NewCommand rejects it.
func WithInitial(v any) Option {
	return func(o *options) {
		o.initial = v
		o.hasInitial = true
	}
}

// buildOptions folds the option list and validates the mutually exclusive
// extraction modes.
func buildOptions(opts []Option) (options, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.index != nil && o.field != nil {
		return options{}, fmt.Errorf("index and field extraction cannot both be set: %w", ErrConfiguration)
	}
	return o, nil
}

func (o options) extractor() Extractor {
	if o.index != nil {
		return o.index
	}
	return o.field
}

// Command wraps a computation so that every read re-executes it. The value
// pipeline on each run is: merge arguments, invoke the base callable,
// apply the extractor, apply the postprocess. Nothing is cached between
// runs and errors from the base callable propagate unmodified.
//
// A Command is immutable after construction and safe for concurrent use
// provided its base callable is.
type Command struct {
	fn      TargetFunc
	bound   Args
	extract Extractor // nil when no extraction is configured
	post    Postprocess
}

// NewCommand wraps fn with the given options. It fails with an
// ErrConfiguration-wrapped error when both WithIndex and WithField are
// supplied, or when WithInitial is used (that option belongs to NewDelta).
func NewCommand(fn TargetFunc, opts ...Option) (*Command, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	if o.hasInitial {
		return nil, fmt.Errorf("WithInitial is only valid for delta commands: %w", ErrConfiguration)
	}
	if fn == nil {
		return nil, fmt.Errorf("base callable is nil: %w", ErrConfiguration)
	}
	return &Command{
		fn:      fn,
		bound:   o.bound,
		extract: o.extractor(),
		post:    o.post,
	}, nil
}

// MustCommand is like NewCommand but panics on a configuration error. It
// is intended for the static command catalogs in pkg/sources, where the
// options are compile-time constants.
func MustCommand(fn TargetFunc, opts ...Option) *Command {
	c, err := NewCommand(fn, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Run performs one full evaluation with extra call-time positional
// arguments appended after the bound ones.
func (c *Command) Run(extra ...any) (any, error) {
	return c.RunWith(Args{Pos: extra})
}

// RunWith performs one full evaluation with extra call-time positional and
// named arguments. Bound positionals come first; bound named keys win over
// call-time keys of the same name.
func (c *Command) RunWith(extra Args) (any, error) {
	v, err := c.runBase(extra)
	if err != nil {
		return nil, err
	}
	if c.post != nil {
		return c.post(v)
	}
	return v, nil
}

// runBase evaluates the base callable and extractor, skipping postprocess.
// DeltaCommand seeds and samples through this path.
func (c *Command) runBase(extra Args) (any, error) {
	v, err := c.fn(MergeArgs(c.bound, extra))
	if err != nil {
		return nil, err
	}
	if c.extract != nil {
		return c.extract.Extract(v)
	}
	return v, nil
}

// Resolve satisfies Evaluable with an argument-free run.
func (c *Command) Resolve() (any, error) {
	return c.RunWith(Args{})
}
