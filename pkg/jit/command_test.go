package jit

import (
	"errors"
	"testing"
)

// counterFunc returns a TargetFunc that reports how many times it has been
// invoked, plus a pointer to the counter for assertions.
func counterFunc(result any) (TargetFunc, *int) {
	calls := 0
	return func(Args) (any, error) {
		calls++
		return result, nil
	}, &calls
}

func TestRunReturnsBaseResult(t *testing.T) {
	fn, calls := counterFunc("hello")
	c := MustCommand(fn)

	v, err := c.Run()
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if v != "hello" {
		t.Errorf("Run() = %v, want %q", v, "hello")
	}
	if *calls != 1 {
		t.Errorf("base callable invoked %d times, want 1", *calls)
	}
}

func TestEveryRunReexecutes(t *testing.T) {
	n := 0
	c := MustCommand(func(Args) (any, error) {
		n++
		return n, nil
	})

	for want := 1; want <= 3; want++ {
		v, err := c.Run()
		if err != nil {
			t.Fatalf("Run() #%d error: %v", want, err)
		}
		if v != want {
			t.Errorf("Run() #%d = %v, want %d", want, v, want)
		}
	}
}

func TestMergeArgsOrdering(t *testing.T) {
	tests := []struct {
		name    string
		bound   Args
		extra   Args
		wantPos []any
		wantKey string
		wantVal any
	}{
		{
			name:    "bound positionals come first",
			bound:   Args{Pos: []any{1, 2}},
			extra:   Args{Pos: []any{3}},
			wantPos: []any{1, 2, 3},
		},
		{
			name:    "call-time only",
			bound:   Args{},
			extra:   Args{Pos: []any{"x"}},
			wantPos: []any{"x"},
		},
		{
			name:    "bound named key wins on conflict",
			bound:   Args{Named: map[string]any{"unit": "MiB"}},
			extra:   Args{Named: map[string]any{"unit": "KiB"}},
			wantKey: "unit",
			wantVal: "MiB",
		},
		{
			name:    "call-time named key survives when unbound",
			bound:   Args{Named: map[string]any{"a": 1}},
			extra:   Args{Named: map[string]any{"b": 2}},
			wantKey: "b",
			wantVal: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeArgs(tt.bound, tt.extra)
			if tt.wantPos != nil {
				if len(got.Pos) != len(tt.wantPos) {
					t.Fatalf("merged Pos = %v, want %v", got.Pos, tt.wantPos)
				}
				for i := range tt.wantPos {
					if got.Pos[i] != tt.wantPos[i] {
						t.Errorf("Pos[%d] = %v, want %v", i, got.Pos[i], tt.wantPos[i])
					}
				}
			}
			if tt.wantKey != "" {
				if got.Named[tt.wantKey] != tt.wantVal {
					t.Errorf("Named[%q] = %v, want %v", tt.wantKey, got.Named[tt.wantKey], tt.wantVal)
				}
			}
		})
	}
}

func TestMergeArgsDoesNotMutateInputs(t *testing.T) {
	bound := Args{Pos: []any{1}, Named: map[string]any{"k": "bound"}}
	extra := Args{Pos: []any{2}, Named: map[string]any{"k": "extra"}}

	MergeArgs(bound, extra)

	if extra.Named["k"] != "extra" {
		t.Errorf("extra.Named mutated: %v", extra.Named)
	}
	if len(bound.Pos) != 1 || len(extra.Pos) != 1 {
		t.Error("input positional slices were mutated")
	}
}

func TestBoundArgsDeliveredToCallable(t *testing.T) {
	var seen Args
	c := MustCommand(func(a Args) (any, error) {
		seen = a
		return nil, nil
	}, WithArgs("eth0"), WithNamed("percpu", true))

	if _, err := c.Run("extra"); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if len(seen.Pos) != 2 || seen.Pos[0] != "eth0" || seen.Pos[1] != "extra" {
		t.Errorf("positionals = %v, want [eth0 extra]", seen.Pos)
	}
	if seen.Named["percpu"] != true {
		t.Errorf("Named[percpu] = %v, want true", seen.Named["percpu"])
	}
}

func TestIndexExtraction(t *testing.T) {
	tests := []struct {
		name   string
		result any
		key    any
		want   any
	}{
		{"map string key", map[string]int{"used": 42}, "used", 42},
		{"slice index", []string{"a", "b", "c"}, 1, "b"},
		{"array index", [2]float64{1.5, 2.5}, 0, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := MustCommand(func(Args) (any, error) { return tt.result, nil }, WithIndex(tt.key))
			v, err := c.Run()
			if err != nil {
				t.Fatalf("Run() error: %v", err)
			}
			if v != tt.want {
				t.Errorf("Run() = %v, want %v", v, tt.want)
			}
		})
	}
}

func TestIndexExtractionMissingKeyFails(t *testing.T) {
	tests := []struct {
		name   string
		result any
		key    any
	}{
		{"missing map key", map[string]int{"used": 42}, "free"},
		{"index out of range", []int{1, 2}, 5},
		{"negative index", []int{1, 2}, -1},
		{"unindexable result", 7, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := MustCommand(func(Args) (any, error) { return tt.result, nil }, WithIndex(tt.key))
			if _, err := c.Run(); !errors.Is(err, ErrLookup) {
				t.Errorf("Run() error = %v, want ErrLookup", err)
			}
		})
	}
}

type vmStat struct {
	Used  uint64
	Total uint64
}

func (v vmStat) UsedPercent() float64 {
	return float64(v.Used) / float64(v.Total) * 100
}

func TestFieldExtraction(t *testing.T) {
	stat := vmStat{Used: 512, Total: 1024}

	t.Run("struct field", func(t *testing.T) {
		c := MustCommand(func(Args) (any, error) { return stat, nil }, WithField("Used"))
		v, err := c.Run()
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		if v != uint64(512) {
			t.Errorf("Run() = %v, want 512", v)
		}
	})

	t.Run("pointer dereference", func(t *testing.T) {
		c := MustCommand(func(Args) (any, error) { return &stat, nil }, WithField("Total"))
		v, err := c.Run()
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		if v != uint64(1024) {
			t.Errorf("Run() = %v, want 1024", v)
		}
	})

	t.Run("zero-arg method", func(t *testing.T) {
		c := MustCommand(func(Args) (any, error) { return stat, nil }, WithField("UsedPercent"))
		v, err := c.Run()
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		if v != 50.0 {
			t.Errorf("Run() = %v, want 50", v)
		}
	})

	t.Run("missing field fails with ErrLookup", func(t *testing.T) {
		c := MustCommand(func(Args) (any, error) { return stat, nil }, WithField("Free"))
		if _, err := c.Run(); !errors.Is(err, ErrLookup) {
			t.Errorf("Run() error = %v, want ErrLookup", err)
		}
	})
}

func TestBothExtractorsIsConfigurationError(t *testing.T) {
	fn, _ := counterFunc(nil)
	_, err := NewCommand(fn, WithIndex("k"), WithField("F"))
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("NewCommand(index+field) error = %v, want ErrConfiguration", err)
	}

	// Order of options must not matter.
	_, err = NewCommand(fn, WithField("F"), WithIndex("k"))
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("NewCommand(field+index) error = %v, want ErrConfiguration", err)
	}
}

func TestInitialOnPlainCommandIsConfigurationError(t *testing.T) {
	fn, _ := counterFunc(nil)
	_, err := NewCommand(fn, WithInitial(10))
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("NewCommand(WithInitial) error = %v, want ErrConfiguration", err)
	}
}

func TestPostprocessAppliesAfterExtraction(t *testing.T) {
	c := MustCommand(
		func(Args) (any, error) { return map[string]int{"pct": 73}, nil },
		WithIndex("pct"),
		WithPostprocess(func(v any) (any, error) {
			// Extraction must already have narrowed the map to its value.
			n, ok := v.(int)
			if !ok {
				t.Fatalf("postprocess received %T, want int", v)
			}
			return n * 2, nil
		}),
	)

	v, err := c.Run()
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if v != 146 {
		t.Errorf("Run() = %v, want 146", v)
	}
}

func TestBaseErrorPropagatesUnmodified(t *testing.T) {
	sentinel := errors.New("probe offline")
	c := MustCommand(func(Args) (any, error) { return nil, sentinel },
		WithPostprocess(func(v any) (any, error) {
			t.Fatal("postprocess must not run when the base fails")
			return nil, nil
		}))

	if _, err := c.Run(); !errors.Is(err, sentinel) {
		t.Errorf("Run() error = %v, want the base callable's error", err)
	}
}

func TestNilCallableRejected(t *testing.T) {
	if _, err := NewCommand(nil); !errors.Is(err, ErrConfiguration) {
		t.Errorf("NewCommand(nil) error = %v, want ErrConfiguration", err)
	}
}
