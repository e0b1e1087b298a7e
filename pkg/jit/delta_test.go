package jit

import (
	"errors"
	"testing"
)

// sampler returns a TargetFunc that yields the given values in order, plus
// a pointer to the number of times it has been invoked.
func sampler(values ...any) (TargetFunc, *int) {
	calls := 0
	return func(Args) (any, error) {
		v := values[calls]
		calls++
		return v, nil
	}, &calls
}

func TestDeltaSeedsEagerlyWithoutInitial(t *testing.T) {
	fn, calls := sampler(10, 15, 23)
	d := MustDelta(fn, Sub)

	// Construction itself must consume the first sample.
	if *calls != 1 {
		t.Fatalf("construction invoked base %d times, want 1", *calls)
	}
	if d.Previous() != 10 {
		t.Fatalf("seeded previous = %v, want 10", d.Previous())
	}

	v, err := d.Run()
	if err != nil {
		t.Fatalf("first Run() error: %v", err)
	}
	if v != int64(5) {
		t.Errorf("first Run() = %v, want 5", v)
	}
	if d.Previous() != 15 {
		t.Errorf("previous after first Run() = %v, want raw 15 (not the delta)", d.Previous())
	}

	v, err = d.Run()
	if err != nil {
		t.Fatalf("second Run() error: %v", err)
	}
	if v != int64(8) {
		t.Errorf("second Run() = %v, want 8", v)
	}
}

func TestDeltaExplicitInitialSkipsEagerSeed(t *testing.T) {
	fn, calls := sampler(90)
	d := MustDelta(fn, Sub, WithInitial(100))

	if *calls != 0 {
		t.Fatalf("construction invoked base %d times, want 0 with explicit initial", *calls)
	}

	v, err := d.Run()
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if v != int64(-10) {
		t.Errorf("Run() = %v, want -10", v)
	}
}

func TestDeltaSequentialRunsSeePrecedingRaw(t *testing.T) {
	fn, _ := sampler(0, 100, 250, 300, 1000)
	d := MustDelta(fn, Sub)

	want := []int64{100, 150, 50, 700}
	for i, w := range want {
		v, err := d.Run()
		if err != nil {
			t.Fatalf("Run() #%d error: %v", i+1, err)
		}
		if v != w {
			t.Errorf("Run() #%d = %v, want %d", i+1, v, w)
		}
	}
}

func TestDeltaSeedAppliesExtractorButNotPostprocess(t *testing.T) {
	type ioCounters struct {
		BytesRecv uint64
	}
	samples := []ioCounters{{BytesRecv: 1000}, {BytesRecv: 1500}}
	calls := 0
	postCalls := 0

	d := MustDelta(
		func(Args) (any, error) {
			v := samples[calls]
			calls++
			return v, nil
		},
		Sub,
		WithField("BytesRecv"),
		WithPostprocess(func(v any) (any, error) {
			postCalls++
			return v, nil
		}),
	)

	// Seeding went through the field extractor...
	if d.Previous() != uint64(1000) {
		t.Fatalf("seeded previous = %v, want extracted 1000", d.Previous())
	}
	// ...but not through postprocess.
	if postCalls != 0 {
		t.Fatalf("postprocess ran %d times during seeding, want 0", postCalls)
	}

	v, err := d.Run()
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if v != int64(500) {
		t.Errorf("Run() = %v, want 500", v)
	}
	if postCalls != 1 {
		t.Errorf("postprocess ran %d times, want 1 (deltas only)", postCalls)
	}
}

func TestDeltaPostprocessReceivesDelta(t *testing.T) {
	fn, _ := sampler(10, 30)
	d := MustDelta(fn, Sub, WithPostprocess(func(v any) (any, error) {
		n, ok := v.(int64)
		if !ok {
			t.Fatalf("postprocess received %T, want int64 delta", v)
		}
		// Per-second rate for a 2s refresh interval lives here, outside
		// the comparator.
		return n / 2, nil
	}))

	v, err := d.Run()
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if v != int64(10) {
		t.Errorf("Run() = %v, want 10", v)
	}
}

func TestDeltaComparatorErrorKeepsPrevious(t *testing.T) {
	sentinel := errors.New("bad pair")
	fn, _ := sampler(1, 2, 3)
	d := MustDelta(fn, func(current, previous any) (any, error) {
		if current == 2 {
			return nil, sentinel
		}
		return Sub(current, previous)
	})

	if _, err := d.Run(); !errors.Is(err, sentinel) {
		t.Fatalf("Run() error = %v, want comparator error", err)
	}
	// The failed sample was not recorded, so the next delta spans it.
	v, err := d.Run()
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if v != int64(2) {
		t.Errorf("Run() after comparator failure = %v, want 3-1=2", v)
	}
}

func TestDeltaNilComparatorRejected(t *testing.T) {
	fn, _ := sampler(1)
	if _, err := NewDelta(fn, nil); !errors.Is(err, ErrConfiguration) {
		t.Errorf("NewDelta(nil comparator) error = %v, want ErrConfiguration", err)
	}
}

func TestDeltaSeedErrorSurfacesAtConstruction(t *testing.T) {
	sentinel := errors.New("counter unavailable")
	_, err := NewDelta(func(Args) (any, error) { return nil, sentinel }, Sub)
	if !errors.Is(err, sentinel) {
		t.Errorf("NewDelta seed error = %v, want base error", err)
	}
}

func TestSubComparator(t *testing.T) {
	tests := []struct {
		name     string
		current  any
		previous any
		want     any
	}{
		{"ints", 15, 10, int64(5)},
		{"uint64 counters", uint64(2000), uint64(1500), int64(500)},
		{"floats", 2.5, 1.0, 1.5},
		{"mixed int and float", 3, 0.5, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sub(tt.current, tt.previous)
			if err != nil {
				t.Fatalf("Sub() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Sub(%v, %v) = %v (%T), want %v (%T)",
					tt.current, tt.previous, got, got, tt.want, tt.want)
			}
		})
	}

	t.Run("non-numeric fails", func(t *testing.T) {
		if _, err := Sub("a", 1); !errors.Is(err, ErrCoerce) {
			t.Errorf("Sub() error = %v, want ErrCoerce", err)
		}
	})
}
