package sources

import (
	"testing"

	"gitlab.com/tinyland/lab/tile-pulse/pkg/jit"
)

func TestHumanBytes(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{0, "0B"},
		{512, "512B"},
		{1024, "1.0KiB"},
		{uint64(1536), "1.5KiB"},
		{10 * 1024 * 1024, "10.0MiB"},
		{int64(3) * 1024 * 1024 * 1024, "3.0GiB"},
		{-2048, "-2.0KiB"},
	}

	for _, tt := range tests {
		got, err := HumanBytes(tt.in)
		if err != nil {
			t.Fatalf("HumanBytes(%v) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("HumanBytes(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRound(t *testing.T) {
	r := Round(1)
	got, err := r(73.456)
	if err != nil {
		t.Fatalf("Round error: %v", err)
	}
	if got != 73.5 {
		t.Errorf("Round(1)(73.456) = %v, want 73.5", got)
	}
}

func TestPercent(t *testing.T) {
	got, err := Percent(42.4)
	if err != nil {
		t.Fatalf("Percent error: %v", err)
	}
	if got != "42%" {
		t.Errorf("Percent(42.4) = %q, want %q", got, "42%")
	}
}

func TestCatalogNamesSorted(t *testing.T) {
	c := Catalog{
		"mem.used": jit.Static(1),
		"cpu.pct":  jit.Static(2),
		"net.down": jit.Static(3),
	}
	names := c.Names()
	want := []string{"cpu.pct", "mem.used", "net.down"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestMergePrefixesEntries(t *testing.T) {
	merged := Merge(map[string]Catalog{
		"cpu": {"pct": jit.Static(1)},
		"mem": {"used": jit.Static(2)},
	})
	if _, ok := merged["cpu.pct"]; !ok {
		t.Error("merged catalog missing cpu.pct")
	}
	if _, ok := merged["mem.used"]; !ok {
		t.Error("merged catalog missing mem.used")
	}
}
