package sysstat

import (
	"testing"

	"gitlab.com/tinyland/lab/tile-pulse/pkg/jit"
)

// These run against the actual host, mirroring how the values are consumed
// by tiles: through the typed accessors.

func TestCPUPercentInRange(t *testing.T) {
	pct, err := jit.Float(CPUPercent())
	if err != nil {
		t.Fatalf("CPUPercent resolve error: %v", err)
	}
	if pct < 0 || pct > 100 {
		t.Errorf("CPUPercent = %f, want 0-100", pct)
	}
}

func TestCPUCountPositive(t *testing.T) {
	n, err := jit.Int(CPUCount())
	if err != nil {
		t.Fatalf("CPUCount resolve error: %v", err)
	}
	if n <= 0 {
		t.Errorf("CPUCount = %d, want > 0", n)
	}
}

func TestMemoryFieldsConsistent(t *testing.T) {
	used, err := jit.Float(MemoryUsedBytes())
	if err != nil {
		t.Fatalf("MemoryUsedBytes resolve error: %v", err)
	}
	total, err := jit.Float(MemoryTotalBytes())
	if err != nil {
		t.Fatalf("MemoryTotalBytes resolve error: %v", err)
	}
	if used <= 0 || total <= 0 {
		t.Fatalf("used=%f total=%f, want both > 0", used, total)
	}
	if used > total {
		t.Errorf("used (%f) exceeds total (%f)", used, total)
	}
}

func TestMemoryUsedIsHumanReadable(t *testing.T) {
	s, err := jit.String(MemoryUsed())
	if err != nil {
		t.Fatalf("MemoryUsed resolve error: %v", err)
	}
	if s == "" {
		t.Fatal("MemoryUsed rendered empty")
	}
	// Expect a unit suffix such as GiB or MiB.
	last := s[len(s)-1]
	if last != 'B' {
		t.Errorf("MemoryUsed = %q, want a byte-unit suffix", s)
	}
}

func TestMountpointsIterable(t *testing.T) {
	mounts, err := jit.Seq(Mountpoints())
	if err != nil {
		t.Fatalf("Mountpoints resolve error: %v", err)
	}
	if len(mounts) == 0 {
		t.Skip("no physical partitions visible")
	}
	if _, ok := mounts[0].(string); !ok {
		t.Errorf("Mountpoints element is %T, want string", mounts[0])
	}
}

func TestCatalogHasCoreEntries(t *testing.T) {
	c := Catalog()
	for _, name := range []string{"cpu.percent", "mem.percent", "host.uptime"} {
		if _, ok := c[name]; !ok {
			t.Errorf("catalog missing %q", name)
		}
	}
}
