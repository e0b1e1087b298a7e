package hostinfo

import (
	"errors"
	"testing"

	"gitlab.com/tinyland/lab/tile-pulse/pkg/jit"
)

func TestAfterColon(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"Model name:  AMD Ryzen 7", "AMD Ryzen 7", false},
		{"key:value", "value", false},
		{"a:b:c", "b:c", false},
		{"no separator here", "", true},
	}

	for _, tt := range tests {
		got, err := afterColon(tt.in)
		if tt.wantErr {
			if !errors.Is(err, jit.ErrLookup) {
				t.Errorf("afterColon(%q) error = %v, want ErrLookup", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("afterColon(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("afterColon(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSecondLine(t *testing.T) {
	got, err := secondLine("Name\r\nIntel Core i7\r\n")
	if err != nil {
		t.Fatalf("secondLine error: %v", err)
	}
	if got != "Intel Core i7" {
		t.Errorf("secondLine = %q, want %q", got, "Intel Core i7")
	}

	if _, err := secondLine("only one line"); !errors.Is(err, jit.ErrLookup) {
		t.Errorf("secondLine single-line error = %v, want ErrLookup", err)
	}
}

func TestPostprocessRejectsNonString(t *testing.T) {
	if _, err := afterColon(42); !errors.Is(err, jit.ErrCoerce) {
		t.Errorf("afterColon(42) error = %v, want ErrCoerce", err)
	}
	if _, err := secondLine(42); !errors.Is(err, jit.ErrCoerce) {
		t.Errorf("secondLine(42) error = %v, want ErrCoerce", err)
	}
}

func TestKernelResolves(t *testing.T) {
	s, err := jit.String(Kernel())
	if err != nil {
		t.Fatalf("Kernel resolve error: %v", err)
	}
	if s == "" {
		t.Error("Kernel rendered empty")
	}
}

func TestCatalogEntriesNeverFailHard(t *testing.T) {
	// Shell-backed entries are fallback-wrapped, so a missing tool must
	// still produce a displayable string.
	c := Catalog()
	for _, name := range []string{"cpu.model", "distro"} {
		s, err := jit.String(c[name])
		if err != nil {
			t.Errorf("catalog %q resolve error: %v", name, err)
			continue
		}
		if s == "" {
			t.Errorf("catalog %q rendered empty", name)
		}
	}
}
