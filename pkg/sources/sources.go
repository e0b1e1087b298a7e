// Package sources holds the shared plumbing for tile-pulse data source
// catalogs. Each sub-package (sysstat, netstat, hostinfo, webstat, tailnet,
// kubeinfo) publishes named jit values that tiles bind into templates and
// gauges; this package provides the catalog container and the common
// display postprocessors they share.
package sources

import (
	"fmt"
	"math"
	"sort"

	"gitlab.com/tinyland/lab/tile-pulse/pkg/jit"
)

// Catalog is an ordered-by-name collection of live values. The -values
// listing and the tiles address values by catalog name.
type Catalog map[string]jit.Evaluable

// Names returns the catalog keys in sorted order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge returns a new catalog containing the entries of c and every other
// catalog, with each other's entries prefixed by its given name and a dot.
func Merge(groups map[string]Catalog) Catalog {
	out := Catalog{}
	for prefix, group := range groups {
		for name, v := range group {
			out[prefix+"."+name] = v
		}
	}
	return out
}

// --- display postprocessors ---

var byteUnits = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB"}

// HumanBytes formats a byte count the way the dashboard displays sizes:
// "512B", "24.3MiB", "1.2GiB". It is a jit postprocess.
func HumanBytes(v any) (any, error) {
	f, err := jit.Float(jit.Static(v))
	if err != nil {
		return nil, err
	}

	neg := f < 0
	if neg {
		f = -f
	}

	unit := 0
	for f >= 1024 && unit < len(byteUnits)-1 {
		f /= 1024
		unit++
	}

	var s string
	if unit == 0 {
		s = fmt.Sprintf("%.0f%s", f, byteUnits[unit])
	} else {
		s = fmt.Sprintf("%.1f%s", f, byteUnits[unit])
	}
	if neg {
		s = "-" + s
	}
	return s, nil
}

// Round returns a jit postprocess that rounds a numeric value to the given
// number of decimal places.
func Round(places int) jit.Postprocess {
	scale := math.Pow10(places)
	return func(v any) (any, error) {
		f, err := jit.Float(jit.Static(v))
		if err != nil {
			return nil, err
		}
		return math.Round(f*scale) / scale, nil
	}
}

// Percent returns a jit postprocess that formats a numeric value as "42%"
// with no decimals.
func Percent(v any) (any, error) {
	f, err := jit.Float(jit.Static(v))
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("%.0f%%", f), nil
}
