// Package sysstat publishes gopsutil-backed live values for CPU, memory,
// disk, load, and host information. Every constructor returns a jit value
// that re-samples the underlying counters on each read; nothing here
// caches.
package sysstat

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"

	"gitlab.com/tinyland/lab/tile-pulse/pkg/jit"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/sources"
)

// --- CPU ---

// CPUPercent is the overall CPU usage percentage (0-100) since the
// previous sample gopsutil retains internally.
func CPUPercent() *jit.Command {
	return jit.MustCommand(jit.Thunk(func() (any, error) {
		pcts, err := cpu.Percent(0, false)
		if err != nil {
			return nil, err
		}
		if len(pcts) == 0 {
			return nil, fmt.Errorf("sysstat: no cpu usage data")
		}
		return pcts[0], nil
	}), jit.WithPostprocess(sources.Round(1)))
}

// CPUPerCore is the per-core usage percentage list.
func CPUPerCore() *jit.Command {
	return jit.MustCommand(jit.Thunk(func() (any, error) {
		return cpu.Percent(0, true)
	}))
}

// CPUCount is the logical CPU count.
func CPUCount() *jit.Command {
	return jit.MustCommand(jit.Thunk(func() (any, error) {
		return cpu.Counts(true)
	}))
}

// CPUCoreCount is the physical core count.
func CPUCoreCount() *jit.Command {
	return jit.MustCommand(jit.Thunk(func() (any, error) {
		return cpu.Counts(false)
	}))
}

// --- Memory ---

func virtualMemory() (any, error) {
	return mem.VirtualMemory()
}

// MemoryUsedPercent is the physical memory usage percentage, read by field
// extraction from gopsutil's VirtualMemoryStat.
func MemoryUsedPercent() *jit.Command {
	return jit.MustCommand(jit.Thunk(virtualMemory),
		jit.WithField("UsedPercent"),
		jit.WithPostprocess(sources.Round(1)))
}

// MemoryUsed is the used physical memory formatted as human-readable bytes.
func MemoryUsed() *jit.Command {
	return jit.MustCommand(jit.Thunk(virtualMemory),
		jit.WithField("Used"),
		jit.WithPostprocess(sources.HumanBytes))
}

// MemoryUsedBytes is the used physical memory as a raw byte count.
func MemoryUsedBytes() *jit.Command {
	return jit.MustCommand(jit.Thunk(virtualMemory), jit.WithField("Used"))
}

// MemoryTotal is the total physical memory formatted as human-readable
// bytes.
func MemoryTotal() *jit.Command {
	return jit.MustCommand(jit.Thunk(virtualMemory),
		jit.WithField("Total"),
		jit.WithPostprocess(sources.HumanBytes))
}

// MemoryTotalBytes is the total physical memory as a raw byte count.
func MemoryTotalBytes() *jit.Command {
	return jit.MustCommand(jit.Thunk(virtualMemory), jit.WithField("Total"))
}

// MemoryAvailable is the available physical memory formatted as
// human-readable bytes.
func MemoryAvailable() *jit.Command {
	return jit.MustCommand(jit.Thunk(virtualMemory),
		jit.WithField("Available"),
		jit.WithPostprocess(sources.HumanBytes))
}

// --- Load ---

// LoadAvg1 is the 1-minute load average.
func LoadAvg1() *jit.Command {
	return jit.MustCommand(jit.Thunk(func() (any, error) {
		return load.Avg()
	}), jit.WithField("Load1"), jit.WithPostprocess(sources.Round(2)))
}

// LoadAvg returns all three load averages as a slice [1m, 5m, 15m].
func LoadAvg() *jit.Command {
	return jit.MustCommand(jit.Thunk(func() (any, error) {
		avg, err := load.Avg()
		if err != nil {
			return nil, err
		}
		return []float64{avg.Load1, avg.Load5, avg.Load15}, nil
	}))
}

// --- Host ---

// Hostname is the machine's host name.
func Hostname() *jit.Command {
	return jit.MustCommand(jit.Thunk(func() (any, error) {
		return host.Info()
	}), jit.WithField("Hostname"))
}

// KernelVersion is the running kernel release string.
func KernelVersion() *jit.Command {
	return jit.MustCommand(jit.Thunk(func() (any, error) {
		return host.KernelVersion()
	}))
}

// Uptime is the time since boot, formatted as a Go duration string with
// seconds stripped (e.g. "26h3m").
func Uptime() *jit.Command {
	return jit.MustCommand(jit.Thunk(func() (any, error) {
		secs, err := host.Uptime()
		if err != nil {
			return nil, err
		}
		return time.Duration(secs) * time.Second, nil
	}), jit.WithPostprocess(func(v any) (any, error) {
		d := v.(time.Duration)
		return d.Truncate(time.Minute).String(), nil
	}))
}

// --- Disk ---

// Mountpoints lists the mount paths of all physical partitions.
func Mountpoints() *jit.Command {
	return jit.MustCommand(jit.Thunk(func() (any, error) {
		parts, err := disk.Partitions(false)
		if err != nil {
			return nil, err
		}
		mounts := make([]string, len(parts))
		for i, p := range parts {
			mounts[i] = p.Mountpoint
		}
		return mounts, nil
	}))
}

func diskUsage(path string) (any, error) {
	return disk.Usage(path)
}

// DiskUsedPercent is the usage percentage of the partition at path.
func DiskUsedPercent(path string) *jit.Command {
	return jit.MustCommand(jit.Thunk(func() (any, error) { return diskUsage(path) }),
		jit.WithField("UsedPercent"),
		jit.WithPostprocess(sources.Round(1)))
}

// DiskUsed is the used space of the partition at path in human-readable
// bytes.
func DiskUsed(path string) *jit.Command {
	return jit.MustCommand(jit.Thunk(func() (any, error) { return diskUsage(path) }),
		jit.WithField("Used"),
		jit.WithPostprocess(sources.HumanBytes))
}

// DiskTotal is the capacity of the partition at path in human-readable
// bytes.
func DiskTotal(path string) *jit.Command {
	return jit.MustCommand(jit.Thunk(func() (any, error) { return diskUsage(path) }),
		jit.WithField("Total"),
		jit.WithPostprocess(sources.HumanBytes))
}

// Catalog returns the named sysstat values addressable from custom tiles
// and the -once listing.
func Catalog() sources.Catalog {
	return sources.Catalog{
		"cpu.percent":     CPUPercent(),
		"cpu.percore":     CPUPerCore(),
		"cpu.threads":     CPUCount(),
		"cpu.cores":       CPUCoreCount(),
		"mem.percent":     MemoryUsedPercent(),
		"mem.used":        MemoryUsed(),
		"mem.total":       MemoryTotal(),
		"mem.available":   MemoryAvailable(),
		"load.1m":         LoadAvg1(),
		"load.all":        LoadAvg(),
		"host.name":       Hostname(),
		"host.kernel":     KernelVersion(),
		"host.uptime":     Uptime(),
		"disk.mounts":     Mountpoints(),
	}
}
