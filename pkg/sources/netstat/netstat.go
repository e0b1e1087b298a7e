// Package netstat publishes live network throughput values. The kernel
// exposes cumulative byte counters; the per-refresh rates come from
// DeltaCommands that subtract the previous sample, which is the canonical
// use of the stateful delta wrapper.
package netstat

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/net"

	"gitlab.com/tinyland/lab/tile-pulse/pkg/jit"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/sources"
)

// aggregateCounters samples the cumulative IO counters summed across all
// interfaces. ByField extraction then narrows to one counter, so the index
// step lives here rather than on the command.
func aggregateCounters() (any, error) {
	cs, err := net.IOCounters(false)
	if err != nil {
		return nil, err
	}
	if len(cs) == 0 {
		return nil, fmt.Errorf("netstat: no io counters")
	}
	return cs[0], nil
}

// --- cumulative totals ---

// TotalRecv is the cumulative bytes received since boot, human-readable.
func TotalRecv() *jit.Command {
	return jit.MustCommand(jit.Thunk(aggregateCounters),
		jit.WithField("BytesRecv"),
		jit.WithPostprocess(sources.HumanBytes))
}

// TotalSent is the cumulative bytes sent since boot, human-readable.
func TotalSent() *jit.Command {
	return jit.MustCommand(jit.Thunk(aggregateCounters),
		jit.WithField("BytesSent"),
		jit.WithPostprocess(sources.HumanBytes))
}

// TotalRecvBytes is the raw cumulative received byte counter.
func TotalRecvBytes() *jit.Command {
	return jit.MustCommand(jit.Thunk(aggregateCounters), jit.WithField("BytesRecv"))
}

// TotalSentBytes is the raw cumulative sent byte counter.
func TotalSentBytes() *jit.Command {
	return jit.MustCommand(jit.Thunk(aggregateCounters), jit.WithField("BytesSent"))
}

// --- per-refresh deltas ---

// RecvDelta reports the bytes received since its previous read. The first
// read is a delta against an eager sample taken at construction, so it is
// meaningful rather than the whole since-boot counter.
func RecvDelta() (*jit.DeltaCommand, error) {
	return jit.NewDelta(jit.Thunk(aggregateCounters), jit.Sub,
		jit.WithField("BytesRecv"))
}

// SentDelta reports the bytes sent since its previous read.
func SentDelta() (*jit.DeltaCommand, error) {
	return jit.NewDelta(jit.Thunk(aggregateCounters), jit.Sub,
		jit.WithField("BytesSent"))
}

// RecvRate reports the received bytes per second, assuming the value is
// read once per interval. The division by elapsed time is a postprocess on
// the delta, not part of the comparator.
func RecvRate(interval time.Duration) (*jit.DeltaCommand, error) {
	return jit.NewDelta(jit.Thunk(aggregateCounters), jit.Sub,
		jit.WithField("BytesRecv"),
		jit.WithPostprocess(perSecond(interval)))
}

// SentRate reports the sent bytes per second under the same assumption.
func SentRate(interval time.Duration) (*jit.DeltaCommand, error) {
	return jit.NewDelta(jit.Thunk(aggregateCounters), jit.Sub,
		jit.WithField("BytesSent"),
		jit.WithPostprocess(perSecond(interval)))
}

func perSecond(interval time.Duration) jit.Postprocess {
	secs := interval.Seconds()
	if secs <= 0 {
		secs = 1
	}
	return func(v any) (any, error) {
		f, err := jit.Float(jit.Static(v))
		if err != nil {
			return nil, err
		}
		return f / secs, nil
	}
}

// Catalog returns the named netstat values. Delta-backed entries carry
// per-instance state, so each Catalog call builds fresh instances; sharing
// one across consumers would make them perturb each other's previous
// sample.
func Catalog() (sources.Catalog, error) {
	down, err := RecvDelta()
	if err != nil {
		return nil, err
	}
	up, err := SentDelta()
	if err != nil {
		return nil, err
	}
	return sources.Catalog{
		"net.down":       down,
		"net.up":         up,
		"net.down.total": TotalRecv(),
		"net.up.total":   TotalSent(),
	}, nil
}
