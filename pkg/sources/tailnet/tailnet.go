// Package tailnet publishes live values from the local tailscaled daemon:
// backend state, peer counts, and a peer summary for the tailnet tile.
// Like every source, a read here is a fresh LocalAPI round trip.
package tailnet

import (
	"context"
	"fmt"
	"time"

	"tailscale.com/ipn/ipnstate"

	"gitlab.com/tinyland/lab/tile-pulse/pkg/jit"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/sources"
)

// StatusClient abstracts the local Tailscale daemon API so tests can
// inject a fixture. tailscale.com/client/local.Client satisfies it.
type StatusClient interface {
	Status(ctx context.Context) (*ipnstate.Status, error)
}

// Peer summarises one node of the tailnet for display.
type Peer struct {
	Hostname string
	OS       string
	IP       string
	Online   bool
	LastSeen time.Time
	ExitNode bool
}

// Snapshot is one observation of the tailnet, the unit the tailnet tile
// renders.
type Snapshot struct {
	BackendState   string
	SelfHostname   string
	SelfIP         string
	MagicDNSSuffix string
	OnlinePeers    int
	TotalPeers     int
	Peers          []Peer
}

// Source builds tailnet values against a StatusClient.
type Source struct {
	client  StatusClient
	timeout time.Duration
}

// New returns a Source reading through client with a 5 second call
// timeout.
func New(client StatusClient) *Source {
	return &Source{client: client, timeout: 5 * time.Second}
}

// Snapshot performs one LocalAPI call and maps the daemon status into the
// display form.
func (s *Source) Snapshot(ctx context.Context) (*Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	st, err := s.client.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("tailnet status: %w", err)
	}
	if st == nil {
		return nil, fmt.Errorf("tailnet status: nil response")
	}
	return mapStatus(st), nil
}

func mapStatus(st *ipnstate.Status) *Snapshot {
	snap := &Snapshot{
		BackendState:   st.BackendState,
		MagicDNSSuffix: st.MagicDNSSuffix,
	}
	if st.CurrentTailnet != nil && st.CurrentTailnet.MagicDNSSuffix != "" {
		snap.MagicDNSSuffix = st.CurrentTailnet.MagicDNSSuffix
	}

	if st.Self != nil {
		snap.SelfHostname = st.Self.HostName
		if len(st.Self.TailscaleIPs) > 0 {
			snap.SelfIP = st.Self.TailscaleIPs[0].String()
		}
	}

	// st.Peers() yields sorted keys, keeping the peer list deterministic.
	for _, pub := range st.Peers() {
		ps := st.Peer[pub]
		if ps == nil {
			continue
		}
		p := Peer{
			Hostname: ps.HostName,
			OS:       ps.OS,
			Online:   ps.Online,
			LastSeen: ps.LastSeen,
			ExitNode: ps.ExitNode,
		}
		if len(ps.TailscaleIPs) > 0 {
			p.IP = ps.TailscaleIPs[0].String()
		}
		snap.Peers = append(snap.Peers, p)
		snap.TotalPeers++
		if p.Online {
			snap.OnlinePeers++
		}
	}
	return snap
}

// snapshotValue is the base callable shared by the jit constructors below.
func (s *Source) snapshotValue(args jit.Args) (any, error) {
	return s.Snapshot(context.Background())
}

// BackendState is the daemon state string, e.g. "Running" or "Stopped".
func (s *Source) BackendState() *jit.Command {
	return jit.MustCommand(s.snapshotValue, jit.WithField("BackendState"))
}

// OnlinePeers is the count of currently online peers.
func (s *Source) OnlinePeers() *jit.Command {
	return jit.MustCommand(s.snapshotValue, jit.WithField("OnlinePeers"))
}

// TotalPeers is the count of all known peers.
func (s *Source) TotalPeers() *jit.Command {
	return jit.MustCommand(s.snapshotValue, jit.WithField("TotalPeers"))
}

// SelfHostname is this node's name on the tailnet.
func (s *Source) SelfHostname() *jit.Command {
	return jit.MustCommand(s.snapshotValue, jit.WithField("SelfHostname"))
}

// Catalog returns the named tailnet values.
func (s *Source) Catalog() sources.Catalog {
	return sources.Catalog{
		"state":  s.BackendState(),
		"online": s.OnlinePeers(),
		"peers":  s.TotalPeers(),
		"self":   s.SelfHostname(),
	}
}
