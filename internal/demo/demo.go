//----------------------------------------------------------------------
// This file is part of dvroute.
// Copyright (C) 2022 Bernd Fix >Y<
//
// dvroute is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License,
// or (at your option) any later version.
//
// dvroute is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.
//
// SPDX-License-Identifier: AGPL3.0-or-later
//----------------------------------------------------------------------

// Package demo wires a small fixed topology of in-process dvroute routers
// together by direct synchronous handler calls, standing in for the out-of-scope
// geometric network simulator: it exercises the core library end-to-end
// without needing real sockets.
package demo

import (
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"dvroute/core"
)

// fanout is a Sender that dispatches each call to every leg registered
// on it, so a router with several links can still be driven by a single
// installed Sender. Each leg independently filters by its own port, per
// packetTargets, so only the legs the packet is actually addressed to
// (or, under flood, every leg except the excluded one) run.
type fanout struct {
	legs []core.Sender[core.IntID]
}

func (f *fanout) Send(pkt core.Packet, ports []core.Port, flood bool) {
	for _, leg := range f.legs {
		leg.Send(pkt, ports, flood)
	}
}

// Topology is a small fixed network of named routers connected by point-
// to-point links, used by cmd/dvrouter's "demo" subcommand and by this
// package's end-to-end tests.
type Topology struct {
	Routers map[string]*core.Router[core.IntID]
	Clock   clockwork.FakeClock

	fanouts map[string]*fanout
	log     *slog.Logger
}

// NewTopology builds an empty topology sharing a single fake clock, so
// that timer-driven behavior across every router can be advanced in
// lockstep by tests.
func NewTopology(log *slog.Logger) *Topology {
	return &Topology{
		Routers: make(map[string]*core.Router[core.IntID]),
		Clock:   clockwork.NewFakeClock(),
		fanouts: make(map[string]*fanout),
		log:     log,
	}
}

// AddRouter constructs a named router in the topology, driven by the
// topology's shared clock. Its timer is a no-op (core.NoTimer): Tick
// drives every router's HandleTimer explicitly, in lockstep, instead of
// letting each one's own ClockTimer goroutine race against that. Its
// Sender is a fanout with no legs yet; Connect adds one leg per link the
// router participates in.
func (t *Topology) AddRouter(name string, poisonMode bool, timerInterval time.Duration) *core.Router[core.IntID] {
	fo := &fanout{}
	r := core.NewRouter[core.IntID](
		poisonMode, timerInterval,
		core.WithClock[core.IntID](t.Clock),
		core.WithTimerFunc[core.IntID](core.NoTimer),
		core.WithLogger[core.IntID](t.log.With("router", name)),
		core.WithSender[core.IntID](fo),
	)
	t.Routers[name] = r
	t.fanouts[name] = fo
	return r
}

// Connect wires a, on port portA, to b, on port portB: a data or route
// packet a sends addressed to portA is delivered straight into b's
// handlers on portB, and vice versa — synchronous, return value ignored,
// exactly the sink contract §5 describes — standing in for a real socket
// or channel.
func (t *Topology) Connect(a string, portA core.Port, latencyA core.Latency, b string, portB core.Port, latencyB core.Latency) {
	ra, rb := t.Routers[a], t.Routers[b]

	ra.HandleLinkUp(portA, latencyA)
	rb.HandleLinkUp(portB, latencyB)

	t.fanouts[a].legs = append(t.fanouts[a].legs, chainSender(rb, portA, portB))
	t.fanouts[b].legs = append(t.fanouts[b].legs, chainSender(ra, portB, portA))
}

// chainSender returns a Sender that, installed as one leg of self's
// fanout, delivers every packet addressed to selfPort directly into
// peer's handlers on peerPort.
func chainSender(peer *core.Router[core.IntID], selfPort, peerPort core.Port) core.Sender[core.IntID] {
	return core.SenderFunc[core.IntID](func(pkt core.Packet, ports []core.Port, flood bool) {
		if !packetTargets(ports, flood, selfPort) {
			return
		}
		switch p := pkt.(type) {
		case core.RoutePacket[core.IntID]:
			peer.HandleRouteAdvertisement(p.Destination, peerPort, p.Latency)
		case core.DataPacket[core.IntID]:
			peer.HandleDataPacket(p, peerPort)
		}
	})
}

// packetTargets reports whether a packet sent to ports (or flooded
// except ports) would reach a neighbor reachable via exceptPort.
func packetTargets(ports []core.Port, flood bool, exceptPort core.Port) bool {
	for _, p := range ports {
		if p == exceptPort {
			return !flood
		}
	}
	return flood
}

// Tick advances the shared clock by d and invokes HandleTimer on every
// router in the topology, in map-iteration (non-deterministic) order —
// callers that need deterministic timer fan-out should drive individual
// routers' HandleTimer directly instead.
func (t *Topology) Tick(d time.Duration) {
	t.Clock.Advance(d)
	for _, r := range t.Routers {
		r.HandleTimer()
	}
}
