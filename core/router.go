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

package core

import (
	"fmt"
	"log/slog"
	"time"
)

// Router is a single distance-vector routing node. Events are delivered
// serially by the caller; a Router carries no mutex (§5 — the core is
// single-threaded cooperative, unlike the teacher's mutex-guarded
// ForwardTable, whose locking existed only because leatea nodes each run
// their own goroutine over channels).
type Router[H HostID] struct {
	poisonMode    bool
	timerInterval time.Duration

	linkLatency map[Port]Latency
	peerTables  map[Port]PeerTable[H]
	forwarding  ForwardingTable[H]
	history     history[H]

	clock     Clock
	timerFunc TimerFunc
	sender    Sender[H]
	listener  Listener[H]
	metrics   *Metrics
	log       *slog.Logger

	lastTime time.Time
}

// Option configures a Router at construction time, in the teacher's
// functional-option idiom (generalized from core.SetConfiguration).
type Option[H HostID] func(*Router[H])

// WithClock overrides the router's time source. Default: clockwork.NewRealClock().
func WithClock[H HostID](clock Clock) Option[H] {
	return func(r *Router[H]) { r.clock = clock }
}

// WithSender overrides the router's packet sink. Default: a sender that
// discards every packet.
func WithSender[H HostID](sender Sender[H]) Option[H] {
	return func(r *Router[H]) { r.sender = sender }
}

// WithTimerFunc overrides how the periodic timer is started. Default:
// ClockTimer(the router's clock). Tests that want to drive HandleTimer
// explicitly should pass NoTimer and call HandleTimer themselves.
func WithTimerFunc[H HostID](timer TimerFunc) Option[H] {
	return func(r *Router[H]) { r.timerFunc = timer }
}

// WithListener installs an observer called for every Event the router
// emits, in addition to the default slog/metrics handling.
func WithListener[H HostID](l Listener[H]) Option[H] {
	return func(r *Router[H]) { r.listener = l }
}

// WithMetrics attaches a Prometheus collector set; advertisement,
// learned-route, expiry, forward and drop events each increment their
// counter. Link up/down events have no counter.
func WithMetrics[H HostID](m *Metrics) Option[H] {
	return func(r *Router[H]) { r.metrics = m }
}

// WithLogger overrides the default slog.Logger used for observability.
func WithLogger[H HostID](log *slog.Logger) Option[H] {
	return func(r *Router[H]) { r.log = log }
}

// NewRouter constructs a Router and schedules its periodic timer exactly
// once, per §4.8/§6: "the construction step must also schedule the
// periodic timer via an externally provided start_timer capability."
func NewRouter[H HostID](poisonMode bool, timerInterval time.Duration, opts ...Option[H]) *Router[H] {
	r := &Router[H]{
		poisonMode:    poisonMode,
		timerInterval: timerInterval,
		linkLatency:   make(map[Port]Latency),
		peerTables:    make(map[Port]PeerTable[H]),
		forwarding:    make(ForwardingTable[H]),
		history:       newHistory[H](),
		sender:        discardSender[H](),
		log:           slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.clock == nil {
		r.clock = defaultClock()
	}
	r.lastTime = r.clock.Now()
	if r.timerFunc == nil {
		r.timerFunc = ClockTimer(r.clock)
	}
	r.timerFunc(r.timerInterval, r.HandleTimer)
	return r
}

// now returns the current time, failing fast if it ever appears to move
// backwards — monotonicity is a precondition per §7.
func (r *Router[H]) now() time.Time {
	t := r.clock.Now()
	if t.Before(r.lastTime) {
		panic(fmt.Sprintf("dvroute: clock moved backwards: %s -> %s", r.lastTime, t))
	}
	r.lastTime = t
	return t
}

// notify dispatches ev to the configured Listener (if any), the default
// slog logger, and the matching Metrics counter. Neither ever influences
// control flow — §4.9/§7: "nothing is retried at this layer."
func (r *Router[H]) notify(ev Event[H]) {
	if r.listener != nil {
		r.listener(ev)
	}
	switch ev.Type {
	case EvPacketDropped, EvRouteExpired:
		r.log.Info(ev.Type.String(), "port", ev.Port, "dst", ev.Dst, "val", ev.Val)
	default:
		r.log.Debug(ev.Type.String(), "port", ev.Port, "dst", ev.Dst, "val", ev.Val)
	}
	if r.metrics == nil {
		return
	}
	switch ev.Type {
	case EvRouteAdvertised:
		r.metrics.adsSent.Inc()
	case EvRouteLearned:
		r.metrics.routesLearned.Inc()
	case EvRouteExpired:
		r.metrics.routesExpired.Inc()
	case EvPacketForwarded:
		r.metrics.packetsForwarded.Inc()
	case EvPacketDropped:
		reason, _ := ev.Val.(DropReason)
		r.metrics.packetsDropped.WithLabelValues(string(reason)).Inc()
	}
}

//----------------------------------------------------------------------
// link lifecycle — §4.1
//----------------------------------------------------------------------

// HandleLinkUp brings up a new port. Precondition: port must not already
// be up.
func (r *Router[H]) HandleLinkUp(port Port, latency Latency) {
	if _, up := r.linkLatency[port]; up {
		panic(fmt.Sprintf("dvroute: HandleLinkUp: port %d already up", port))
	}
	r.linkLatency[port] = latency
	r.peerTables[port] = make(PeerTable[H])
	r.notify(Event[H]{Type: EvLinkUp, Port: port, Val: latency})
	r.SendRoutes(true)
}

// HandleLinkDown tears down a port, removing everything learned through
// it and recomputing routes.
func (r *Router[H]) HandleLinkDown(port Port) {
	if _, up := r.linkLatency[port]; !up {
		panic(fmt.Sprintf("dvroute: HandleLinkDown: port %d not up", port))
	}
	delete(r.linkLatency, port)
	delete(r.peerTables, port)
	r.history.dropPort(port)
	r.notify(Event[H]{Type: EvLinkDown, Port: port})
	r.UpdateForwardingTable()
	r.SendRoutes(false)
}

//----------------------------------------------------------------------
// static routes — §4.2
//----------------------------------------------------------------------

// AddStaticRoute installs a zero-latency, never-expiring route to host
// through port. Precondition: port must be up.
func (r *Router[H]) AddStaticRoute(host H, port Port) {
	table, up := r.peerTables[port]
	if !up {
		panic(fmt.Sprintf("dvroute: AddStaticRoute: port %d not up", port))
	}
	table.static(host)
	r.UpdateForwardingTable()
	r.SendRoutes(false)
}

//----------------------------------------------------------------------
// route selector — §4.3
//----------------------------------------------------------------------

// UpdateForwardingTable rebuilds the forwarding table from scratch.
func (r *Router[H]) UpdateForwardingTable() {
	r.forwarding = computeForwardingTable(r.linkLatency, r.peerTables)
}

// ForwardingSnapshot returns a copy of the router's current forwarding
// table, safe for a caller to range over or retain.
func (r *Router[H]) ForwardingSnapshot() ForwardingTable[H] {
	out := make(ForwardingTable[H], len(r.forwarding))
	for dst, entry := range r.forwarding {
		out[dst] = entry
	}
	return out
}

//----------------------------------------------------------------------
// expiry — §4.5
//----------------------------------------------------------------------

// ExpireRoutes removes every peer entry whose expiry is due and
// recomputes the forwarding table.
func (r *Router[H]) ExpireRoutes() {
	now := r.now()
	for _, port := range sortedPorts(r.peerTables) {
		for _, dst := range r.peerTables[port].expire(now) {
			r.notify(Event[H]{Type: EvRouteExpired, Port: port, Dst: dst})
		}
	}
	r.UpdateForwardingTable()
}

//----------------------------------------------------------------------
// route-advertisement intake — §4.6
//----------------------------------------------------------------------

// HandleRouteAdvertisement applies an inbound route advertisement learned
// on port. Precondition: port must be up.
func (r *Router[H]) HandleRouteAdvertisement(dst H, port Port, latency Latency) {
	table, up := r.peerTables[port]
	if !up {
		panic(fmt.Sprintf("dvroute: HandleRouteAdvertisement: port %d not up", port))
	}
	expire := At(r.now().Add(2 * r.timerInterval))
	table.learn(dst, latency, expire)
	r.notify(Event[H]{Type: EvRouteLearned, Port: port, Dst: dst, Val: latency})
	r.UpdateForwardingTable()
	r.SendRoutes(false)
}

//----------------------------------------------------------------------
// data-plane forwarding — §4.7
//----------------------------------------------------------------------

// HandleDataPacket forwards pkt according to the current forwarding
// table, or drops it.
func (r *Router[H]) HandleDataPacket(pkt DataPacket[H], inPort Port) {
	entry, present := r.forwarding[pkt.Dst]
	switch {
	case !present:
		r.notify(Event[H]{Type: EvPacketDropped, Dst: pkt.Dst, Val: DropNoRoute})
		return
	case entry.Port == inPort:
		r.notify(Event[H]{Type: EvPacketDropped, Port: inPort, Dst: pkt.Dst, Val: DropHairpin})
		return
	case entry.TotalLatency >= Infinity:
		r.notify(Event[H]{Type: EvPacketDropped, Port: entry.Port, Dst: pkt.Dst, Val: DropInfinite})
		return
	}
	r.sender.Send(pkt, []Port{entry.Port}, false)
	r.notify(Event[H]{Type: EvPacketForwarded, Port: entry.Port, Dst: pkt.Dst})
}

//----------------------------------------------------------------------
// timer — §4.4, §4.8
//----------------------------------------------------------------------

// HandleTimer runs the periodic maintenance cycle: expire stale peer
// entries, then re-broadcast the router's full advertised view.
func (r *Router[H]) HandleTimer() {
	r.ExpireRoutes()
	r.SendRoutes(true)
}
