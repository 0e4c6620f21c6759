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

import "sort"

// FwdEntry is this router's own best-known route to a destination.
type FwdEntry[H HostID] struct {
	Dst          H
	Port         Port
	TotalLatency Latency
}

// ForwardingTable is this router's selected route to each reachable
// destination, derived from link_latency and all peer tables.
type ForwardingTable[H HostID] map[H]FwdEntry[H]

// computeForwardingTable rebuilds the forwarding table from scratch. It
// is a pure function: no argument is mutated and no side effect occurs.
//
// Ports are visited in ascending order and, within a port, destinations
// in ascending String() order; combined with the strict "<" replace rule
// this makes ties deterministic and stable across repeated calls — the
// first port (by port number) to reach a destination at the minimum
// total latency keeps it.
func computeForwardingTable[H HostID](linkLatency map[Port]Latency, peerTables map[Port]PeerTable[H]) ForwardingTable[H] {
	fwd := make(ForwardingTable[H])

	ports := make([]Port, 0, len(linkLatency))
	for p := range linkLatency {
		ports = append(ports, p)
	}
	sort.Slice(ports, func(i, j int) bool { return ports[i] < ports[j] })

	for _, port := range ports {
		table := peerTables[port]
		dsts := make([]H, 0, len(table))
		for dst := range table {
			dsts = append(dsts, dst)
		}
		sort.Slice(dsts, func(i, j int) bool { return dsts[i].String() < dsts[j].String() })

		for _, dst := range dsts {
			entry := table[dst]
			total := saturatingAdd(linkLatency[port], entry.Latency)
			if total >= Infinity {
				continue
			}
			current, ok := fwd[dst]
			if !ok || total < current.TotalLatency {
				fwd[dst] = FwdEntry[H]{Dst: dst, Port: port, TotalLatency: total}
			}
		}
	}
	return fwd
}
