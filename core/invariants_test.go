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
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestPeerTablesKeysMatchLinkLatencyKeys is spec invariant 5:
// peer_tables.keys() == link_latency.keys() across every event.
func TestPeerTablesKeysMatchLinkLatencyKeys(t *testing.T) {
	r := NewRouter[IntID](false, time.Hour, WithTimerFunc[IntID](NoTimer))

	r.HandleLinkUp(1, 5)
	r.HandleLinkUp(2, 1)
	requireSameKeys(t, r)

	r.HandleLinkDown(1)
	requireSameKeys(t, r)

	r.HandleLinkUp(3, 2)
	requireSameKeys(t, r)
}

func requireSameKeys(t *testing.T, r *Router[IntID]) {
	t.Helper()
	require.Len(t, r.peerTables, len(r.linkLatency))
	for port := range r.linkLatency {
		require.Contains(t, r.peerTables, port)
	}
}

// TestSelectorTiesConsistentWithinOneCall is spec invariant 6: ties at
// equal total latency resolve consistently within a single selector
// call (the lowest port number wins, deterministically, every time).
func TestSelectorTiesConsistentWithinOneCall(t *testing.T) {
	linkLatency := map[Port]Latency{1: 5, 2: 5, 3: 5}
	peerTables := map[Port]PeerTable[IntID]{
		1: {IntID(1): {Dst: 1, Latency: 1}},
		2: {IntID(1): {Dst: 1, Latency: 1}},
		3: {IntID(1): {Dst: 1, Latency: 1}},
	}

	for i := 0; i < 10; i++ {
		fwd := computeForwardingTable(linkLatency, peerTables)
		require.Equal(t, Port(1), fwd[IntID(1)].Port)
	}
}

// TestUpdateForwardingTableIdempotent covers the round-trip law "calling
// update_forwarding_table() twice with no intervening mutation yields
// identical tables."
func TestUpdateForwardingTableIdempotent(t *testing.T) {
	r := NewRouter[IntID](false, time.Hour, WithTimerFunc[IntID](NoTimer))
	r.HandleLinkUp(1, 5)
	r.HandleRouteAdvertisement(IntID(1), 1, 2)

	first := r.ForwardingSnapshot()
	r.UpdateForwardingTable()
	second := r.ForwardingSnapshot()

	require.Equal(t, first, second)
}
