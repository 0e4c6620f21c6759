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

	"github.com/stretchr/testify/require"
)

// TestComputeForwardingTableSelectorTie is spec Scenario A: two ports
// reach h1 at an equal total latency of 6. The spec itself leaves the
// winning port unspecified ("port ∈ {1, 3}"); this repo's decided tie
// rule (SPEC_FULL.md §4.3.1) picks the lowest port number.
func TestComputeForwardingTableSelectorTie(t *testing.T) {
	linkLatency := map[Port]Latency{1: 5, 3: 2}
	peerTables := map[Port]PeerTable[IntID]{
		1: {IntID(1): {Dst: 1, Latency: 1}},
		3: {IntID(1): {Dst: 1, Latency: 4}},
	}

	fwd := computeForwardingTable(linkLatency, peerTables)

	entry, ok := fwd[IntID(1)]
	require.True(t, ok)
	require.Equal(t, Latency(6), entry.TotalLatency)
	require.Equal(t, Port(1), entry.Port)
}

func TestComputeForwardingTableStrictlyBetterWins(t *testing.T) {
	linkLatency := map[Port]Latency{1: 5, 2: 1}
	peerTables := map[Port]PeerTable[IntID]{
		1: {IntID(1): {Dst: 1, Latency: 1}}, // total 6
		2: {IntID(1): {Dst: 1, Latency: 1}}, // total 2, strictly better
	}

	fwd := computeForwardingTable(linkLatency, peerTables)

	require.Equal(t, Port(2), fwd[IntID(1)].Port)
	require.Equal(t, Latency(2), fwd[IntID(1)].TotalLatency)
}

// TestComputeForwardingTableInfinityExcluded is spec Scenario G: a route
// whose total reaches or exceeds INFINITY never appears in the
// forwarding table.
func TestComputeForwardingTableInfinityExcluded(t *testing.T) {
	linkLatency := map[Port]Latency{1: 10}
	peerTables := map[Port]PeerTable[IntID]{
		1: {IntID(1): {Dst: 1, Latency: 10}}, // total 20, saturates at 16
	}

	fwd := computeForwardingTable(linkLatency, peerTables)

	_, ok := fwd[IntID(1)]
	require.False(t, ok)
}

func TestComputeForwardingTableIdempotent(t *testing.T) {
	linkLatency := map[Port]Latency{1: 5, 2: 1, 3: 3}
	peerTables := map[Port]PeerTable[IntID]{
		1: {IntID(1): {Dst: 1, Latency: 3}},
		3: {IntID(2): {Dst: 2, Latency: 2}},
	}

	first := computeForwardingTable(linkLatency, peerTables)
	second := computeForwardingTable(linkLatency, peerTables)

	require.Equal(t, first, second)
}
