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

func TestOutgoingLatencyTable(t *testing.T) {
	cases := []struct {
		name       string
		reverse    bool
		present    bool
		total      Latency
		poisonMode bool
		want       outgoing
	}{
		{"absent, no poison", false, false, 0, false, outgoing{suppress: true}},
		{"absent, poison", false, false, 0, true, outgoing{latency: Infinity}},
		{"reverse path, poison", true, true, 8, true, outgoing{latency: Infinity}},
		{"reverse path, no poison", true, true, 8, false, outgoing{suppress: true}},
		{"normal", false, true, 8, false, outgoing{latency: 8}},
		{"normal, poison mode but not reverse", false, true, 8, true, outgoing{latency: 8}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := outgoingLatency(c.reverse, c.present, c.total, c.poisonMode)
			require.Equal(t, c.want, got)
		})
	}
}

// recordingSender captures every RoutePacket sent to it, keyed by port.
type recordingSender struct {
	ads map[Port]map[IntID]Latency
}

func newRecordingSender() *recordingSender {
	return &recordingSender{ads: make(map[Port]map[IntID]Latency)}
}

func (s *recordingSender) Send(pkt Packet, ports []Port, flood bool) {
	rp, ok := pkt.(RoutePacket[IntID])
	if !ok {
		return
	}
	for _, p := range ports {
		table, ok := s.ads[p]
		if !ok {
			table = make(map[IntID]Latency)
			s.ads[p] = table
		}
		table[rp.Destination] = rp.Latency
	}
}

// buildScenarioBRouter sets up the router from spec Scenario B: links
// {1:5, 2:1, 3:3}, forwarding_table {h1->port1@8, h2->port3@5}.
func buildScenarioBRouter(t *testing.T, poisonMode bool) (*Router[IntID], *recordingSender) {
	t.Helper()
	sender := newRecordingSender()
	r := NewRouter[IntID](poisonMode, time.Hour,
		WithTimerFunc[IntID](NoTimer),
		WithSender[IntID](sender),
	)
	r.HandleLinkUp(1, 5)
	r.HandleLinkUp(2, 1)
	r.HandleLinkUp(3, 3)
	r.HandleRouteAdvertisement(IntID(1), 1, 3) // h1 via port1, total 8
	r.HandleRouteAdvertisement(IntID(2), 3, 2) // h2 via port3, total 5

	require.Equal(t, Latency(8), r.forwarding[IntID(1)].TotalLatency)
	require.Equal(t, Port(1), r.forwarding[IntID(1)].Port)
	require.Equal(t, Latency(5), r.forwarding[IntID(2)].TotalLatency)
	require.Equal(t, Port(3), r.forwarding[IntID(2)].Port)

	// Reset what the setup itself emitted so assertions below only see
	// the forced sweep under test.
	sender.ads = make(map[Port]map[IntID]Latency)
	return r, sender
}

// TestSendRoutesSplitHorizon is spec Scenario B.
func TestSendRoutesSplitHorizon(t *testing.T) {
	r, sender := buildScenarioBRouter(t, false)

	r.SendRoutes(true)

	require.Equal(t, map[IntID]Latency{2: 5}, sender.ads[1])
	require.Equal(t, map[IntID]Latency{1: 8, 2: 5}, sender.ads[2])
	require.Equal(t, map[IntID]Latency{1: 8}, sender.ads[3])
}

// TestSendRoutesPoisonReverse is spec Scenario C.
func TestSendRoutesPoisonReverse(t *testing.T) {
	r, sender := buildScenarioBRouter(t, true)

	r.SendRoutes(true)

	require.Equal(t, map[IntID]Latency{1: Infinity, 2: 5}, sender.ads[1])
	require.Equal(t, map[IntID]Latency{1: 8, 2: 5}, sender.ads[2])
	require.Equal(t, map[IntID]Latency{1: 8, 2: Infinity}, sender.ads[3])
}

// TestSendRoutesTriggeredSuppression is spec Scenario D: a route update
// that doesn't change the winning total produces no output under
// force=false.
func TestSendRoutesTriggeredSuppression(t *testing.T) {
	r, sender := buildScenarioBRouter(t, false)
	r.SendRoutes(true) // establish history as scenario B requires
	sender.ads = make(map[Port]map[IntID]Latency)

	r.HandleRouteAdvertisement(IntID(1), 2, 10) // h1 via port2 would total 11, worse than 8

	require.Equal(t, Latency(8), r.forwarding[IntID(1)].TotalLatency)
	require.Equal(t, Port(1), r.forwarding[IntID(1)].Port)

	sender.ads = make(map[Port]map[IntID]Latency)
	r.SendRoutes(false)
	require.Empty(t, sender.ads)
}
