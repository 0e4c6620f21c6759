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

import "fmt"

// Packet is the wire format the core exchanges through the Sender sink.
// Its concrete layout is opaque to the core; only the two kinds below
// are meaningful to it.
type Packet interface {
	isPacket()
}

// RoutePacket is a single route advertisement: "I can reach Destination
// at Latency". It is terminated at the receiving router and never
// forwarded.
type RoutePacket[H HostID] struct {
	Destination H
	Latency     Latency
}

func (RoutePacket[H]) isPacket() {}

func (p RoutePacket[H]) String() string {
	return fmt.Sprintf("RouteAd{dst=%s, latency=%v}", p.Destination, p.Latency)
}

// DataPacket carries an opaque payload from Src to Dst across the
// network. The core never inspects Payload.
type DataPacket[H HostID] struct {
	Dst     H
	Src     H
	Payload []byte
}

func (DataPacket[H]) isPacket() {}

func (p DataPacket[H]) String() string {
	return fmt.Sprintf("Data{%s->%s, %d bytes}", p.Src, p.Dst, len(p.Payload))
}
