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

//----------------------------------------------------------------------
// generic helpers, in the teacher's Clone/Equal/Reverse idiom
// (core/util.go), adapted from array helpers to the map/set shapes the
// router actually needs.
//----------------------------------------------------------------------

// sortedPorts returns the keys of m in ascending order.
func sortedPorts[V any](m map[Port]V) []Port {
	ports := make([]Port, 0, len(m))
	for p := range m {
		ports = append(ports, p)
	}
	sort.Slice(ports, func(i, j int) bool { return ports[i] < ports[j] })
	return ports
}

// sortHosts orders dsts by String() for deterministic sweep order.
func sortHosts[H HostID](dsts []H) {
	sort.Slice(dsts, func(i, j int) bool { return dsts[i].String() < dsts[j].String() })
}
