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

import "strconv"

// IntID is the simplest possible HostID: a bare integer handle, per
// design note "model HostId as a small value type (integer handle or
// arena index)". It has no identity beyond its numeric value — no
// signing key, no certificate, nothing authenticated, matching the
// Non-goal that excludes authenticated peering.
type IntID int

// String renders the handle in a stable, orderable form.
func (id IntID) String() string {
	return strconv.Itoa(int(id))
}
