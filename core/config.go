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

import "time"

// Config for a DV router. Immutable after construction.
type Config struct {
	PoisonMode    bool          `yaml:"poisonMode" json:"poisonMode"`
	TimerInterval time.Duration `yaml:"timerInterval" json:"timerInterval"`
}

// defaultConfig mirrors the values the source test suite hard-codes for
// its router fixtures.
var defaultConfig = Config{
	PoisonMode:    false,
	TimerInterval: 5 * time.Second,
}

// WithDefaults fills any zero field of c with the package default.
func (c Config) WithDefaults() Config {
	if c.TimerInterval <= 0 {
		c.TimerInterval = defaultConfig.TimerInterval
	}
	return c
}
