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
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock is the monotonic time source injected into a Router. Production
// code uses clockwork.NewRealClock(); tests use clockwork.NewFakeClock()
// and advance it explicitly, replacing wall-clock reads entirely — the
// core never calls time.Now() itself.
type Clock = clockwork.Clock

// TimerFunc starts a periodic callback. It is invoked exactly once, at
// Router construction, and must arrange for cb to be called roughly
// every interval until the process exits; the Router itself never stops
// it.
type TimerFunc func(interval time.Duration, cb func())

// defaultClock is the Clock a Router is constructed with when no
// WithClock option is given.
func defaultClock() Clock {
	return clockwork.NewRealClock()
}

// RealClock returns a Clock backed by the wall clock, for callers (e.g.
// cmd/dvrouter) that want to pass it explicitly via WithClock rather than
// relying on NewRouter's default.
func RealClock() Clock {
	return clockwork.NewRealClock()
}

// ClockTimer returns a TimerFunc backed by clock's own ticker, so that
// fake clocks in tests can drive (or never drive) the periodic timer
// deterministically.
func ClockTimer(clock Clock) TimerFunc {
	return func(interval time.Duration, cb func()) {
		go func() {
			ticker := clock.NewTicker(interval)
			defer ticker.Stop()
			for {
				<-ticker.Chan()
				cb()
			}
		}()
	}
}

// NoTimer is a TimerFunc that never fires anything. Pass it via
// WithTimerFunc to callers that drive HandleTimer explicitly — tests with
// a clockwork.FakeClock, or a topology that ticks every router in
// lockstep itself — so a background ClockTimer goroutine never races
// with the explicit calls.
func NoTimer(time.Duration, func()) {}
