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

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus collectors a Router reports through, on
// an isolated registry so one router's counters never collide with
// another's (or with the process default registry) — the same isolation
// discipline shurlinet's p2pnet.Metrics uses.
type Metrics struct {
	Registry *prometheus.Registry

	adsSent          prometheus.Counter
	routesLearned    prometheus.Counter
	routesExpired    prometheus.Counter
	packetsForwarded prometheus.Counter
	packetsDropped   *prometheus.CounterVec
}

// NewMetrics creates and registers a fresh set of DV router collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		adsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dvroute_advertisements_sent_total",
			Help: "Total number of route advertisements sent.",
		}),
		routesLearned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dvroute_routes_learned_total",
			Help: "Total number of inbound route advertisements applied.",
		}),
		routesExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dvroute_routes_expired_total",
			Help: "Total number of peer-table entries removed by expiry.",
		}),
		packetsForwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dvroute_packets_forwarded_total",
			Help: "Total number of data packets forwarded.",
		}),
		packetsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dvroute_packets_dropped_total",
			Help: "Total number of data packets dropped, by reason.",
		}, []string{"reason"}),
	}

	reg.MustRegister(
		m.adsSent,
		m.routesLearned,
		m.routesExpired,
		m.packetsForwarded,
		m.packetsDropped,
	)
	return m
}
