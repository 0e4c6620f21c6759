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

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"dvroute/core"
	"dvroute/internal/demo"
)

// DemoCmd runs a fixed three-router chain (r1 - r2 - r3) in process,
// attaches host 42 to r3 through a stub port, ticks the timer a few
// times so routes converge, then prints every
// router's forwarding table. Stands in for the out-of-scope geometric
// network simulator.
type DemoCmd struct{}

func NewDemoCmd() *DemoCmd { return &DemoCmd{} }

func (c *DemoCmd) Command() *cobra.Command {
	var poisonMode bool
	var ticks int

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a small fixed three-router chain in process and print converged routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(verboseFlag(cmd))
			const interval = 5 * time.Second

			topo := demo.NewTopology(log)
			topo.AddRouter("r1", poisonMode, interval)
			topo.AddRouter("r2", poisonMode, interval)
			topo.AddRouter("r3", poisonMode, interval)

			topo.Connect("r1", 1, 3, "r2", 1, 3)
			topo.Connect("r2", 2, 4, "r3", 1, 4)

			r3 := topo.Routers["r3"]
			r3.HandleLinkUp(99, 0)
			r3.AddStaticRoute(core.IntID(42), 99)

			for i := 0; i < ticks; i++ {
				topo.Tick(interval)
			}

			for _, name := range []string{"r1", "r2", "r3"} {
				r := topo.Routers[name]
				fmt.Printf("%s forwarding table:\n", name)
				for dst, entry := range r.ForwardingSnapshot() {
					fmt.Printf("  %v -> port %d, latency %v\n", dst, entry.Port, entry.TotalLatency)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&poisonMode, "poison", true, "enable poison-reverse")
	cmd.Flags().IntVar(&ticks, "ticks", 3, "number of timer ticks to run before printing routes")

	return cmd
}
