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
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dvroute/core"
)

// ServeCmd runs a single router as a long-lived process: loads its
// config from YAML, constructs it with a real clock and a Prometheus
// registry, and serves /metrics. Neither the config nor any flag brings
// a link up, so the router idles and its counters stay at zero —
// exercising the ambient stack without needing a real network.
type ServeCmd struct{}

func NewServeCmd() *ServeCmd { return &ServeCmd{} }

func (c *ServeCmd) Command() *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a single dvroute router, exporting Prometheus metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(verboseFlag(cmd))

			cfg, err := loadConfig(configFlag(cmd))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			id := uuid.New()
			log.Info("starting router", "id", id, "poison_mode", cfg.PoisonMode, "timer_interval", cfg.TimerInterval)

			metrics := core.NewMetrics()
			_ = core.NewRouter[core.IntID](
				cfg.PoisonMode, cfg.TimerInterval,
				core.WithClock[core.IntID](core.RealClock()),
				core.WithLogger[core.IntID](log),
				core.WithMetrics[core.IntID](metrics),
			)

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			listener, err := net.Listen("tcp", metricsAddr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", metricsAddr, err)
			}
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

			errCh := make(chan error, 1)
			go func() {
				log.Info("metrics server listening", "address", listener.Addr().String())
				errCh <- http.Serve(listener, mux)
			}()

			select {
			case err := <-errCh:
				return fmt.Errorf("metrics server: %w", err)
			case <-ctx.Done():
				log.Info("shutting down")
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9477", "address to serve Prometheus metrics on")

	return cmd
}

// loadConfig reads and parses a dvroute YAML config, falling back to
// core's package defaults when path is empty.
func loadConfig(path string) (core.Config, error) {
	var cfg core.Config
	if path == "" {
		return cfg.WithDefaults(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg.WithDefaults(), nil
}
