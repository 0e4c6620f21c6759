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
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

// ExitCode mirrors the teacher's devnetcmd.Run()'s return convention.
type ExitCode int

const (
	exitCodeSuccess ExitCode = 0
	exitCodeError   ExitCode = 1
)

// Run builds and executes the dvrouter root command, returning the
// process exit code.
func Run() ExitCode {
	rootCmd := &cobra.Command{
		Use:   "dvrouter",
		Short: "Run and inspect a distance-vector routing control plane.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var verbose bool
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	var configPath string
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")

	rootCmd.AddCommand(
		NewDemoCmd().Command(),
		NewServeCmd().Command(),
	)

	if err := rootCmd.Execute(); err != nil {
		return exitCodeError
	}
	return exitCodeSuccess
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level}))
}

func verboseFlag(cmd *cobra.Command) bool {
	v, err := cmd.Root().PersistentFlags().GetBool("verbose")
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: --verbose flag missing:", err)
	}
	return v
}

func configFlag(cmd *cobra.Command) string {
	p, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: --config flag missing:", err)
	}
	return p
}
