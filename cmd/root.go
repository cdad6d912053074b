// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/statdeck/statdeck/pkg/logging"
	"github.com/statdeck/statdeck/pkg/settings"
)

const version = "1.0.0"

var (
	// Serial connection flags
	portName string
	baudRate int

	// WebSocket tunnel flag (consumes another statdeck's /ws/raw feed)
	connectURL string

	// Global behavior flags
	cfgPath  string
	logLevel string

	// Effective configuration, loaded before any subcommand runs. Flags
	// override it where a command consults both.
	cfg *settings.Settings
)

var rootCmd = &cobra.Command{
	Use:   "statdeck",
	Short: "Host telemetry dashboard over a serial link",
	Long: `Statdeck - a terminal dashboard for a host telemetry stream.

A feeder samples a machine's CPU, memory, GPU, disk and temperature metrics
and writes them as comma-separated lines over a serial link. Statdeck ingests
that stream, keeps rolling history, and renders animated bar/sparkline pages,
optionally exporting the latest snapshot over HTTP and WebSocket.

Connection modes:
  Serial:    --port /dev/ttyACM0 [--baud 115200]
  WebSocket: --connect ws://host:8080/ws/raw

Flags fall back to the config file (statdeck settings show); the serial port
is the usual source, the WebSocket tunnel relays another statdeck's ingest.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(logLevel, os.Stderr)

		var err error
		cfg, err = settings.Load(cfgPath)
		return err
	},
}

func init() {
	// Serial connection flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device (default from config)")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 0, "Baud rate (default from config)")

	// WebSocket connection flag
	rootCmd.PersistentFlags().StringVarP(&connectURL, "connect", "u", "", "WebSocket URL of a remote /ws/raw feed")

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default $XDG_CONFIG_HOME/statdeck/statdeck.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
