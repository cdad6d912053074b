// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/statdeck/statdeck/pkg/statwire"
)

var probeTimeout int

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Test the link by waiting for one valid telemetry record",
	Long: `Wait for a valid telemetry record on the connection until timeout.

This command connects to a serial port or WebSocket tunnel and waits for
one complete record that parses. Noise, partial lines and rejected lines
are skipped while waiting.

Exit codes:
  0 - Record received before timeout
  1 - Timeout reached without a valid record
  2 - Connection error

Useful for checking a feeder or tunnel before starting the dashboard.`,
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().IntVar(&probeTimeout, "timeout", 10, "Timeout in seconds to wait for a record")
}

func runProbe(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()

	fmt.Printf("statdeck - Link Probe\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Timeout: %d seconds\n", probeTimeout)
	fmt.Printf("Waiting for a valid telemetry record...\n\n")

	snapChan := make(chan statwire.Snapshot, 1)
	errChan := make(chan error, 1)

	// Reader goroutine
	go func() {
		reader := statwire.NewLineReader()
		buf := make([]byte, 256)
		rejected := 0
		for {
			n, err := conn.Read(buf)
			if err != nil {
				errChan <- err
				return
			}

			for i := 0; i < n; i++ {
				line, ok := reader.FeedByte(buf[i])
				if !ok {
					continue
				}

				snap, parseErr := statwire.ParseLine(line)
				if parseErr != nil {
					rejected++
					continue
				}
				if rejected > 0 || reader.Discarded() > 0 {
					fmt.Printf("(skipped %d rejected and %d oversized lines before sync)\n",
						rejected, reader.Discarded())
				}
				snapChan <- snap
				return
			}
		}
	}()

	// Wait for a record or timeout
	select {
	case snap := <-snapChan:
		fmt.Printf("SUCCESS: Received valid record\n")
		fmt.Print(statwire.FormatSnapshot(snap, time.Now()))
		os.Exit(0)

	case err := <-errChan:
		fmt.Fprintf(os.Stderr, "Read error: %v\n", err)
		os.Exit(2)

	case <-time.After(time.Duration(probeTimeout) * time.Second):
		fmt.Fprintf(os.Stderr, "TIMEOUT: No valid record received within %d seconds\n", probeTimeout)
		os.Exit(1)
	}

	return nil
}
