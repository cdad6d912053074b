// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/statdeck/statdeck/pkg/logging"
	"github.com/statdeck/statdeck/pkg/statwire"
)

var tailStream bool

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Print decoded telemetry records as they arrive",
	Long: `Continuously decode and print telemetry records in human-readable form.

Reads the raw wire stream (serial or WebSocket tunnel), prints every
accepted record with a timestamp, and flags rejected lines inline. On
exit a link statistics summary is printed.

With --stream the command instead subscribes to a running export
server's snapshot push channel, so pass the full stream URL:

  statdeck tail --stream --connect ws://host:8080/ws/stream`,
	RunE: runTail,
}

func init() {
	rootCmd.AddCommand(tailCmd)
	tailCmd.Flags().BoolVar(&tailStream, "stream", false, "Subscribe to a server's snapshot push channel instead of the raw wire")
}

func runTail(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if tailStream {
		return runTailStream(ctx)
	}

	conn, connInfo, err := OpenConnection(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Unblock the read loop on Ctrl-C so the summary still prints.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	fmt.Printf("statdeck - Live Telemetry Log\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Press Ctrl+C to exit\n\n")

	reader := statwire.NewLineReader()
	stats := statwire.NewLinkStats()
	buf := make([]byte, 256)

	for {
		n, err := conn.Read(buf)
		if err != nil {
			stats.SyncDiscards(reader)
			fmt.Print("\n" + stats.String())
			if ctx.Err() != nil || errors.Is(err, ErrConnectionClosed) {
				return nil
			}
			return fmt.Errorf("read failed: %w", err)
		}
		stats.CountBytes(n)

		for i := 0; i < n; i++ {
			line, ok := reader.FeedByte(buf[i])
			if !ok {
				continue
			}

			snap, err := statwire.ParseLine(line)
			stats.CountLine(err)
			if err != nil {
				fmt.Printf("[reject] %v: %q\n", err, line)
				continue
			}
			fmt.Print(statwire.FormatSnapshot(snap, time.Now()))
		}
	}
}

// runTailStream consumes the export server's CBOR push frames directly. The
// raw Connection wrapper is no use here: frames are binary messages whose
// boundaries matter, so we read whole WebSocket messages.
func runTailStream(ctx context.Context) error {
	if connectURL == "" {
		return fmt.Errorf("--stream needs a push channel URL: pass --connect ws://host:8080/ws/stream")
	}

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	dctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	conn, _, err := dialer.DialContext(dctx, connectURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", connectURL, err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	fmt.Printf("statdeck - Snapshot Stream\n")
	fmt.Printf("Connection: WebSocket: %s\n", connectURL)
	fmt.Printf("Press Ctrl+C to exit\n\n")

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("stream closed: %w", err)
		}
		if msgType != websocket.BinaryMessage {
			logging.Debug().Int("type", msgType).Msg("Ignoring non-binary stream message")
			continue
		}

		snap, ageMS, err := statwire.DecodeSnapshotFrame(data)
		if err != nil {
			fmt.Printf("[reject] %v\n", err)
			continue
		}
		fmt.Print(statwire.FormatSnapshot(snap, time.Now()))
		if ageMS < 0 {
			fmt.Printf("  sender age: no data yet\n")
		} else {
			fmt.Printf("  sender age: %dms\n", ageMS)
		}
	}
}
