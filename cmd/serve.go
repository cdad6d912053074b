// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/statdeck/statdeck/pkg/dash"
	"github.com/statdeck/statdeck/pkg/export"
	"github.com/statdeck/statdeck/pkg/logging"
	"github.com/statdeck/statdeck/pkg/statwire"
	"github.com/statdeck/statdeck/pkg/weather"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run headless ingest and export (no dashboard)",
	Long: `Ingest the telemetry stream and serve it without a terminal UI.

The latest snapshot is exported over HTTP (/, /metrics, /status) and
WebSocket (/ws/raw, /ws/stream), exactly as 'watch --serve' does, making
this the mode for headless boxes and service units. The link reconnects
automatically; Ctrl-C or SIGTERM shuts down cleanly.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Export listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := dash.NewStore()

	var wxCache *weather.Cache
	if cfg.WeatherConfigured() {
		wxCache = weather.NewCache()
		go refreshWeather(ctx, weather.NewClient(cfg.OWMAPIKey, cfg.City, cfg.Units), wxCache)
	} else {
		logging.Info().Msg("Weather not configured, /metrics weather block stays empty")
	}

	addr := serveListen
	if addr == "" {
		addr = cfg.Listen
	}
	srv := export.New(export.Options{
		Addr:    addr,
		Store:   store,
		Weather: wxCache,
		Units:   cfg.Units,
		Version: version,
	})

	go ingest(ctx, store, srv)

	return srv.Run(ctx)
}

// ingest owns the snapshot store: it is the only writer. It reconnects the
// source with a fixed delay for as long as the service runs and republishes
// accepted lines to the raw tunnel.
func ingest(ctx context.Context, store *dash.Store, srv *export.Server) {
	stats := statwire.NewLinkStats()
	lastReport := time.Now()

	for ctx.Err() == nil {
		conn, info, err := OpenConnection(cfg)
		if err != nil {
			logging.Warn().Err(err).Msg("Source unavailable, retrying")
			select {
			case <-ctx.Done():
				return
			case <-time.After(reconnectDelay):
			}
			continue
		}
		logging.Info().Str("link", info).Msg("Ingest link up")

		// Unblock the read loop when the service stops.
		go func() {
			<-ctx.Done()
			conn.Close()
		}()

		reader := statwire.NewLineReader()
		buf := make([]byte, 256)

		for {
			n, err := conn.Read(buf)
			if err != nil {
				conn.Close()
				if ctx.Err() == nil {
					logging.Warn().Err(err).Msg("Ingest link lost")
				}
				break
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
					logging.Debug().Str("line", line).Msg("Line rejected")
					continue
				}
				store.Put(snap)
				srv.PublishLine(line)
			}

			if time.Since(lastReport) >= time.Minute {
				stats.SyncDiscards(reader)
				stats.CalculateRates()
				logging.Info().
					Uint64("accepted", stats.Accepted).
					Uint64("rejected", stats.Rejected).
					Uint64("oversized", stats.Discarded).
					Float64("linesPerSec", stats.LineRate).
					Msg("Ingest running")
				lastReport = time.Now()
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

// refreshWeather keeps the shared weather cache warm. Every fetch carries
// its own timeout; a failure leaves the previous report cached.
func refreshWeather(ctx context.Context, wx *weather.Client, cache *weather.Cache) {
	fetch := func() {
		fctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		rep, err := wx.Fetch(fctx)
		cache.Update(rep, err)
		if err != nil {
			logging.Warn().Err(err).Msg("Weather refresh failed")
		}
	}

	fetch()
	ticker := time.NewTicker(weather.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fetch()
		}
	}
}
