// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/statdeck/statdeck/pkg/dash"
	"github.com/statdeck/statdeck/pkg/export"
	"github.com/statdeck/statdeck/pkg/logging"
	"github.com/statdeck/statdeck/pkg/settings"
	"github.com/statdeck/statdeck/pkg/statwire"
	"github.com/statdeck/statdeck/pkg/weather"
)

const reconnectDelay = 2 * time.Second

var (
	watchServe   bool
	watchListen  string
	watchLogFile string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the telemetry dashboard",
	Long: `Run the full-screen dashboard on the configured source.

Pages cycle with the arrow keys (or tab / a horizontal mouse drag): CPU, GPU,
disk, and - when an OpenWeatherMap account is configured - a weather page.
Hold 's' (or press-and-hold the mouse) for three seconds to open the setup
form; saving writes the config file and exits so a restart picks it up.

With --serve the dashboard also exports the latest snapshot over HTTP and
WebSocket, sharing its ingest with remote consumers.

The dashboard draws on the alternate screen, so logging is discarded unless
--log-file routes it to a file.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&watchServe, "serve", false, "Also run the HTTP/WS export server")
	watchCmd.Flags().StringVar(&watchListen, "listen", "", "Export listen address (default from config)")
	watchCmd.Flags().StringVar(&watchLogFile, "log-file", "", "Append logs to this file instead of discarding them")
}

func runWatch(cmd *cobra.Command, args []string) error {
	// The terminal belongs to the dashboard; logs go to a file or nowhere.
	logWriter := io.Discard
	if watchLogFile != "" {
		f, err := os.OpenFile(watchLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logWriter = f
	}
	logging.Setup(logLevel, logWriter)

	conn, connInfo, err := OpenConnection(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	store := dash.NewStore()

	var wx *weather.Client
	var wxCache *weather.Cache
	if cfg.WeatherConfigured() {
		wx = weather.NewClient(cfg.OWMAPIKey, cfg.City, cfg.Units)
		wxCache = weather.NewCache()
	}

	m := dash.NewModel(dash.Options{
		Store:        store,
		Settings:     cfg,
		ConfigPath:   cfgPath,
		ConnInfo:     connInfo,
		Weather:      wx,
		WeatherCache: wxCache,
	})
	p := tea.NewProgram(m, tea.WithMouseCellMotion())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var srv *export.Server
	if watchServe {
		addr := watchListen
		if addr == "" {
			addr = cfg.Listen
		}
		srv = export.New(export.Options{
			Addr:    addr,
			Store:   store,
			Weather: wxCache,
			Units:   cfg.Units,
			Version: version,
		})
		go func() {
			if err := srv.Run(ctx); err != nil {
				logging.Error().Err(err).Msg("Export server failed")
			}
		}()
	}

	go pumpLines(ctx, conn, p, srv)

	final, err := p.Run()
	cancel()
	if err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}

	if m, ok := final.(dash.Model); ok && m.Saved() {
		path := cfgPath
		if path == "" {
			path, _ = settings.Path()
		}
		fmt.Printf("Configuration saved to %s.\nRestart statdeck to apply it.\n", path)
	}
	return nil
}

// pumpLines reassembles wire lines from the source and hands each one to
// the dashboard loop; the loop stays the only writer of telemetry state.
// When the link drops the pump keeps reconnecting until ctx is cancelled.
// Accepted lines are republished to the export server's raw tunnel when one
// is running.
func pumpLines(ctx context.Context, conn Connection, p *tea.Program, srv *export.Server) {
	reader := statwire.NewLineReader()
	buf := make([]byte, 256)

	for {
		for {
			n, err := conn.Read(buf)
			if err != nil {
				conn.Close()
				p.Send(dash.LinkDownMsg{Err: err})
				logging.Warn().Err(err).Msg("Ingest link lost")
				break
			}

			for i := 0; i < n; i++ {
				line, ok := reader.FeedByte(buf[i])
				if !ok {
					continue
				}
				p.Send(dash.LineMsg{Line: line, Discarded: uint64(reader.Discarded())})
				if srv != nil {
					if _, err := statwire.ParseLine(line); err == nil {
						srv.PublishLine(line)
					}
				}
			}
		}

		// Drop any half-assembled line from the dead link, then redial.
		reader.Reset()
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(reconnectDelay):
			}

			next, info, err := OpenConnection(cfg)
			if err != nil {
				logging.Debug().Err(err).Msg("Reconnect attempt failed")
				continue
			}
			conn = next
			p.Send(dash.LinkUpMsg{Info: info})
			logging.Info().Str("link", info).Msg("Ingest link restored")
			break
		}
	}
}
