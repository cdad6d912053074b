// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

// Package export serves the latest telemetry snapshot to remote consumers:
// a self-refreshing HTML status page, a JSON metrics document, and two
// WebSocket feeds (raw wire lines and periodic CBOR snapshot frames). It
// reads the shared snapshot store and weather cache; it never touches the
// ingest or rendering path.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/statdeck/statdeck/pkg/dash"
	"github.com/statdeck/statdeck/pkg/logging"
	"github.com/statdeck/statdeck/pkg/statwire"
	"github.com/statdeck/statdeck/pkg/weather"
)

const shutdownTimeout = 5 * time.Second

// Options configures an export server.
type Options struct {
	Addr    string
	Store   *dash.Store
	Weather *weather.Cache // nil when the weather account is not configured
	Units   string
	Version string
}

// Server is the HTTP/WebSocket export surface.
type Server struct {
	opts     Options
	page     string
	upgrader websocket.Upgrader

	mu   sync.Mutex
	subs map[chan string]struct{}
}

// New creates a server around a shared snapshot store.
func New(opts Options) *Server {
	return &Server{
		opts: opts,
		page: renderIndex(opts.Units),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The export surface is an open LAN endpoint, like the
			// display it stands in for.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		subs: make(map[chan string]struct{}),
	}
}

// Handler returns the route table, usable directly in tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/metrics", s.handleMetrics)
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/ws/raw", s.handleWSRaw)
	mux.HandleFunc("/ws/stream", s.handleWSStream)
	return logRequests(mux)
}

// Run serves until ctx is cancelled, then drains with a bounded shutdown.
// WebSocket connections are hijacked from the server and close on their own
// when the process exits.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	logging.Info().Str("addr", s.opts.Addr).Msg("Export server listening")

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutCtx); err != nil {
			logging.Warn().Err(err).Msg("Export server shutdown incomplete")
		}
		<-errc
		logging.Info().Msg("Export server stopped")
		return nil
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(s.page))
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.opts.Store.Latest()
	if !ok {
		snap = statwire.EmptySnapshot()
	}

	var rep *weather.Report
	var fetchOK, connected bool
	if s.opts.Weather != nil {
		rep, _ = s.opts.Weather.Latest()
		fetchOK = s.opts.Weather.OK()
		connected = s.opts.Weather.Connected()
	}

	payload := buildMetrics(snap,
		s.opts.Store.AgeMillis(),
		s.opts.Store.Uptime().Milliseconds(),
		rep, fetchOK, connected)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Debug().Err(err).Msg("Metrics write failed")
	}
}

type statusPayload struct {
	Host      string `json:"host"`
	Addr      string `json:"addr"`
	Version   string `json:"version"`
	UptimeSec int64  `json:"uptimeSec"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	host, _ := os.Hostname()
	payload := statusPayload{
		Host:      host,
		Addr:      s.opts.Addr,
		Version:   s.opts.Version,
		UptimeSec: int64(s.opts.Store.Uptime().Seconds()),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logging.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Dur("elapsed", time.Since(start)).
			Msg("Request served")
	})
}
