// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package export

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/statdeck/statdeck/pkg/logging"
	"github.com/statdeck/statdeck/pkg/statwire"
)

const (
	writeWait    = 10 * time.Second
	streamPeriod = time.Second
	rawBuffer    = 64 // lines queued per raw client before drops
)

// PublishLine fans one accepted wire line out to connected /ws/raw clients.
// A client that cannot keep up loses lines; nothing is queued or resent.
func (s *Server) PublishLine(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- line:
		default:
		}
	}
}

func (s *Server) subscribe() chan string {
	ch := make(chan string, rawBuffer)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()
	return ch
}

func (s *Server) unsubscribe(ch chan string) {
	s.mu.Lock()
	delete(s.subs, ch)
	s.mu.Unlock()
}

// drainReads consumes client frames so close frames and pings are handled,
// and signals when the connection dies.
func drainReads(conn *websocket.Conn) <-chan struct{} {
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()
	return closed
}

// handleWSRaw tunnels the wire protocol: every accepted line goes out as one
// text message, so a remote dashboard can ingest it through the same line
// reader path a serial port feeds.
func (s *Server) handleWSRaw(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Debug().Err(err).Msg("Raw feed upgrade failed")
		return
	}
	defer conn.Close()
	remote := conn.RemoteAddr().String()
	logging.Info().Str("remote", remote).Msg("Raw feed client connected")

	ch := s.subscribe()
	defer s.unsubscribe(ch)
	closed := drainReads(conn)

	for {
		select {
		case line := <-ch:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
				logging.Info().Str("remote", remote).Err(err).Msg("Raw feed client dropped")
				return
			}
		case <-closed:
			logging.Info().Str("remote", remote).Msg("Raw feed client disconnected")
			return
		}
	}
}

// handleWSStream pushes a CBOR snapshot frame on connect and then once a
// second. Each client is served independently from the shared store; there
// is no client registry to manage.
func (s *Server) handleWSStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Debug().Err(err).Msg("Snapshot stream upgrade failed")
		return
	}
	defer conn.Close()
	remote := conn.RemoteAddr().String()
	logging.Info().Str("remote", remote).Msg("Snapshot stream client connected")

	closed := drainReads(conn)

	ticker := time.NewTicker(streamPeriod)
	defer ticker.Stop()

	for {
		if err := s.writeSnapshotFrame(conn); err != nil {
			logging.Info().Str("remote", remote).Err(err).Msg("Snapshot stream client dropped")
			return
		}
		select {
		case <-ticker.C:
		case <-closed:
			logging.Info().Str("remote", remote).Msg("Snapshot stream client disconnected")
			return
		}
	}
}

func (s *Server) writeSnapshotFrame(conn *websocket.Conn) error {
	snap, ok := s.opts.Store.Latest()
	if !ok {
		snap = statwire.EmptySnapshot()
	}
	frame, err := statwire.EncodeSnapshotFrame(snap, s.opts.Store.AgeMillis())
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.BinaryMessage, frame)
}
