// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package cmd

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"go.bug.st/serial"

	"github.com/statdeck/statdeck/pkg/settings"
	"github.com/statdeck/statdeck/pkg/statwire"
)

// Connection provides a common interface for reading/writing bytes from
// serial or WebSocket sources
type Connection interface {
	io.Reader
	io.Writer
	io.Closer
}

// SerialConnection wraps a serial port
type SerialConnection struct {
	port serial.Port
}

func (s *SerialConnection) Read(p []byte) (int, error) {
	return s.port.Read(p)
}

func (s *SerialConnection) Write(p []byte) (int, error) {
	return s.port.Write(p)
}

func (s *SerialConnection) Close() error {
	return s.port.Close()
}

// ErrConnectionClosed is returned when reading from a closed WebSocket connection
var ErrConnectionClosed = fmt.Errorf("websocket connection closed")

// WebSocketConnection adapts a WebSocket feed to a byte stream. The raw
// tunnel sends one wire line per text message with the terminator stripped,
// so text messages are buffered with a terminator re-appended; binary
// messages pass through verbatim.
type WebSocketConnection struct {
	conn      *websocket.Conn
	buf       []byte
	bufOffset int
	closed    bool // Track if connection has failed/closed
}

func (w *WebSocketConnection) Read(p []byte) (int, error) {
	// Return immediately if connection is known to be closed
	if w.closed {
		return 0, ErrConnectionClosed
	}

	// If we have buffered data, return it first
	if w.bufOffset < len(w.buf) {
		n := copy(p, w.buf[w.bufOffset:])
		w.bufOffset += n
		return n, nil
	}

	// Read next message from WebSocket (non-recursive loop to avoid stack overflow)
	for {
		messageType, data, err := w.conn.ReadMessage()
		if err != nil {
			// Mark connection as closed to prevent further read attempts
			w.closed = true
			return 0, err
		}

		switch messageType {
		case websocket.TextMessage:
			w.buf = append(data, statwire.Terminator)
		case websocket.BinaryMessage:
			w.buf = data
		default:
			// Skip control/other messages and continue loop
			continue
		}

		w.bufOffset = 0
		n := copy(p, w.buf)
		w.bufOffset = n
		return n, nil
	}
}

func (w *WebSocketConnection) Write(p []byte) (int, error) {
	err := w.conn.WriteMessage(websocket.BinaryMessage, p)
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *WebSocketConnection) Close() error {
	return w.conn.Close()
}

// OpenSerialConnection opens a serial port connection
func OpenSerialConnection(portName string, baudRate int) (Connection, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}

	return &SerialConnection{port: port}, nil
}

// OpenWebSocketConnection dials a WebSocket feed
func OpenWebSocketConnection(wsURL string) (Connection, error) {
	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	switch u.Scheme {
	case "ws", "wss":
		// OK
	default:
		return nil, fmt.Errorf("unsupported URL scheme: %s (use ws:// or wss://)", u.Scheme)
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	conn, resp, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("WebSocket connection failed (HTTP %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("WebSocket connection failed: %w", err)
	}

	return &WebSocketConnection{conn: conn}, nil
}

// OpenConnection opens the ingest source selected by flags and config:
// --connect wins, then --port, then the configured serial port.
func OpenConnection(cfg *settings.Settings) (Connection, string, error) {
	if connectURL != "" {
		conn, err := OpenWebSocketConnection(connectURL)
		if err != nil {
			return nil, "", err
		}

		return conn, fmt.Sprintf("WebSocket: %s", connectURL), nil
	}

	port := portName
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		return nil, "", fmt.Errorf("no source: pass --port or --connect, or set one with 'statdeck settings'")
	}
	baud := baudRate
	if baud <= 0 {
		baud = cfg.Baud
	}

	conn, err := OpenSerialConnection(port, baud)
	if err != nil {
		return nil, "", err
	}

	return conn, fmt.Sprintf("Serial: %s @ %d baud", port, baud), nil
}
