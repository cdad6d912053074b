// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

// Package logging configures the process-wide zerolog logger. The ingest
// and rendering core never logs; collaborator surfaces (export server,
// weather client, feeder, command glue) get their loggers from here so the
// dashboard can route everything away from the terminal it draws on.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var log = zerolog.Nop()

// Setup initializes the logger writing human-readable output to w at the
// given level ("debug", "info", "warn", "error"; unknown levels fall back
// to info). Pass io.Discard to silence logging entirely.
func Setup(level string, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	log = zerolog.New(output).Level(lvl).With().Timestamp().Logger()
}

// Logger returns the configured logger for components that carry their own.
func Logger() zerolog.Logger {
	return log
}

// Debug logs a debug message.
func Debug() *zerolog.Event {
	return log.Debug()
}

// Info logs an info message.
func Info() *zerolog.Event {
	return log.Info()
}

// Warn logs a warning message.
func Warn() *zerolog.Event {
	return log.Warn()
}

// Error logs an error message.
func Error() *zerolog.Event {
	return log.Error()
}

// Fatal logs a fatal message and exits the program.
func Fatal() *zerolog.Event {
	return log.Fatal()
}
