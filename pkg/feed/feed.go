// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

// Package feed is the host side of the statdeck link: it samples machine
// metrics once per interval and emits them as wire records, one line per
// sample, to a serial port or any other writer. A demo sampler substitutes
// synthetic data so the dashboard can be exercised without hardware.
package feed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/statdeck/statdeck/pkg/logging"
	"github.com/statdeck/statdeck/pkg/statwire"
)

// DefaultInterval is the stock sampling cadence, matching the display's
// expectations for freshness.
const DefaultInterval = time.Second

// DefaultDiskScaleMBps is the throughput that maps to a 100% disk bar.
const DefaultDiskScaleMBps = 500.0

// Sampler produces one telemetry snapshot per call. Fields a sampler cannot
// measure carry the wire sentinels, never fabricated readings.
type Sampler interface {
	Sample(now time.Time) statwire.Snapshot
}

// Runner drives a sampler at a fixed interval and writes one terminated
// wire record per sample.
type Runner struct {
	sampler  Sampler
	out      io.Writer
	interval time.Duration
}

// NewRunner creates a runner. An interval of zero or less falls back to
// DefaultInterval.
func NewRunner(s Sampler, out io.Writer, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Runner{sampler: s, out: out, interval: interval}
}

// Run samples and emits until ctx is cancelled. A write failure ends the
// run: the link is gone and the caller owns reconnecting.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	logging.Info().Dur("interval", r.interval).Msg("Feeder running")

	for {
		select {
		case <-ctx.Done():
			logging.Info().Msg("Feeder stopped")
			return nil

		case now := <-ticker.C:
			record := statwire.FormatLine(r.sampler.Sample(now))
			if _, err := io.WriteString(r.out, record+string(statwire.Terminator)); err != nil {
				return fmt.Errorf("failed to write record: %w", err)
			}
			logging.Debug().Str("record", record).Msg("Sample emitted")
		}
	}
}
