// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package feed

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statdeck/statdeck/pkg/statwire"
)

type fixedSampler struct {
	snap statwire.Snapshot
}

func (f fixedSampler) Sample(time.Time) statwire.Snapshot {
	return f.snap
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("port gone")
}

func TestThroughputMBps(t *testing.T) {
	assert.InDelta(t, 10.0, throughputMBps(0, 10*1024*1024, time.Second), 1e-9)
	assert.InDelta(t, 5.0, throughputMBps(1024*1024, 11*1024*1024, 2*time.Second), 1e-9)
	assert.Zero(t, throughputMBps(0, 1024, 0), "zero elapsed must not divide")
	assert.Zero(t, throughputMBps(2048, 1024, time.Second), "backwards counter reads as idle")
}

func TestRatePct(t *testing.T) {
	assert.InDelta(t, 50.0, ratePct(250, 500), 1e-9)
	assert.Equal(t, 100.0, ratePct(900, 500), "clamped at full scale")
	assert.Zero(t, ratePct(10, 0), "unset scale disables the bar")
}

func TestDemoSamplerStaysOnTheWire(t *testing.T) {
	d := NewDemoSampler()
	now := time.Now()

	for i := 0; i < 500; i++ {
		snap := d.Sample(now.Add(time.Duration(i) * time.Second))

		assert.GreaterOrEqual(t, snap.CPUPct, 0.0)
		assert.LessOrEqual(t, snap.CPUPct, 100.0)
		assert.GreaterOrEqual(t, snap.GPUPct, 0.0)
		assert.LessOrEqual(t, snap.GPUPct, 100.0)
		assert.GreaterOrEqual(t, snap.MemPct, 0.0)
		assert.LessOrEqual(t, snap.MemPct, 100.0)
		assert.GreaterOrEqual(t, snap.DiskPct, 0.0)
		assert.LessOrEqual(t, snap.DiskPct, 100.0)
		assert.GreaterOrEqual(t, snap.DiskMBps, 0.0)
		assert.True(t, statwire.TempKnown(snap.CPUTempF))
		assert.True(t, statwire.SpaceKnown(snap.FreeCGB))
		assert.True(t, snap.HasIndoor(), "demo mode carries the optional tenth field")
	}
}

func TestDemoLineRoundTrips(t *testing.T) {
	d := NewDemoSampler()
	snap := d.Sample(time.Now().Add(17 * time.Second))

	line := statwire.FormatLine(snap)
	assert.Len(t, strings.Split(line, ","), statwire.MinFields+1)

	got, err := statwire.ParseLine(line)
	require.NoError(t, err)
	assert.InDelta(t, snap.CPUPct, got.CPUPct, 0.05)
	assert.InDelta(t, snap.DiskMBps, got.DiskMBps, 0.005)
	assert.InDelta(t, snap.IndoorTempF, got.IndoorTempF, 0.05)
}

func TestSentinelEmission(t *testing.T) {
	// A sampler with nothing to report emits sentinels, and they survive
	// the trip over the wire.
	snap := statwire.Snapshot{
		CPUTempF:    statwire.TempUnknown,
		GPUTempF:    statwire.TempUnknown,
		FreeCGB:     statwire.SpaceUnknown,
		FreeDGB:     statwire.SpaceUnknown,
		IndoorTempF: statwire.TempUnknown,
	}
	got, err := statwire.ParseLine(statwire.FormatLine(snap))
	require.NoError(t, err)

	assert.False(t, statwire.TempKnown(got.CPUTempF))
	assert.False(t, statwire.TempKnown(got.GPUTempF))
	assert.False(t, statwire.SpaceKnown(got.FreeCGB))
	assert.False(t, statwire.SpaceKnown(got.FreeDGB))
	assert.False(t, got.HasIndoor())
}

func TestRunnerEmitsTerminatedRecords(t *testing.T) {
	var buf bytes.Buffer
	r := NewRunner(fixedSampler{snap: statwire.Snapshot{CPUPct: 50, IndoorTempF: statwire.TempUnknown}},
		&buf, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	time.Sleep(60 * time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	out := buf.String()
	require.True(t, strings.HasSuffix(out, "\n"), "records end with the terminator")

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.NotEmpty(t, lines)
	for _, line := range lines {
		snap, err := statwire.ParseLine(line)
		require.NoError(t, err)
		assert.InDelta(t, 50.0, snap.CPUPct, 1e-9)
	}
}

func TestRunnerStopsOnWriteFailure(t *testing.T) {
	r := NewRunner(fixedSampler{}, failWriter{}, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := r.Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port gone")
}
