// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package feed

import (
	"math"
	"math/rand"
	"time"

	"github.com/statdeck/statdeck/pkg/statwire"
)

// DemoSampler fabricates plausible telemetry: phase-shifted waves with a
// little noise, so every page of the dashboard moves without a real host
// behind the link. It also fills the optional indoor-temperature field, so
// demo mode exercises the ten-field form of the protocol.
type DemoSampler struct {
	start time.Time
	rng   *rand.Rand
}

// NewDemoSampler creates a generator with its waves anchored at now.
func NewDemoSampler() *DemoSampler {
	return &DemoSampler{
		start: time.Now(),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Sample produces the synthetic snapshot for the given instant.
func (d *DemoSampler) Sample(now time.Time) statwire.Snapshot {
	t := now.Sub(d.start).Seconds()

	cpu := d.wave(t, 47, 45, 32, 6)
	gpu := d.wave(t, 29, 38, 34, 8)
	mem := d.wave(t, 210, 58, 10, 1.5)

	mbps := 230 + 225*math.Sin(2*math.Pi*t/23) + d.noise(20)
	if mbps < 0 {
		mbps = 0
	}

	return statwire.Snapshot{
		CPUPct:      cpu,
		MemPct:      mem,
		GPUPct:      gpu,
		DiskPct:     ratePct(mbps, DefaultDiskScaleMBps),
		DiskMBps:    mbps,
		CPUTempF:    100 + cpu*0.45 + d.noise(2),
		GPUTempF:    95 + gpu*0.6 + d.noise(2),
		FreeCGB:     238 + 6*math.Sin(2*math.Pi*t/600),
		FreeDGB:     812 + 3*math.Sin(2*math.Pi*t/900),
		IndoorTempF: 72 + 1.5*math.Sin(2*math.Pi*t/300) + d.noise(0.5),
	}
}

// wave is a sine of the given period around base, clamped to the 0-100
// percentage range after noise.
func (d *DemoSampler) wave(t, period, base, amp, jitter float64) float64 {
	return statwire.ClampPct(base + amp*math.Sin(2*math.Pi*t/period) + d.noise(jitter))
}

// noise returns a uniform value in [-spread/2, spread/2].
func (d *DemoSampler) noise(spread float64) float64 {
	return (d.rng.Float64() - 0.5) * spread
}
