// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package dash

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/statdeck/statdeck/pkg/statwire"
)

func TestPageCycleForward(t *testing.T) {
	p := PageCPU
	seen := map[Page]bool{}
	for i := 0; i < pageCount; i++ {
		seen[p] = true
		p = p.Next()
	}
	assert.Len(t, seen, pageCount)
	assert.Equal(t, PageCPU, p, "full cycle returns to start")
}

func TestPageCycleBackward(t *testing.T) {
	assert.Equal(t, PageWeather, PageCPU.Prev())
	assert.Equal(t, PageCPU, PageWeather.Next())
	assert.Equal(t, PageGPU, PageDisk.Prev())
}

func TestPagePrevUndoesNext(t *testing.T) {
	for _, start := range []Page{PageCPU, PageGPU, PageDisk, PageWeather} {
		p := start
		for n := 0; n < 7; n++ {
			p = p.Next()
		}
		for n := 0; n < 7; n++ {
			p = p.Prev()
		}
		assert.Equal(t, start, p)
	}
}

func TestPageNames(t *testing.T) {
	assert.Equal(t, "CPU", PageCPU.String())
	assert.Equal(t, "GPU", PageGPU.String())
	assert.Equal(t, "DISK", PageDisk.String())
	assert.Equal(t, "WEATHER", PageWeather.String())
}

func TestPageRings(t *testing.T) {
	assert.Equal(t, RingCPU, PageCPU.Ring())
	assert.Equal(t, RingGPU, PageGPU.Ring())
	assert.Equal(t, RingDisk, PageDisk.Ring())
	assert.Equal(t, -1, PageWeather.Ring())
	assert.True(t, PageCPU.HasBar())
	assert.False(t, PageWeather.HasBar())
}

func TestPageTargets(t *testing.T) {
	snap := statwire.Snapshot{CPUPct: 42.5, GPUPct: 150, DiskPct: -3}

	assert.Equal(t, 42.5, PageCPU.Target(snap))
	assert.Equal(t, 100.0, PageGPU.Target(snap), "overrange clamps to 100")
	assert.Equal(t, 0.0, PageDisk.Target(snap), "negative clamps to 0")
	assert.Equal(t, 0.0, PageWeather.Target(snap), "weather page rests at zero")
}
