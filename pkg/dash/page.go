// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package dash

import "github.com/statdeck/statdeck/pkg/statwire"

// Page is one dashboard screen. The telemetry pages carry an animated bar
// and a sparkline; the weather page has its own layout.
type Page int

const (
	PageCPU Page = iota
	PageGPU
	PageDisk
	PageWeather
)

const pageCount = 4

// History ring indices, one per sparkline-backed metric.
const (
	RingCPU = iota
	RingGPU
	RingDisk
	RingCount
)

// Next returns the page one step forward, wrapping around.
func (p Page) Next() Page {
	return (p + 1) % pageCount
}

// Prev returns the page one step back, wrapping around.
func (p Page) Prev() Page {
	return (p + pageCount - 1) % pageCount
}

func (p Page) String() string {
	switch p {
	case PageCPU:
		return "CPU"
	case PageGPU:
		return "GPU"
	case PageDisk:
		return "DISK"
	case PageWeather:
		return "WEATHER"
	}
	return "UNKNOWN"
}

// HasBar reports whether the page draws the animated bar and sparkline.
func (p Page) HasBar() bool {
	return p != PageWeather
}

// Ring returns the history ring feeding the page's sparkline, or -1 for
// pages without one.
func (p Page) Ring() int {
	switch p {
	case PageCPU:
		return RingCPU
	case PageGPU:
		return RingGPU
	case PageDisk:
		return RingDisk
	case PageWeather:
		return -1
	}
	return -1
}

// Target returns the bar target for the page from a snapshot, clamped to
// 0-100. The weather page always targets zero so the bar rests between
// telemetry pages.
func (p Page) Target(s statwire.Snapshot) float64 {
	var v float64
	switch p {
	case PageCPU:
		v = s.CPUPct
	case PageGPU:
		v = s.GPUPct
	case PageDisk:
		v = s.DiskPct
	case PageWeather:
		v = 0
	}
	return statwire.ClampPct(v)
}
