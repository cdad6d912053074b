// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

// Package history keeps fixed-length circular sample histories, one ring per
// tracked metric, all advanced by a single shared write cursor so that a
// given slot index means the same sample instant in every ring.
package history

// Cap is the fixed ring capacity. Rings are pre-seeded at construction and
// therefore always full; there is no occupancy counter.
const Cap = 64

// Set owns one ring per metric plus the shared write cursor.
type Set struct {
	cursor int
	rings  [][]float64
}

// NewSet creates a set of metric rings, every slot pre-seeded with seed.
func NewSet(metrics int, seed float64) *Set {
	s := &Set{
		rings: make([][]float64, metrics),
	}
	for m := range s.rings {
		ring := make([]float64, Cap)
		for i := range ring {
			ring[i] = seed
		}
		s.rings[m] = ring
	}
	return s
}

// Metrics returns the number of rings in the set.
func (s *Set) Metrics() int {
	return len(s.rings)
}

// Push writes one sample per ring into the current slot and advances the
// shared cursor once. The sample count must match the ring count.
func (s *Set) Push(samples ...float64) {
	if len(samples) != len(s.rings) {
		panic("history: sample count does not match ring count")
	}
	for m, v := range samples {
		s.rings[m][s.cursor] = v
	}
	s.cursor = (s.cursor + 1) % Cap
}

// At returns the sample at age index i for a metric, where 0 is the oldest
// slot and Cap-1 the newest.
func (s *Set) At(metric, i int) float64 {
	return s.rings[metric][(s.cursor+i)%Cap]
}

// Oldest returns the oldest sample for a metric.
func (s *Set) Oldest(metric int) float64 {
	return s.rings[metric][s.cursor]
}

// Newest returns the most recently pushed sample for a metric.
func (s *Set) Newest(metric int) float64 {
	return s.rings[metric][(s.cursor+Cap-1)%Cap]
}

// Ordered returns a metric's samples oldest first in a fresh slice. Reading
// does not disturb the rings: repeated calls without pushes return the same
// values.
func (s *Set) Ordered(metric int) []float64 {
	out := make([]float64, Cap)
	for i := range out {
		out[i] = s.At(metric, i)
	}
	return out
}
