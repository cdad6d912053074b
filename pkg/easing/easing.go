// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

// Package easing animates displayed values toward live targets with
// exponential decay scaled by elapsed wall time, so motion looks the same
// regardless of how often the loop manages to call Update.
package easing

import (
	"math"
	"time"
)

// DefaultRate is the stock rate constant. Settling time is governed by the
// rate constant alone: distance to a constant target shrinks by
// exp(-rate*seconds).
const DefaultRate = 7.0

// MaxStep caps the elapsed time applied in one Update so a stalled loop
// resumes with a small step instead of a jump.
const MaxStep = 50 * time.Millisecond

// Value is one animated quantity: a displayed current value easing toward a
// target.
type Value struct {
	current float64
	target  float64
	rate    float64
}

// New creates an animated value with both current and target at initial.
// A rate of zero or less falls back to DefaultRate.
func New(rate, initial float64) *Value {
	if rate <= 0 {
		rate = DefaultRate
	}
	return &Value{current: initial, target: initial, rate: rate}
}

// Update advances the current value toward the target for one frame.
// Elapsed time is clamped to MaxStep; convergence is monotonic and never
// overshoots for a constant target.
func (v *Value) Update(elapsed time.Duration) {
	if elapsed <= 0 {
		return
	}
	if elapsed > MaxStep {
		elapsed = MaxStep
	}
	v.current += (v.target - v.current) * (1 - math.Exp(-v.rate*elapsed.Seconds()))
}

// Retarget points the value at a new target. It takes effect on the next
// Update call; no other state changes.
func (v *Value) Retarget(target float64) {
	v.target = target
}

// Snap moves current and target to the given value immediately.
func (v *Value) Snap(value float64) {
	v.current = value
	v.target = value
}

// Current returns the displayed value.
func (v *Value) Current() float64 {
	return v.current
}

// Target returns the live target.
func (v *Value) Target() float64 {
	return v.target
}

// Settled reports whether the displayed value is within eps of the target.
func (v *Value) Settled(eps float64) bool {
	return math.Abs(v.target-v.current) <= eps
}
