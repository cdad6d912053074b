// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package dash

// Sparkline plots samples oldest-to-newest across the full canvas width,
// joining consecutive points with lines. The vertical scale is normalized
// to the min/max of the window, so the trace always uses the full height;
// when every sample is equal the trace sits on the vertical midline.
func Sparkline(c *Canvas, samples []float64) {
	c.Clear()
	n := len(samples)
	if n == 0 {
		return
	}
	w, h := c.Width(), c.Height()

	mn, mx := samples[0], samples[0]
	for _, v := range samples[1:] {
		if v < mn {
			mn = v
		}
		if v > mx {
			mx = v
		}
	}
	span := mx - mn

	px, py := 0, 0
	for i, v := range samples {
		norm := 0.5
		if span > 0 {
			norm = (v - mn) / span
		}
		y := h - 1 - int(norm*float64(h-1))
		x := 0
		if n > 1 {
			x = i * (w - 1) / (n - 1)
		}
		if i > 0 {
			c.Line(px, py, x, y)
		} else {
			c.Set(x, y)
		}
		px, py = x, y
	}
}
